package surveyutils

import (
	"gopkg.in/AlecAivazis/survey.v1"
	"gopkg.in/AlecAivazis/survey.v1/terminal"
)

var stdio *terminal.Stdio

// UseStdio redirects all prompts to the given terminal, so interactive
// flows can run against a virtual console in tests.
func UseStdio(io terminal.Stdio) {
	stdio = &io
}

func askOpts() []survey.AskOpt {
	if stdio == nil {
		return nil
	}
	return []survey.AskOpt{survey.WithStdio(stdio.In, stdio.Out, stdio.Err)}
}

// GetBoolInput asks a yes/no question, defaulting to no.
func GetBoolInput(msg string, value *bool) error {
	prompt := &survey.Confirm{
		Message: msg,
	}
	return survey.AskOne(prompt, value, nil, askOpts()...)
}

// ChooseFromList asks the operator to pick one of the options.
func ChooseFromList(msg string, choice *string, options []string) error {
	prompt := &survey.Select{
		Message: msg,
		Options: options,
	}
	return survey.AskOne(prompt, choice, survey.Required, askOpts()...)
}

// GetStringInput reads a free-form line of input.
func GetStringInput(msg string, value *string) error {
	prompt := &survey.Input{
		Message: msg,
	}
	return survey.AskOne(prompt, value, nil, askOpts()...)
}
