package releaseutils

import (
	"github.com/bkrabach/releasekit/surveyutils"
)

type surveyPrompter struct{}

// NewSurveyPrompter returns the interactive terminal Prompter.
func NewSurveyPrompter() Prompter {
	return surveyPrompter{}
}

func (surveyPrompter) Confirm(message string) (bool, error) {
	var value bool
	err := surveyutils.GetBoolInput(message, &value)
	return value, err
}

func (surveyPrompter) Select(message string, options []string) (string, error) {
	var choice string
	err := surveyutils.ChooseFromList(message, &choice, options)
	return choice, err
}

func (surveyPrompter) Input(message string) (string, error) {
	var value string
	err := surveyutils.GetStringInput(message, &value)
	return value, err
}

func (surveyPrompter) Acknowledge(message string) error {
	var ignored string
	return surveyutils.GetStringInput(message, &ignored)
}
