package releaseutils

import (
	"fmt"

	"github.com/fatih/color"
)

// Presentation helpers. These only format text for the operator; nothing
// in the state machine depends on them.

var (
	headerColor  = color.New(color.FgHiMagenta, color.Bold)
	summaryValue = color.New(color.Bold)
)

func printHeader(msg string) {
	_, _ = headerColor.Printf("\n%s\n", msg)
}

func printSummaryLine(label, value string) {
	fmt.Printf("  %-12s %s\n", label+":", summaryValue.Sprint(value))
}
