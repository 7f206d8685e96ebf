package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptResult contains the result of a yes/no prompt.
type PromptResult struct {
	// Accepted is true if the user typed "y" or "yes" in any case.
	Accepted bool
	// Cancelled is true if reading input failed.
	Cancelled bool
}

// Confirm asks question on writer and reads one line from reader.
// It returns Accepted=false without prompting when interactive is false.
// The prompt defaults to "No" when the user presses Enter without input.
func Confirm(writer io.Writer, reader io.Reader, interactive bool, question string) PromptResult {
	if !interactive {
		return PromptResult{}
	}

	fmt.Fprintf(writer, "? %s [y/N] ", question)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF (Ctrl+D) declines
		return PromptResult{}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{}
	}
}
