package outwriter

import (
	"os"

	"github.com/huangsam/cogload/internal/contract"
	"golang.org/x/term"
)

// getMaxTableMessageWidth calculates the maximum width for the message
// column in table output based on terminal width and table configuration.
func getMaxTableMessageWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (rank, severity, kind, unit,
	// method, score) plus borders and padding.
	const baseWidth = 70

	available := termWidth - baseWidth
	if available < 25 {
		return 25
	}
	if available > 100 {
		return 100
	}
	return available
}
