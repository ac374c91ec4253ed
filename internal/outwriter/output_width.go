package outwriter

import (
	"os"

	"github.com/huangsam/doralens/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for contributor names in table output
// based on terminal width and the number of metric columns.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Eight metric columns with borders and padding
	baseWidth := 8*9 + 20

	available := termWidth - baseWidth
	if available < 10 {
		return 10
	}
	if available > 40 {
		return 40
	}
	return available
}
