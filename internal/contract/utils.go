package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/doralens/schema"
)

// Color variables for console output.
var (
	EliteColor  = color.New(color.FgGreen, color.Bold) // EliteColor represents top performance.
	HighColor   = color.New(color.FgCyan)              // HighColor represents good performance.
	MediumColor = color.New(color.FgYellow)            // MediumColor represents standard caution.
	LowColor    = color.New(color.FgRed, color.Bold)   // LowColor represents standard danger.
)

// GetColorBand returns a colored band label for console output (table).
// Metrics without a band render as an empty string.
func GetColorBand(band schema.PerformanceBand) string {
	text := string(band)
	switch band {
	case schema.EliteBand:
		return EliteColor.Sprint(text)
	case schema.HighBand:
		return HighColor.Sprint(text)
	case schema.MediumBand:
		return MediumColor.Sprint(text)
	case schema.LowBand:
		return LowColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateName truncates a contributor name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the ellipsis and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
