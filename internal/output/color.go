package output

import (
	"fmt"
	"io"
	"os"
	"slices"
)

// ColorModes are the accepted values of the --color flag.
var ColorModes = []string{"auto", "always", "never"}

// CheckColorMode rejects unknown --color values.
func CheckColorMode(mode string) error {
	if mode == "" || slices.Contains(ColorModes, mode) {
		return nil
	}
	return NewUserError(fmt.Sprintf("invalid --color %q: must be one of auto, always, never", mode))
}

// ResolveColorMode turns the --color flag into a yes or no. "auto" and
// unknown values follow isTTY.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// UseColor decides whether output to w is styled. In auto mode a set
// NO_COLOR environment variable turns colours off.
func UseColor(colorMode string, w io.Writer) bool {
	if colorMode != "always" && colorMode != "never" && os.Getenv("NO_COLOR") != "" {
		return false
	}
	return ResolveColorMode(colorMode, IsTTY(w))
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
