package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ColorChoice controls whether the sink emits ANSI escape sequences.
type ColorChoice int

const (
	// ColorAuto enables colors when the sink writes to a terminal and NO_COLOR is unset.
	ColorAuto ColorChoice = iota
	ColorAlways
	ColorNever
)

func (c ColorChoice) String() string {
	switch c {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return fmt.Sprintf("ColorChoice(%d)", int(c))
	}
}

// ParseColorChoice parses one of "auto", "always" or "never" (case insensitive).
func ParseColorChoice(s string) (ColorChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color choice %q: expected one of auto, always, never", s)
	}
}

type fdWriter interface {
	Fd() uintptr
}

// enabled resolves the choice against the destination writer.
func (c ColorChoice) enabled(w interface{}) bool {
	switch c {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
