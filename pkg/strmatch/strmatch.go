// Package strmatch implements the primitive string matching used by the
// tile filter rules. A Pattern pairs a value with a match mode; Matches is
// the single entry point.
package strmatch

import (
	"fmt"
	"strings"
)

type Mode int

const (
	// ModeAny matches every subject regardless of the pattern value.
	ModeAny Mode = iota
	// ModeExact requires full equality.
	ModeExact
	ModePrefix
	ModeSuffix
	ModeContains
)

func (m Mode) String() string {
	switch m {
	case ModeAny:
		return "any"
	case ModeExact:
		return "exact"
	case ModePrefix:
		return "prefix"
	case ModeSuffix:
		return "suffix"
	case ModeContains:
		return "contains"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a mode name from a profile document. Empty means exact.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact", "match":
		return ModeExact, nil
	case "any", "all":
		return ModeAny, nil
	case "prefix", "startswith":
		return ModePrefix, nil
	case "suffix", "postfix", "endswith":
		return ModeSuffix, nil
	case "contains", "substring":
		return ModeContains, nil
	default:
		return ModeExact, fmt.Errorf("unknown match mode %q", s)
	}
}

type Pattern struct {
	Value string
	Mode  Mode
}

// Exact is shorthand for the common case.
func Exact(value string) Pattern { return Pattern{Value: value, Mode: ModeExact} }

// Any matches every subject.
func Any() Pattern { return Pattern{Mode: ModeAny} }

// Matches reports whether subject satisfies the pattern.
func Matches(subject string, p Pattern) bool {
	switch p.Mode {
	case ModeAny:
		return true
	case ModeExact:
		return subject == p.Value
	case ModePrefix:
		return strings.HasPrefix(subject, p.Value)
	case ModeSuffix:
		return strings.HasSuffix(subject, p.Value)
	case ModeContains:
		return strings.Contains(subject, p.Value)
	default:
		return false
	}
}

// IsLiteral reports whether the pattern carries a fixed literal usable by a
// substring prefilter. Any-mode patterns have no literal.
func (p Pattern) IsLiteral() bool { return p.Mode != ModeAny }
