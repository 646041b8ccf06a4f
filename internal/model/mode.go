package model

import "strings"

// Mode selects how mutants are generated.
type Mode string

const (
	// ModeSingle mutates one position.
	ModeSingle Mode = "single"
	// ModeMulti applies a mutation list in one pass.
	ModeMulti Mode = "multi"
	// ModeDeep runs deep mutational scanning over one or more regions.
	ModeDeep Mode = "deep"
)

// ParseMode maps a user supplied value to a Mode. Matching is exact after
// trimming surrounding whitespace.
func ParseMode(value string) (Mode, bool) {
	switch mode := Mode(strings.TrimSpace(value)); mode {
	case ModeSingle, ModeMulti, ModeDeep:
		return mode, true
	}

	return "", false
}
