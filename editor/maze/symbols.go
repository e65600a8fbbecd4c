package maze

import (
	"errors"
	"unicode"
)

// ErrInvalidSymbolMapping indicates a symbol mapping with a missing,
// unprintable, or duplicated symbol.
var ErrInvalidSymbolMapping = errors.New("invalid symbol mapping")

// SymbolConfig maps the single characters of the maze text to cell roles.
type SymbolConfig struct {
	Wall  rune
	Path  rune
	Start rune
	End   rune
}

// DefaultSymbols returns the symbol mapping used when none is configured.
func DefaultSymbols() SymbolConfig {
	return SymbolConfig{Wall: '#', Path: '.', Start: 'P', End: 'E'}
}

// Validate checks that every role has a printable symbol and that no two
// roles share one.
func (c SymbolConfig) Validate() error {
	symbols := []rune{c.Wall, c.Path, c.Start, c.End}
	seen := make(map[rune]bool, len(symbols))
	for _, r := range symbols {
		if r == 0 || !unicode.IsGraphic(r) {
			return ErrInvalidSymbolMapping
		}
		if seen[r] {
			return ErrInvalidSymbolMapping
		}
		seen[r] = true
	}
	return nil
}

// Classify returns the kind of a cell parsed from symbol r. Wall wins over
// start, start over end; any symbol bound to no role is an open path cell.
func (c SymbolConfig) Classify(r rune) CellKind {
	switch r {
	case c.Wall:
		return KindWall
	case c.Start:
		return KindStart
	case c.End:
		return KindEnd
	default:
		return KindPath
	}
}
