package maze

import (
	"errors"
	"unicode"
)

// ErrInvalidKeyBinding indicates a key binding with a missing, unprintable,
// or duplicated key.
var ErrInvalidKeyBinding = errors.New("invalid move key binding")

// MoveKeyConfig binds a keyboard character to each movement direction.
// Bindings match case-insensitively, so 'W' and 'w' trigger the same move.
type MoveKeyConfig struct {
	Up    rune
	Down  rune
	Left  rune
	Right rune
}

// DefaultMoveKeys returns the WASD binding used when none is configured.
func DefaultMoveKeys() MoveKeyConfig {
	return MoveKeyConfig{Up: 'w', Down: 's', Left: 'a', Right: 'd'}
}

// Validate checks that every direction has a printable key and that no two
// directions collide. Keys differing only in case collide because matching
// is case-insensitive.
func (c MoveKeyConfig) Validate() error {
	keys := []rune{c.Up, c.Down, c.Left, c.Right}
	seen := make(map[rune]bool, len(keys))
	for _, r := range keys {
		if r == 0 || !unicode.IsGraphic(r) || unicode.IsSpace(r) {
			return ErrInvalidKeyBinding
		}
		folded := unicode.ToLower(r)
		if seen[folded] {
			return ErrInvalidKeyBinding
		}
		seen[folded] = true
	}
	return nil
}

// DirectionFor maps a pressed key to its bound direction. The second return
// value is false when the key is bound to no direction.
func (c MoveKeyConfig) DirectionFor(key rune) (Direction, bool) {
	switch unicode.ToLower(key) {
	case unicode.ToLower(c.Up):
		return DirUp, true
	case unicode.ToLower(c.Down):
		return DirDown, true
	case unicode.ToLower(c.Left):
		return DirLeft, true
	case unicode.ToLower(c.Right):
		return DirRight, true
	default:
		return 0, false
	}
}

// Key returns the character bound to the direction. Solver move strings are
// spelled with these characters.
func (c MoveKeyConfig) Key(d Direction) rune {
	switch d {
	case DirUp:
		return c.Up
	case DirDown:
		return c.Down
	case DirLeft:
		return c.Left
	case DirRight:
		return c.Right
	default:
		return 0
	}
}
