package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGrid(t *testing.T) {
	symbols := DefaultSymbols()

	t.Run("classifies every symbol", func(t *testing.T) {
		g := BuildGrid("#.PE", symbols)

		assert.Equal(t, 1, g.Height)
		assert.Equal(t, 4, g.Width)
		kinds := make([]CellKind, 0, 4)
		for _, cell := range g.Rows[0] {
			kinds = append(kinds, cell.Kind)
		}
		assert.Equal(t, []CellKind{KindWall, KindPath, KindStart, KindEnd}, kinds)
	})

	t.Run("treats unbound symbols as path", func(t *testing.T) {
		g := BuildGrid("x?~", symbols)

		for _, cell := range g.Rows[0] {
			assert.Equal(t, KindPath, cell.Kind)
		}
	})

	t.Run("designates first start and end in row-major order", func(t *testing.T) {
		g := BuildGrid("..P\nP.E\nE..", symbols)

		assert.NotNil(t, g.Start)
		assert.NotNil(t, g.End)
		assert.Equal(t, Position{X: 2, Y: 0}, g.Start.Position)
		assert.Equal(t, Position{X: 2, Y: 1}, g.End.Position)
	})

	t.Run("leaves endpoints nil when symbols are absent", func(t *testing.T) {
		g := BuildGrid("###\n#.#\n###", symbols)

		assert.Nil(t, g.Start)
		assert.Nil(t, g.End)
	})

	t.Run("keeps ragged rows addressable per row", func(t *testing.T) {
		g := BuildGrid("##\n#..", symbols)

		assert.Equal(t, 2, g.Height)
		assert.Equal(t, 3, g.Width)

		_, ok := g.At(Position{X: 2, Y: 1})
		assert.True(t, ok)
		_, ok = g.At(Position{X: 2, Y: 0})
		assert.False(t, ok, "short row must not borrow the width of a longer one")
	})

	t.Run("normalizes windows line endings", func(t *testing.T) {
		g := BuildGrid("#.\r\n.#", symbols)

		assert.Equal(t, 2, g.Height)
		assert.Equal(t, 2, g.Width)
		assert.Equal(t, KindPath, g.Rows[0][1].Kind)
	})

	t.Run("parses multibyte symbols by rune", func(t *testing.T) {
		g := BuildGrid("█P█", SymbolConfig{Wall: '█', Path: ' ', Start: 'P', End: 'E'})

		assert.Equal(t, 3, g.Width)
		assert.Equal(t, KindWall, g.Rows[0][0].Kind)
		assert.Equal(t, KindStart, g.Rows[0][1].Kind)
	})

	t.Run("builds an empty grid from empty text", func(t *testing.T) {
		g := BuildGrid("", symbols)

		assert.Equal(t, 1, g.Height)
		assert.Equal(t, 0, g.Width)
		assert.Nil(t, g.Start)
		assert.Nil(t, g.End)
	})
}

func TestGridWalkable(t *testing.T) {
	g := BuildGrid("###\n#P.\n#.E\n###", DefaultSymbols())

	t.Run("walls are not walkable", func(t *testing.T) {
		assert.False(t, g.Walkable(Position{X: 0, Y: 0}))
	})

	t.Run("path start and end are walkable", func(t *testing.T) {
		assert.True(t, g.Walkable(Position{X: 2, Y: 1}))
		assert.True(t, g.Walkable(Position{X: 1, Y: 1}))
		assert.True(t, g.Walkable(Position{X: 2, Y: 2}))
	})

	t.Run("out of bounds is not walkable", func(t *testing.T) {
		assert.False(t, g.Walkable(Position{X: -1, Y: 0}))
		assert.False(t, g.Walkable(Position{X: 0, Y: -1}))
		assert.False(t, g.Walkable(Position{X: 3, Y: 1}))
		assert.False(t, g.Walkable(Position{X: 0, Y: 4}))
	})
}

func TestGridNextCell(t *testing.T) {
	g := BuildGrid("###\n#P.\n#.E\n###", DefaultSymbols())
	from := Position{X: 1, Y: 1}

	t.Run("returns the walkable neighbor", func(t *testing.T) {
		next, ok := g.NextCell(from, DirRight)
		assert.True(t, ok)
		assert.Equal(t, Position{X: 2, Y: 1}, next)

		next, ok = g.NextCell(from, DirDown)
		assert.True(t, ok)
		assert.Equal(t, Position{X: 1, Y: 2}, next)
	})

	t.Run("reports walls as not walkable", func(t *testing.T) {
		_, ok := g.NextCell(from, DirUp)
		assert.False(t, ok)
		_, ok = g.NextCell(from, DirLeft)
		assert.False(t, ok)
	})
}

func TestSymbolConfig(t *testing.T) {
	t.Run("default mapping is valid", func(t *testing.T) {
		assert.NoError(t, DefaultSymbols().Validate())
	})

	t.Run("rejects duplicate symbols", func(t *testing.T) {
		c := SymbolConfig{Wall: '#', Path: '#', Start: 'P', End: 'E'}
		assert.ErrorIs(t, c.Validate(), ErrInvalidSymbolMapping)
	})

	t.Run("rejects missing symbols", func(t *testing.T) {
		c := SymbolConfig{Wall: '#', Path: '.', Start: 'P'}
		assert.ErrorIs(t, c.Validate(), ErrInvalidSymbolMapping)
	})

	t.Run("wall wins over start and end on collision", func(t *testing.T) {
		c := SymbolConfig{Wall: '#', Path: '.', Start: '#', End: '#'}
		assert.Equal(t, KindWall, c.Classify('#'))
	})
}

func TestMoveKeyConfig(t *testing.T) {
	t.Run("default binding is valid", func(t *testing.T) {
		assert.NoError(t, DefaultMoveKeys().Validate())
	})

	t.Run("rejects duplicate keys", func(t *testing.T) {
		c := MoveKeyConfig{Up: 'w', Down: 'w', Left: 'a', Right: 'd'}
		assert.ErrorIs(t, c.Validate(), ErrInvalidKeyBinding)
	})

	t.Run("rejects keys differing only in case", func(t *testing.T) {
		c := MoveKeyConfig{Up: 'w', Down: 'W', Left: 'a', Right: 'd'}
		assert.ErrorIs(t, c.Validate(), ErrInvalidKeyBinding)
	})

	t.Run("rejects missing and whitespace keys", func(t *testing.T) {
		assert.ErrorIs(t, MoveKeyConfig{Up: 'w', Down: 's', Left: 'a'}.Validate(), ErrInvalidKeyBinding)
		assert.ErrorIs(t, MoveKeyConfig{Up: 'w', Down: 's', Left: 'a', Right: ' '}.Validate(), ErrInvalidKeyBinding)
	})

	t.Run("matches keys case-insensitively", func(t *testing.T) {
		keys := DefaultMoveKeys()

		dir, ok := keys.DirectionFor('W')
		assert.True(t, ok)
		assert.Equal(t, DirUp, dir)

		dir, ok = keys.DirectionFor('d')
		assert.True(t, ok)
		assert.Equal(t, DirRight, dir)
	})

	t.Run("reports unbound keys", func(t *testing.T) {
		_, ok := DefaultMoveKeys().DirectionFor('x')
		assert.False(t, ok)
	})

	t.Run("spells each direction with its bound key", func(t *testing.T) {
		keys := MoveKeyConfig{Up: 'i', Down: 'k', Left: 'j', Right: 'l'}
		assert.Equal(t, 'k', keys.Key(DirDown))
		assert.Equal(t, 'l', keys.Key(DirRight))
	})
}
