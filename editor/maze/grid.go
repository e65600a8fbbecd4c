// Package maze parses ASCII maze text into a typed grid and solves it.
// The package is UI-agnostic and deterministic: the same text, symbol
// mapping, and key binding always produce the same grid and solution.
package maze

import "strings"

// Grid is a maze parsed from ASCII text. Rows may have different lengths
// when the source lines do; positions past the end of a short row are
// treated as outside the maze.
//
// A grid is immutable once built. Any change to the source text or the
// symbol mapping produces a whole new grid.
type Grid struct {
	Rows   [][]Cell
	Height int // number of rows, including empty ones
	Width  int // length of the longest row

	// Start and End are the designated endpoints used by the solver.
	// When the text contains several start or end symbols, the first one
	// in row-major order is designated. Nil when the text contains none.
	Start *Cell
	End   *Cell
}

// BuildGrid parses text into a grid under the given symbol mapping. It
// accepts any input: unbound symbols become path cells and missing
// endpoints simply leave Start or End nil. Windows line endings are
// normalized before splitting.
func BuildGrid(text string, symbols SymbolConfig) *Grid {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	g := &Grid{
		Rows:   make([][]Cell, len(lines)),
		Height: len(lines),
	}
	for y, line := range lines {
		runes := []rune(line)
		row := make([]Cell, len(runes))
		for x, r := range runes {
			cell := Cell{
				Position: Position{X: x, Y: y},
				Kind:     symbols.Classify(r),
			}
			row[x] = cell
			if cell.Kind == KindStart && g.Start == nil {
				g.Start = &row[x]
			}
			if cell.Kind == KindEnd && g.End == nil {
				g.End = &row[x]
			}
		}
		g.Rows[y] = row
		if len(row) > g.Width {
			g.Width = len(row)
		}
	}
	return g
}

// At returns the cell at p. The second return value is false when p lies
// outside the grid, including past the end of a short row.
func (g *Grid) At(p Position) (Cell, bool) {
	if p.Y < 0 || p.Y >= len(g.Rows) {
		return Cell{}, false
	}
	row := g.Rows[p.Y]
	if p.X < 0 || p.X >= len(row) {
		return Cell{}, false
	}
	return row[p.X], true
}

// Walkable reports whether p is a grid cell that can be entered.
func (g *Grid) Walkable(p Position) bool {
	cell, ok := g.At(p)
	return ok && cell.Kind.Walkable()
}

// NextCell returns the position one step from p in the given direction and
// reports whether that position is walkable. Callers keep their current
// position when it is not.
func (g *Grid) NextCell(p Position, dir Direction) (Position, bool) {
	dx, dy := dir.Delta()
	next := Position{X: p.X + dx, Y: p.Y + dy}
	return next, g.Walkable(next)
}
