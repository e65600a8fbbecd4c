// Package editorapi provides structures and utilities for managing maze
// editor requests and responses.
package editorapi

import (
	"fmt"

	"github.com/beka-birhanu/maze-editor-api/editor"
	"github.com/beka-birhanu/maze-editor-api/editor/maze"
	"github.com/google/uuid"
)

// SymbolMapping carries the four cell symbols as single character strings.
type SymbolMapping struct {
	Wall  string `json:"wall" binding:"required"`
	Path  string `json:"path" binding:"required"`
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// MoveKeys carries the four movement keys as single character strings.
type MoveKeys struct {
	Up    string `json:"up" binding:"required"`
	Down  string `json:"down" binding:"required"`
	Left  string `json:"left" binding:"required"`
	Right string `json:"right" binding:"required"`
}

// CreateMazeRequest represents a request to host a new editor session.
// Omitted mappings fall back to the defaults.
type CreateMazeRequest struct {
	Text     string         `json:"text"`
	Symbols  *SymbolMapping `json:"symbols"`
	MoveKeys *MoveKeys      `json:"move_keys"`
}

// UpdateTextRequest carries replacement maze text. Empty text clears the
// maze, so no field is required.
type UpdateTextRequest struct {
	Text string `json:"text"`
}

// SolveRequest selects between a plain solve and an animated replay.
type SolveRequest struct {
	Animate bool `json:"animate"`
}

// MoveRequest carries one pressed key.
type MoveRequest struct {
	Key string `json:"key" binding:"required"`
}

// SolveResponse represents a found route.
type SolveResponse struct {
	Path      []maze.Position `json:"path"`
	Moves     string          `json:"moves"`
	Steps     int             `json:"steps"`
	Replaying bool            `json:"replaying"`
}

// Solution mirrors the session's most recent solve in maze responses.
type Solution struct {
	Path  []maze.Position `json:"path"`
	Moves string          `json:"moves"`
	Steps int             `json:"steps"`
}

// MazeResponse represents the full state of a hosted editor session.
type MazeResponse struct {
	ID         string          `json:"id"`
	Text       string          `json:"text"`
	Symbols    SymbolMapping   `json:"symbols"`
	MoveKeys   MoveKeys        `json:"move_keys"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Rows       [][]string      `json:"rows"`
	Start      *maze.Position  `json:"start,omitempty"`
	End        *maze.Position  `json:"end,omitempty"`
	Cursor     *maze.Position  `json:"cursor,omitempty"`
	Solution   *Solution       `json:"solution,omitempty"`
	Generation uint64          `json:"generation"`
	Replaying  bool            `json:"replaying"`
}

// MoveResponse reports the outcome of a manual move.
type MoveResponse struct {
	Moved bool         `json:"moved"`
	Maze  MazeResponse `json:"maze"`
}

// singleRune unpacks a one character string field.
func singleRune(field, value string) (rune, error) {
	runes := []rune(value)
	if len(runes) != 1 {
		return 0, fmt.Errorf("%s must be a single character", field)
	}
	return runes[0], nil
}

func (m SymbolMapping) toConfig() (maze.SymbolConfig, error) {
	var cfg maze.SymbolConfig
	var err error
	if cfg.Wall, err = singleRune("wall", m.Wall); err != nil {
		return cfg, err
	}
	if cfg.Path, err = singleRune("path", m.Path); err != nil {
		return cfg, err
	}
	if cfg.Start, err = singleRune("start", m.Start); err != nil {
		return cfg, err
	}
	if cfg.End, err = singleRune("end", m.End); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (k MoveKeys) toConfig() (maze.MoveKeyConfig, error) {
	var cfg maze.MoveKeyConfig
	var err error
	if cfg.Up, err = singleRune("up", k.Up); err != nil {
		return cfg, err
	}
	if cfg.Down, err = singleRune("down", k.Down); err != nil {
		return cfg, err
	}
	if cfg.Left, err = singleRune("left", k.Left); err != nil {
		return cfg, err
	}
	if cfg.Right, err = singleRune("right", k.Right); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func symbolMappingFrom(c maze.SymbolConfig) SymbolMapping {
	return SymbolMapping{
		Wall:  string(c.Wall),
		Path:  string(c.Path),
		Start: string(c.Start),
		End:   string(c.End),
	}
}

func moveKeysFrom(c maze.MoveKeyConfig) MoveKeys {
	return MoveKeys{
		Up:    string(c.Up),
		Down:  string(c.Down),
		Left:  string(c.Left),
		Right: string(c.Right),
	}
}

// mazeResponseFrom flattens a session snapshot for the wire. Grid cells
// are spelled as kind names so clients never reparse maze text.
func mazeResponseFrom(id uuid.UUID, st editor.State) MazeResponse {
	rows := make([][]string, len(st.Grid.Rows))
	for y, row := range st.Grid.Rows {
		kinds := make([]string, len(row))
		for x, cell := range row {
			kinds[x] = cell.Kind.String()
		}
		rows[y] = kinds
	}

	resp := MazeResponse{
		ID:         id.String(),
		Text:       st.Text,
		Symbols:    symbolMappingFrom(st.Symbols),
		MoveKeys:   moveKeysFrom(st.MoveKeys),
		Width:      st.Grid.Width,
		Height:     st.Grid.Height,
		Rows:       rows,
		Cursor:     st.Cursor,
		Generation: st.Generation,
		Replaying:  st.Replaying,
	}
	if st.Grid.Start != nil {
		start := st.Grid.Start.Position
		resp.Start = &start
	}
	if st.Grid.End != nil {
		end := st.Grid.End.Position
		resp.End = &end
	}
	if st.Solution != nil {
		resp.Solution = &Solution{
			Path:  st.Solution.Path,
			Moves: st.Solution.Moves,
			Steps: st.Solution.Steps(),
		}
	}
	return resp
}
