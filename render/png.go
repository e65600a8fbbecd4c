// Package render rasterizes editor session snapshots into PNG images.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/beka-birhanu/maze-editor-api/editor"
	"github.com/beka-birhanu/maze-editor-api/editor/maze"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyGrid indicates a snapshot whose grid has no cells to draw.
var ErrEmptyGrid = errors.New("grid has no cells to render")

const (
	captionHeight = 20
	minCellSize   = 6
)

// Cell and marker colors.
var (
	backgroundColor = color.RGBA{255, 255, 255, 255}
	wallColor       = color.RGBA{55, 71, 79, 255}
	pathColor       = color.RGBA{250, 250, 250, 255}
	startColor      = color.RGBA{76, 175, 80, 255}
	endColor        = color.RGBA{244, 67, 54, 255}
	routeColor      = color.RGBA{255, 193, 7, 255}
	cursorColor     = color.RGBA{33, 150, 243, 255}
	markerBorder    = color.RGBA{255, 255, 255, 255}
	captionColor    = color.RGBA{66, 66, 66, 255}
)

// PNG renders a session snapshot. Cells are colored by kind, the solved
// route is drawn between cell centers, the designated endpoints get
// circles and the cursor a diamond. A caption under the maze reports the
// grid size and solve status.
func PNG(state editor.State, cellSize int) ([]byte, error) {
	grid := state.Grid
	if grid == nil || grid.Width == 0 {
		return nil, ErrEmptyGrid
	}
	if cellSize < minCellSize {
		cellSize = minCellSize
	}

	width := grid.Width * cellSize
	height := grid.Height*cellSize + captionHeight
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{backgroundColor}, image.Point{}, draw.Src)

	for _, row := range grid.Rows {
		for _, cell := range row {
			fillCell(img, cell.Position, cellSize, kindColor(cell.Kind))
		}
	}

	if state.Solution != nil {
		drawRoute(img, state.Solution.Path, cellSize)
	}

	radius := int(float64(cellSize) * 0.35)
	if grid.Start != nil {
		cx, cy := cellCenter(grid.Start.Position, cellSize)
		drawCircle(img, cx, cy, radius, startColor, markerBorder, 2)
	}
	if grid.End != nil {
		cx, cy := cellCenter(grid.End.Position, cellSize)
		drawCircle(img, cx, cy, radius, endColor, markerBorder, 2)
	}

	if state.Cursor != nil {
		cx, cy := cellCenter(*state.Cursor, cellSize)
		drawDiamond(img, cx, cy, int(float64(cellSize)*0.3), cursorColor, markerBorder, 2)
	}

	drawCaption(img, caption(state), grid.Height*cellSize)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func kindColor(kind maze.CellKind) color.RGBA {
	switch kind {
	case maze.KindWall:
		return wallColor
	case maze.KindStart:
		return startColor
	case maze.KindEnd:
		return endColor
	default:
		return pathColor
	}
}

func caption(state editor.State) string {
	size := fmt.Sprintf("%d x %d", state.Grid.Width, state.Grid.Height)
	switch {
	case state.Replaying && state.Solution != nil:
		return fmt.Sprintf("%s | replaying %d steps", size, state.Solution.Steps())
	case state.Solution != nil:
		return fmt.Sprintf("%s | solved in %d steps", size, state.Solution.Steps())
	default:
		return size + " | unsolved"
	}
}

func cellCenter(p maze.Position, cellSize int) (int, int) {
	return p.X*cellSize + cellSize/2, p.Y*cellSize + cellSize/2
}

func fillCell(img *image.RGBA, p maze.Position, cellSize int, c color.RGBA) {
	fillRect(img, p.X*cellSize, p.Y*cellSize, (p.X+1)*cellSize, (p.Y+1)*cellSize, c)
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	bounds := img.Bounds()
	for y := max(y0, bounds.Min.Y); y < min(y1, bounds.Max.Y); y++ {
		for x := max(x0, bounds.Min.X); x < min(x1, bounds.Max.X); x++ {
			img.Set(x, y, c)
		}
	}
}

// drawRoute joins consecutive path cells with thick segments. Path steps
// are always cardinal, so every segment is an axis aligned rectangle.
func drawRoute(img *image.RGBA, path []maze.Position, cellSize int) {
	thickness := cellSize / 4
	if thickness < 2 {
		thickness = 2
	}

	for i := 1; i < len(path); i++ {
		x0, y0 := cellCenter(path[i-1], cellSize)
		x1, y1 := cellCenter(path[i], cellSize)
		fillRect(img,
			min(x0, x1)-thickness/2, min(y0, y1)-thickness/2,
			max(x0, x1)+thickness/2, max(y0, y1)+thickness/2,
			routeColor)
	}
}

func drawCircle(img *image.RGBA, cx, cy, radius int, fill, border color.RGBA, borderWidth int) {
	outer := radius + borderWidth
	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			if dx*dx+dy*dy > outer*outer {
				continue
			}
			c := border
			if dx*dx+dy*dy <= radius*radius {
				c = fill
			}
			setClamped(img, cx+dx, cy+dy, c)
		}
	}
}

func drawDiamond(img *image.RGBA, cx, cy, size int, fill, border color.RGBA, borderWidth int) {
	outer := size + borderWidth
	for dy := -outer; dy <= outer; dy++ {
		halfWidth := outer - abs(dy)
		for dx := -halfWidth; dx <= halfWidth; dx++ {
			c := border
			if abs(dx)+abs(dy) <= size {
				c = fill
			}
			setClamped(img, cx+dx, cy+dy, c)
		}
	}
}

func drawCaption(img *image.RGBA, text string, top int) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(captionColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(4), Y: fixed.I(top + 14)},
	}
	drawer.DrawString(text)
}

func setClamped(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	img.Set(x, y, c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
