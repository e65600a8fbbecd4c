package maze

// CellKind classifies a grid cell by the role its symbol plays in the maze.
type CellKind uint8

// Cell kinds, in classification precedence order.
const (
	KindWall CellKind = iota
	KindPath
	KindStart
	KindEnd
)

// String returns a stable lowercase name for the kind.
func (k CellKind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindPath:
		return "path"
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Walkable reports whether a cell of this kind can be entered.
// Start and end cells are walkable like ordinary path cells.
func (k CellKind) Walkable() bool {
	return k != KindWall
}

// Position locates a cell on the grid. X is the column index and Y is the
// row index. Y grows downward, matching the order of the maze text lines.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Cell is a single parsed cell of the maze grid.
type Cell struct {
	Position
	Kind CellKind
}

// Direction is one of the four cardinal movement directions.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns a stable lowercase name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the column and row offsets of one step in the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}
