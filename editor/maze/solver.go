package maze

import "errors"

// Solver errors.
var (
	ErrMissingEndpoint = errors.New("maze has no start or no end cell")
	ErrNoPathFound     = errors.New("no path from start to end")
)

// explorationOrder fixes which neighbor is enqueued first. Among several
// shortest paths the search therefore always returns the same one.
var explorationOrder = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// SolverResult is one shortest route through a grid.
type SolverResult struct {
	// Path holds every visited position from start to end inclusive.
	Path []Position
	// Moves spells the route as the key presses that would walk it, one
	// character per step, using the binding the solver was given.
	Moves string
}

// Steps returns the number of moves on the path.
func (r SolverResult) Steps() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// node is one breadth-first queue entry. It carries the full route that
// reached it so the result needs no backtracking pass.
type node struct {
	pos   Position
	path  []Position
	moves string
}

// Solve finds a shortest path from the grid's designated start to its
// designated end by breadth-first search over the four cardinal
// directions. It returns ErrMissingEndpoint when either endpoint is not
// designated and ErrNoPathFound when no route exists.
//
// Every call searches the given grid from scratch. Nothing is cached, so
// the result always reflects the grid it was handed.
func Solve(g *Grid, keys MoveKeyConfig) (SolverResult, error) {
	if g == nil || g.Start == nil || g.End == nil {
		return SolverResult{}, ErrMissingEndpoint
	}

	start := g.Start.Position
	end := g.End.Position

	visited := map[Position]bool{start: true}
	queue := []node{{pos: start, path: []Position{start}}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.pos == end {
			return SolverResult{Path: cur.path, Moves: cur.moves}, nil
		}

		for _, dir := range explorationOrder {
			next, ok := g.NextCell(cur.pos, dir)
			if !ok || visited[next] {
				continue
			}
			// Mark on enqueue so a cell is never queued twice.
			visited[next] = true

			path := make([]Position, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			queue = append(queue, node{
				pos:   next,
				path:  append(path, next),
				moves: cur.moves + string(keys.Key(dir)),
			})
		}
	}

	return SolverResult{}, ErrNoPathFound
}
