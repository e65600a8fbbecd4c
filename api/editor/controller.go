// Package editorapi exposes maze editor sessions over REST and websocket.
package editorapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/beka-birhanu/maze-editor-api/editor"
	"github.com/beka-birhanu/maze-editor-api/editor/maze"
	"github.com/beka-birhanu/maze-editor-api/render"
	"github.com/beka-birhanu/maze-editor-api/service"
	"github.com/beka-birhanu/maze-editor-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

const (
	defaultMaxRows  = 100
	defaultMaxCols  = 200
	defaultCellSize = 24
)

// EditorController manages maze editor sessions over HTTP.
type EditorController struct {
	sessions i.SessionManager
	live     i.LiveFeed
	maxRows  int
	maxCols  int
	cellSize int
}

// Config holds the dependencies and limits for an editor controller.
type Config struct {
	Sessions       i.SessionManager
	Live           i.LiveFeed
	MaxRows        int // longest accepted maze text, in rows
	MaxCols        int // widest accepted maze text, in columns
	RenderCellSize int // pixels per cell in PNG renders
}

// NewEditorController initializes an EditorController.
func NewEditorController(cfg Config) (*EditorController, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("editor controller needs a session manager")
	}

	ec := &EditorController{
		sessions: cfg.Sessions,
		live:     cfg.Live,
		maxRows:  cfg.MaxRows,
		maxCols:  cfg.MaxCols,
		cellSize: cfg.RenderCellSize,
	}
	if ec.maxRows <= 0 {
		ec.maxRows = defaultMaxRows
	}
	if ec.maxCols <= 0 {
		ec.maxCols = defaultMaxCols
	}
	if ec.cellSize <= 0 {
		ec.cellSize = defaultCellSize
	}
	return ec, nil
}

// RegisterRoutes mounts the maze editor routes.
func (ec *EditorController) RegisterRoutes(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", ec.create)
		mazes.GET("/:id", ec.state)
		mazes.DELETE("/:id", ec.remove)
		mazes.PUT("/:id/text", ec.updateText)
		mazes.PUT("/:id/symbols", ec.updateSymbols)
		mazes.PUT("/:id/keys", ec.updateKeys)
		mazes.POST("/:id/solve", ec.solve)
		mazes.POST("/:id/moves", ec.move)
		mazes.GET("/:id/render", ec.renderPNG)
		mazes.GET("/:id/live", ec.liveFeed)
	}
}

// create hosts a new editor session.
func (ec *EditorController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := ec.checkTextSize(request.Text); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := editor.Config{Text: request.Text}
	if request.Symbols != nil {
		symbols, err := request.Symbols.toConfig()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cfg.Symbols = &symbols
	}
	if request.MoveKeys != nil {
		keys, err := request.MoveKeys.toConfig()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cfg.MoveKeys = &keys
	}

	id, sess, err := ec.sessions.Create(cfg)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrTooManySessions) {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, mazeResponseFrom(id, sess.State()))
}

// state returns the current state of a session.
func (ec *EditorController) state(ctx *gin.Context) {
	id, sess, ok := ec.session(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, mazeResponseFrom(id, sess.State()))
}

// remove closes a session and discards it.
func (ec *EditorController) remove(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	if err := ec.sessions.Remove(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// updateText replaces the maze text and rebuilds the grid.
func (ec *EditorController) updateText(ctx *gin.Context) {
	id, sess, ok := ec.session(ctx)
	if !ok {
		return
	}

	var request UpdateTextRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ec.checkTextSize(request.Text); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sess.SetText(request.Text); err != nil {
		ec.sessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mazeResponseFrom(id, sess.State()))
}

// updateSymbols replaces the symbol mapping and rebuilds the grid.
func (ec *EditorController) updateSymbols(ctx *gin.Context) {
	id, sess, ok := ec.session(ctx)
	if !ok {
		return
	}

	var request SymbolMapping
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	symbols, err := request.toConfig()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sess.SetSymbols(symbols); err != nil {
		ec.sessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mazeResponseFrom(id, sess.State()))
}

// updateKeys replaces the movement key binding.
func (ec *EditorController) updateKeys(ctx *gin.Context) {
	id, sess, ok := ec.session(ctx)
	if !ok {
		return
	}

	var request MoveKeys
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	keys, err := request.toConfig()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sess.SetMoveKeys(keys); err != nil {
		ec.sessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mazeResponseFrom(id, sess.State()))
}

// solve searches the maze, optionally replaying the route step by step.
func (ec *EditorController) solve(ctx *gin.Context) {
	_, sess, ok := ec.session(ctx)
	if !ok {
		return
	}

	var request SolveRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var res maze.SolverResult
	var err error
	if request.Animate {
		res, err = sess.SolveAndReplay()
	} else {
		res, err = sess.Solve()
	}
	if err != nil {
		ec.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SolveResponse{
		Path:      res.Path,
		Moves:     res.Moves,
		Steps:     res.Steps(),
		Replaying: request.Animate,
	})
}

// move applies one pressed key to the session cursor.
func (ec *EditorController) move(ctx *gin.Context) {
	id, sess, ok := ec.session(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := singleRune("key", request.Key)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moved, err := sess.ManualMove(key)
	if err != nil {
		ec.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, MoveResponse{Moved: moved, Maze: mazeResponseFrom(id, sess.State())})
}

// renderPNG returns the maze as a PNG image.
func (ec *EditorController) renderPNG(ctx *gin.Context) {
	_, sess, ok := ec.session(ctx)
	if !ok {
		return
	}

	data, err := render.PNG(sess.State(), ec.cellSize)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx.Header("Content-Disposition", `inline; filename="maze.png"`)
	ctx.Data(http.StatusOK, "image/png", data)
}

// liveFeed upgrades the connection and streams session events over it.
func (ec *EditorController) liveFeed(ctx *gin.Context) {
	id, _, ok := ec.session(ctx)
	if !ok {
		return
	}
	if ec.live == nil {
		ctx.JSON(http.StatusNotImplemented, gin.H{"error": "live feed is not enabled"})
		return
	}

	handler := websocket.Handler(func(conn *websocket.Conn) {
		ec.live.Serve(conn, id)
	})
	handler.ServeHTTP(ctx.Writer, ctx.Request)
}

// session resolves the :id route parameter to a hosted session, writing
// the error response itself when it cannot.
func (ec *EditorController) session(ctx *gin.Context) (uuid.UUID, *editor.Session, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, nil, false
	}

	sess, err := ec.sessions.Get(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return uuid.Nil, nil, false
	}
	return id, sess, true
}

// sessionError maps session operation failures to HTTP statuses.
func (ec *EditorController) sessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, editor.ErrReplayInProgress):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrMissingEndpoint), errors.Is(err, maze.ErrNoPathFound):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrInvalidSymbolMapping), errors.Is(err, maze.ErrInvalidKeyBinding):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, editor.ErrSessionClosed):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// checkTextSize keeps maze text inside the configured limits.
func (ec *EditorController) checkTextSize(text string) error {
	lines := strings.Split(text, "\n")
	if len(lines) > ec.maxRows {
		return fmt.Errorf("maze text exceeds %d rows", ec.maxRows)
	}
	for _, line := range lines {
		if utf8.RuneCountInString(line) > ec.maxCols {
			return fmt.Errorf("maze text exceeds %d columns", ec.maxCols)
		}
	}
	return nil
}
