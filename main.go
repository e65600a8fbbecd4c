package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/maze-editor-api/api"
	editorapi "github.com/beka-birhanu/maze-editor-api/api/editor"
	api_i "github.com/beka-birhanu/maze-editor-api/api/i"
	"github.com/beka-birhanu/maze-editor-api/config"
	"github.com/beka-birhanu/maze-editor-api/service"
	"github.com/beka-birhanu/maze-editor-api/ws"
)

// Global variables for dependencies
var (
	hub              *ws.Hub
	sessionManager   *service.EditorSessionManager
	editorController api_i.Controller
	router           *api.Router
	appLogger        *log.Logger
)

func newLogger(tag, color string) *log.Logger {
	prefix := fmt.Sprintf("%s[%s]%s ", color, tag, config.ColorReset)
	return log.New(os.Stdout, prefix, log.LstdFlags)
}

func initHub() {
	hub = ws.NewHub(newLogger("LIVE-FEED", config.ColorCyan))
	go hub.Listen()
	appLogger.Println("Live feed hub initialized")
}

func initSessionManager() {
	var err error
	sessionManager, err = service.NewEditorSessionManager(&service.Config{
		Broadcaster: hub,
		TTL:         time.Duration(config.Envs.SessionTTLMin) * time.Minute,
		MaxSessions: config.Envs.MaxSessions,
		StepDelay:   time.Duration(config.Envs.ReplayStepMS) * time.Millisecond,
		Logger:      newLogger("SESSION-MANAGER", config.ColorMagenta),
	})
	if err != nil {
		appLogger.Printf("Creating session manager: %v", err)
		os.Exit(1)
	}
	appLogger.Println("Session manager initialized")
}

func initEditorController() {
	var err error
	editorController, err = editorapi.NewEditorController(editorapi.Config{
		Sessions:       sessionManager,
		Live:           hub,
		MaxRows:        config.Envs.MaxMazeRows,
		MaxCols:        config.Envs.MaxMazeCols,
		RenderCellSize: config.Envs.RenderCellSize,
	})
	if err != nil {
		appLogger.Printf("Creating editor controller: %v", err)
		os.Exit(1)
	}
	appLogger.Println("Editor controller initialized")
}

func initRouter() {
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{editorController},
	})
	appLogger.Println("Router initialized")
}

// TODO: add graceful shutdown on SIGINT.
func main() {
	// Initialize dependencies
	appLogger = newLogger("APP", config.ColorGreen)

	initHub()
	defer hub.Stop()

	initSessionManager()
	defer sessionManager.StopAll()

	initEditorController()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Printf("Starting server: %v", err)
		os.Exit(1)
	}
}
