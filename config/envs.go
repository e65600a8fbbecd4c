package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP         string // Host IP for the server
	RESTPort       int    // Port for the REST API
	GinMode        string // Mode for the Gin framework (e.g., release, debug, test)
	ReplayStepMS   int    // Delay between animated replay steps, in milliseconds
	SessionTTLMin  int    // Minutes an idle editor session survives before it is swept
	MaxSessions    int    // Upper bound on concurrently hosted editor sessions
	MaxMazeRows    int    // Largest number of rows accepted in maze text
	MaxMazeCols    int    // Largest number of columns accepted in maze text
	RenderCellSize int    // Side length of one maze cell in rendered PNGs, in pixels
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	// Populate the Config struct with required environment variables
	return Config{
		HostIP:         getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:       getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:        getEnvWithDefault("GIN_MODE", "release"),
		ReplayStepMS:   getEnvAsIntWithDefault("REPLAY_STEP_MS", 150),
		SessionTTLMin:  getEnvAsIntWithDefault("SESSION_TTL_MIN", 15),
		MaxSessions:    getEnvAsIntWithDefault("MAX_SESSIONS", 128),
		MaxMazeRows:    getEnvAsIntWithDefault("MAX_MAZE_ROWS", 100),
		MaxMazeCols:    getEnvAsIntWithDefault("MAX_MAZE_COLS", 200),
		RenderCellSize: getEnvAsIntWithDefault("RENDER_CELL_SIZE", 24),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer or returns a
// default value if not set. A value that cannot be parsed is a fatal configuration error.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
