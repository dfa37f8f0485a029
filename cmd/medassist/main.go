package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/CareBridge/MedAssist/internal/agent"
	"github.com/CareBridge/MedAssist/internal/api"
	"github.com/CareBridge/MedAssist/internal/genai"
	"github.com/CareBridge/MedAssist/internal/store"
	"github.com/CareBridge/MedAssist/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for MedAssist state data
	DefaultStateDir = "/var/lib/medassist"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "medassist.db"
)

// Config holds environment configuration
type Config struct {
	DatabaseURL string
	StateDir    string
	OpenAIKey   string
	Model       string
	APIAddr     string
}

// Flags holds command line flag values
type Flags struct {
	stateDir  *string
	dbDSN     *string
	openaiKey *string
	model     *string
	apiAddr   *string
}

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	client, err := genai.NewClient(genai.WithAPIKey(*flags.openaiKey), genai.WithModel(*flags.model))
	if err != nil {
		slog.Error("Failed to initialize GenAI client", "error", err)
		os.Exit(1)
	}

	svc := agent.NewService(st, client)
	server := api.NewServer(svc, api.WithAddr(*flags.apiAddr))

	slog.Info("Bootstrapping MedAssist", "api_addr", *flags.apiAddr, "dsn_set", *flags.dbDSN != "")
	if err := server.Run(); err != nil {
		slog.Error("MedAssist failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("MedAssist exited successfully")
}

// initializeLogger sets up structured logging. Debug level is enabled with
// MEDASSIST_DEBUG.
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("MEDASSIST_DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and a .env file.
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StateDir:    util.EnvOrDefault("MEDASSIST_STATE_DIR", DefaultStateDir),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:       os.Getenv("OPENAI_MODEL"),
		APIAddr:     util.EnvOrDefault("API_ADDR", api.DefaultAddr),
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"MEDASSIST_STATE_DIR", config.StateDir,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"API_ADDR", config.APIAddr)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults.
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:  flag.String("state-dir", config.StateDir, "state directory for MedAssist data (overrides $MEDASSIST_STATE_DIR)"),
		dbDSN:     flag.String("db-dsn", config.DatabaseURL, "database DSN: postgres:// URL or SQLite file path (overrides $DATABASE_URL)"),
		openaiKey: flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		model:     flag.String("model", config.Model, "OpenAI chat model for directive generation (overrides $OPENAI_MODEL)"),
		apiAddr:   flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
	}
	flag.Parse()
	return flags
}

// resolveDatabaseDSN returns the DSN to use. An empty DSN defaults to SQLite
// in the state directory. Resolved after flag parsing so -state-dir moves the
// default database location.
func resolveDatabaseDSN(dsn, stateDir string) string {
	if dsn == "" {
		return filepath.Join(stateDir, DefaultDBFileName)
	}
	return dsn
}

// buildStore selects the storage backend from the DSN: postgres:// connection
// strings get the Postgres store, everything else is treated as an SQLite
// file path.
func buildStore(flags Flags) (store.Store, error) {
	dsn := resolveDatabaseDSN(*flags.dbDSN, *flags.stateDir)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		slog.Info("Using Postgres store")
		return store.NewPostgresStore(store.WithDSN(dsn))
	}
	slog.Info("Using SQLite store", "path", dsn)
	return store.NewSQLiteStore(store.WithDSN(dsn))
}
