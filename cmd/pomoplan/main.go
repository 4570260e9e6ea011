package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"pomoplan/internal/cli"
	"pomoplan/internal/db"
	"pomoplan/internal/llm"
	"pomoplan/internal/organizer"
	"pomoplan/internal/repository"
	"pomoplan/internal/server"
	"pomoplan/internal/service"
	"pomoplan/internal/sync"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.pomoplan/pomoplan.db
	dbPath := os.Getenv("POMOPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".pomoplan", "pomoplan.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	sessions := repository.NewSessionStore(repository.NewSQLiteRecordStore(database))

	observer := service.NewLogUseCaseObserver(os.Stderr)
	engine := sync.NewEngine(uow, nil)

	app := &cli.App{
		Sessions: service.NewSessionService(sessions, uow, observer),
		ServeFunc: func(addr string) error {
			return server.NewServer(engine, nil).Run(addr)
		},
	}

	// Wire the organizer against the configured LLM endpoint.
	llmCfg := llm.LoadConfig()
	var llmObserver llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		llmObserver = llm.NewLogObserver(os.Stderr)
	}
	if llmCfg.Enabled {
		client := llm.NewOllamaClient(llmCfg, llmObserver)
		org := organizer.NewLLMOrganizer(client, llmObserver)
		app.Plans = service.NewPlanService(org, observer, nil)
	} else {
		app.Plans = service.NewPlanService(organizer.NewFallbackOrganizer(), observer, nil)
	}

	// A configured server address makes this process a sync client.
	if serverURL := os.Getenv("POMOPLAN_SERVER"); serverURL != "" {
		clientID, err := loadClientID(filepath.Dir(dbPath))
		if err != nil {
			return err
		}
		app.Sync = sync.NewClient(serverURL+"/api/sync", clientID, repository.NewMemoryStore())
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// loadClientID returns this device's stable sync identity, creating it on
// first use.
func loadClientID(dir string) (string, error) {
	path := filepath.Join(dir, "client_id")
	if raw, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(raw)); id != "" {
			return id, nil
		}
	}

	id := uuid.New().String()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("storing client id: %w", err)
	}
	return id, nil
}
