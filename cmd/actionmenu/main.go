package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/actionmenu/internal/cli"
	"github.com/alexanderramin/actionmenu/internal/config"
	"github.com/alexanderramin/actionmenu/internal/db"
	"github.com/alexanderramin/actionmenu/internal/extraction"
	"github.com/alexanderramin/actionmenu/internal/logging"
	"github.com/alexanderramin/actionmenu/internal/repository"
	"github.com/alexanderramin/actionmenu/internal/service"
	"github.com/alexanderramin/actionmenu/internal/storage"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(configPath(args))
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app := &cli.App{}

	// Wire the state store
	var store storage.Store
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		database, err := db.OpenDB(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		sqliteStore := repository.NewSQLiteStateStore(database, cfg.Store.KeepSnapshots)
		store = sqliteStore
		app.History = sqliteStore
	default:
		store = storage.NewFileStore(cfg.Store.Path)
	}
	logger.Debug("state store ready",
		zap.String("backend", cfg.Store.Backend),
		zap.String("path", cfg.Store.Path))

	engine, err := extraction.NewEngine(extraction.Config{
		MinTokens:     cfg.Extraction.MinTokens,
		MinConfidence: cfg.Extraction.MinConfidence,
	})
	if err != nil {
		return fmt.Errorf("building extraction engine: %w", err)
	}

	// Wire services
	uow := storage.NewStateUnitOfWork(store)
	observer := service.NewLogUseCaseObserver(logger)

	journalSvc := service.NewJournalService(engine, uow, observer)
	suggestionSvc := service.NewSuggestionService(engine, uow, observer)
	sessionSvc := service.NewSessionService(uow, observer)

	app.Journal = journalSvc
	app.Suggestions = suggestionSvc
	app.Entities = service.NewEntityService(uow, observer)
	app.Sessions = sessionSvc
	app.Reflections = service.NewReflectionService(uow, observer)
	app.State = service.NewStateService(uow, observer)

	app.RecordJournal = journalSvc
	app.PromoteSuggestion = suggestionSvc
	app.LogSession = sessionSvc

	// Forms only run on a real terminal; piped input is read as text.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// configPath picks --config out of args before cobra runs, since the config
// decides how the commands are wired.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("actionmenu", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}
