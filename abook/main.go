package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rhystmorgan/abook/internal/api"
	"rhystmorgan/abook/internal/config"
	"rhystmorgan/abook/internal/logging"
	"rhystmorgan/abook/internal/models"
	"rhystmorgan/abook/internal/storage"
	"rhystmorgan/abook/internal/syncer"
	"rhystmorgan/abook/internal/views"
)

var version = "dev"

func main() {
	serverURL := flag.String("server", "", "contacts server base URL (overrides config)")
	configPath := flag.String("config", "", "path to a YAML config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("abook", version)
		return
	}

	if err := run(*serverURL, *configPath); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

func run(serverURL, configPath string) error {
	store, err := storage.NewStorage()
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	cfg, err := config.Load(config.Options{
		ConfigPath:  configPath,
		DefaultPath: store.ConfigPath(),
		ServerURL:   serverURL,
	})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = store.LogPath()
	}
	log, closeLog, err := logging.New(logging.Options{File: logFile, Debug: cfg.Debug})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer closeLog()

	log.Info("starting abook",
		zap.String("version", version),
		zap.String("server", cfg.ServerURL),
	)

	client := api.NewClient(cfg.ServerURL, api.WithLogger(log.Named("api")))

	app, err := views.NewAppModel(views.Options{
		Syncer:    syncer.New(client, log.Named("sync")),
		Storage:   store,
		ExportDir: cfg.ExportDir,
		NewID:     models.ClockIDs,
		Logger:    log.Named("ui"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Error("program exited with error", zap.Error(err))
		return err
	}

	log.Info("abook stopped")
	return nil
}
