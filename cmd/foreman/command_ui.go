package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"foreman/internal/app"
	"foreman/internal/client"
	"foreman/internal/config"
	"foreman/internal/logging"
	"foreman/internal/session"
	"foreman/internal/store"
)

func runUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return err
	}

	logger, closeLog := uiLogger(cfg)
	defer closeLog()

	api := client.New(cfg.BaseURL(), time.Duration(cfg.RequestTimeoutSeconds())*time.Second)

	tokenPath, err := config.TokenPath()
	if err != nil {
		return err
	}
	sessions := session.NewStore(api, tokenPath)

	statePath, err := config.StateDBPath()
	if err != nil {
		return err
	}
	stateStore, err := store.NewBboltStateStore(statePath)
	if err != nil {
		logger.Warn("ui state store unavailable", logging.F("path", statePath), logging.F("err", err))
		stateStore = store.NewMemoryStateStore()
	}
	defer stateStore.Close()

	downloadsDir, err := cfg.DownloadsDir()
	if err != nil {
		return err
	}

	logger.Info("starting ui", logging.F("base_url", cfg.BaseURL()))
	return app.Run(app.Options{
		Session:      sessions,
		API:          app.NewClientAPI(api),
		StateStore:   stateStore,
		PageSize:     cfg.PageSize(),
		DownloadsDir: downloadsDir,
		Logger:       logger,
	})
}

// uiLogger writes logfmt lines to ~/.foreman/ui.log. Logging never blocks
// startup; on failure the UI runs with a no-op logger.
func uiLogger(cfg config.Config) (logging.Logger, func()) {
	logPath, err := config.UILogPath()
	if err != nil {
		return logging.Nop(), func() {}
	}
	logger, closeFn, err := logging.NewFileLogger(logPath, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		return logging.Nop(), func() {}
	}
	return logger, func() { _ = closeFn() }
}

func runConfig(out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, string(encoded))
	return err
}
