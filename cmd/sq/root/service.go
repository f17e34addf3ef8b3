package root

import (
	"context"
	"log/slog"
	"time"

	"sidequest/internal/config"
	"sidequest/internal/engine"
	"sidequest/internal/remote"
	"sidequest/internal/storage"
)

// openService wires config, the SQLite-backed profile store and the
// optional remote dispatcher into a service. The returned cleanup drains
// pending sync attempts and closes the database.
func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	setupLogger(cfg.Log.Level)

	path := cfg.Database.Path
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	backend, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	store := storage.NewProfileStore(backend)

	var notifier engine.Notifier
	var dispatcher *remote.Dispatcher
	if cfg.Remote.Endpoint != "" {
		client := remote.NewClient(cfg.Remote.Endpoint, time.Duration(cfg.Remote.TimeoutSeconds)*time.Second)
		dispatcher = remote.NewDispatcher(client, slog.Default())
		notifier = dispatcher
	}

	cleanup := func() {
		if dispatcher != nil {
			dispatcher.Close()
		}
		_ = backend.Close()
	}
	return engine.NewService(store, notifier), cleanup, nil
}

// openRemoteClient returns a client for the configured endpoint, or nil
// when remote sync is not configured.
func openRemoteClient() (*remote.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Remote.Endpoint == "" {
		return nil, nil
	}
	return remote.NewClient(cfg.Remote.Endpoint, time.Duration(cfg.Remote.TimeoutSeconds)*time.Second), nil
}
