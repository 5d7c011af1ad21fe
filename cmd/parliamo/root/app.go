package root

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"parliamo/internal/config"
	"parliamo/internal/progress"
	"parliamo/internal/storage"
)

// app bundles the wired dependencies every command needs.
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	db    *sql.DB
	store *progress.Store
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := config.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	path, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	store, err := progress.NewStore(ctx, db, progress.WithLogger(log))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = db.Close()
	}
	return &app{cfg: cfg, log: log, db: db, store: store}, cleanup, nil
}
