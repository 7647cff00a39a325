package root

import (
	"context"
	"database/sql"

	"tally/internal/config"
	"tally/internal/engine"
	"tally/internal/storage"
)

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error) {
	path := cfg.DBPath
	if path == "" {
		var err error
		path, err = storage.ResolveDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// openService wires config, storage, and engine for a command invocation.
// The returned owner keys every record the command touches.
func openService(ctx context.Context) (*engine.Service, string, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", nil, err
	}
	db, cleanup, err := openDB(ctx, cfg)
	if err != nil {
		return nil, "", nil, err
	}
	svc := engine.NewService(storage.NewStore(db))
	if debugFlag || cfg.Debug {
		svc.SetLogger(logger())
	}
	return svc, cfg.OwnerID, cleanup, nil
}
