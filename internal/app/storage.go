package app

import (
	"fmt"

	"daily-planner-go/internal/config"
	"daily-planner-go/internal/db"
	"daily-planner-go/internal/domain/prefs"
	"daily-planner-go/internal/repository/inmemory"
	prefsrepo "daily-planner-go/internal/repository/postgres/prefs"
	sqliterepo "daily-planner-go/internal/repository/sqlite"
	"daily-planner-go/pkg/logger"
)

// Storage is the durable key/value backend plus its release hook.
type Storage struct {
	Prefs prefs.Store
	close func() error
}

func (s Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStorage opens the preferences backend selected by STORAGE_DRIVER.
func OpenStorage(cfg config.Config, log logger.Logger) (Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn("app: using in-memory storage, nothing survives a restart")
		return Storage{Prefs: inmemory.NewPrefsStore()}, nil

	case config.StorageSQLite:
		conn, err := db.NewSQLite(cfg.Storage.SQLitePath, log)
		if err != nil {
			return Storage{}, err
		}
		return Storage{Prefs: sqliterepo.NewPrefsRepository(conn), close: conn.Close}, nil

	case config.StoragePostgres:
		gormDB, err := db.NewPostgres(cfg.DB, log)
		if err != nil {
			return Storage{}, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return Storage{}, fmt.Errorf("db handle: %w", err)
		}
		if err := db.Migrate(gormDB); err != nil {
			sqlDB.Close()
			return Storage{}, fmt.Errorf("migrate: %w", err)
		}
		return Storage{Prefs: prefsrepo.NewPostgres(gormDB), close: sqlDB.Close}, nil

	default:
		return Storage{}, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
