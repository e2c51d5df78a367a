// Package app wires the storage backend, session store and services chosen
// by the configuration. The server and the admin CLI share it.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"laporrt/backend/internal/auth"
	"laporrt/backend/internal/config"
	"laporrt/backend/internal/document"
	"laporrt/backend/internal/finance"
	"laporrt/backend/internal/localization"
	"laporrt/backend/internal/report"
	"laporrt/backend/internal/session"
	"laporrt/backend/internal/storage"

	"github.com/redis/go-redis/v9"
)

// App holds the wired dependencies.
type App struct {
	Config    *config.Config
	Storage   storage.Storage
	Hasher    auth.Hasher
	Labels    *localization.Localizer
	Auth      *auth.Service
	Reports   *report.Service
	Documents *document.Service
	Finances  *finance.Service

	db      *storage.Service
	rdb     *redis.Client
	closers []func() error
}

// Open connects the backend selected by STORAGE_MODE. In local mode the
// JSON store is seeded with the demo community when LOCAL_SEED is set.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		Config: cfg,
		Hasher: auth.NewHasher(cfg.PasswordHashing),
		Labels: localization.Default(),
	}

	var sessions session.Store
	switch cfg.StorageMode {
	case config.ModePostgres:
		db, err := storage.OpenPostgres(cfg)
		if err != nil {
			return nil, err
		}
		a.db = storage.NewStorageService(db)
		a.closers = append(a.closers, a.db.Close)
		if cfg.DBAutoMigrate {
			if err := a.db.Migrate(); err != nil {
				a.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
			log.Println("INFO: Database migrations complete.")
		}
		a.Storage = a.db

		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, a.rdb.Close)
		if _, err := a.rdb.Ping(ctx).Result(); err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		sessions = session.NewRedisStore(a.rdb)
		log.Println("INFO: Database and Redis connections established.")

	case config.ModeLocal:
		local := storage.NewLocalStore(cfg.LocalStorePath)
		a.Storage = local
		sessions = session.NewLocalStore(local, storage.KeyCurrentUser)
		if cfg.LocalSeed {
			if err := a.Seed(ctx); err != nil {
				return nil, err
			}
		}
		log.Printf("INFO: Using local store at %s", local.Path())

	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.StorageMode)
	}

	manager := session.NewManager(sessions, session.NewTokens(cfg.JWTSecret), cfg.SessionTTL)
	a.Auth = auth.NewService(a.Storage, manager, a.Hasher)
	a.Reports = report.NewService(a.Storage)
	a.Documents = document.NewService(a.Storage)
	a.Finances = finance.NewService(a.Storage, a.Labels, cfg.UnitName())
	return a, nil
}

// Seed fills empty collections with the demo community.
func (a *App) Seed(ctx context.Context) error {
	return storage.Seed(ctx, a.Storage, time.Now(), a.Hasher.Hash)
}

// Migrate creates the PostgreSQL tables. It is a no-op in local mode.
func (a *App) Migrate() error {
	if a.db == nil {
		return nil
	}
	return a.db.Migrate()
}

// Unit is the letterhead of approved letters.
func (a *App) Unit() document.Unit {
	return document.Unit{RT: a.Config.RTName, RW: a.Config.RWName, Kelurahan: a.Config.Kelurahan}
}

// Ping checks every backend in use.
func (a *App) Ping(ctx context.Context) error {
	if a.db != nil {
		if err := a.db.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if local, ok := a.Storage.(*storage.LocalStore); ok {
		if _, err := local.ReadKey(ctx, storage.KeyUsers); err != nil {
			return fmt.Errorf("local store: %w", err)
		}
	}
	return nil
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("WARNING: close: %v", err)
		}
	}
	a.closers = nil
}
