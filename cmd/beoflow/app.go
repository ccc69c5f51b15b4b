package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/beoflow/internal/config"
	"github.com/Shivanand-hulikatti/beoflow/internal/database"
	"github.com/Shivanand-hulikatti/beoflow/internal/kv"
	"github.com/Shivanand-hulikatti/beoflow/internal/repository"
)

// app holds the long-lived objects shared by the commands.
type app struct {
	cfg      config.Config
	log      *logrus.Logger
	events   *repository.EventRepository
	settings *repository.SettingsRepository
	closers  []func()
}

// newApp loads config, opens the configured backend and loads both stores.
func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}
	store, err := a.openStore(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	store = kv.WithPrefix(store, cfg.Store.KeyPrefix)

	a.events = repository.NewEventRepository(ctx, store, log)
	a.settings = repository.NewSettingsRepository(ctx, store, log)
	return a, nil
}

func (a *app) openStore(ctx context.Context) (kv.Store, error) {
	sc := a.cfg.Store
	log := a.log.WithField("backend", sc.Backend)

	switch sc.Backend {
	case config.BackendMemory:
		log.Warn("using in-memory store, data will not survive a restart")
		return kv.NewMemory(), nil

	case config.BackendRedis:
		r, err := kv.DialRedis(ctx, sc.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = r.Close() })
		log.Info("connected to redis")
		return r, nil

	case config.BackendPostgres:
		if err := database.Migrate(sc.Postgres, log); err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		pool, err := database.NewPool(ctx, sc.Postgres, log)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		log.Info("connected to postgres")
		return kv.NewPostgres(pool), nil

	case config.BackendSQLite:
		db, err := database.OpenSQLite(ctx, sc.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		log.WithField("path", sc.SQLitePath).Info("opened sqlite store")
		return kv.NewSQLite(db), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", sc.Backend)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
