// Package app assembles the API process from configuration: the snapshot,
// the recommendation rules, the chat registry and the optional database and
// Redis backends.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yonghwan1106/e-ansimcare/internal/cache"
	"github.com/yonghwan1106/e-ansimcare/internal/chatbot"
	"github.com/yonghwan1106/e-ansimcare/internal/config"
	"github.com/yonghwan1106/e-ansimcare/internal/dataset"
	"github.com/yonghwan1106/e-ansimcare/internal/generator"
	httpapi "github.com/yonghwan1106/e-ansimcare/internal/http"
	"github.com/yonghwan1106/e-ansimcare/internal/matching"
	"github.com/yonghwan1106/e-ansimcare/internal/storage"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	cfg    *config.Config
	log    *zap.Logger
	snap   *dataset.Snapshot
	server *httpapi.Server
	store  *storage.SnapshotStore
	redis  *redis.Client
}

// LoadSnapshot reads cfg.SnapshotPath when set, otherwise generates one.
func LoadSnapshot(cfg *config.Config, logger *zap.Logger) (*dataset.Snapshot, error) {
	if cfg.SnapshotPath != "" {
		snap, err := storage.LoadSnapshotFromFile(cfg.SnapshotPath)
		if err != nil {
			return nil, err
		}
		logger.Info("snapshot loaded", zap.String("path", cfg.SnapshotPath), zap.String("snapshot_id", snap.Meta().ID.String()))
		return snap, nil
	}
	return generator.New(generator.Options{
		Config: cfg.Generator.Config,
		Seed:   cfg.Generator.Seed,
		Logger: logger,
	}).Generate(), nil
}

// LoadRules falls back to the stock rules when the file is unusable.
func LoadRules(path string, logger *zap.Logger) matching.Rules {
	rules, err := matching.LoadRulesFromFile(path)
	if err != nil {
		logger.Warn("using default rules", zap.String("path", path), zap.Error(err))
	}
	return rules
}

// OpenStore opens the configured database and ensures the schema.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*storage.SnapshotStore, error) {
	dialect, err := storage.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if dialect == storage.DialectSQLite {
		if dir := filepath.Dir(cfg.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
	}
	db, err := storage.Open(ctx, dialect, cfg.DSN)
	if err != nil {
		return nil, err
	}
	store := storage.NewSnapshotStore(db, dialect, logger)
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// New builds the process. Database and Redis failures downgrade to running
// without them; snapshot failures are fatal.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	snap, err := LoadSnapshot(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	a := &App{cfg: cfg, log: logger, snap: snap}

	if cfg.Database.Enabled {
		store, err := OpenStore(ctx, cfg.Database, logger)
		if err != nil {
			logger.Warn("database enabled but unavailable, runs disabled", zap.Error(err))
		} else {
			a.store = store
			logger.Info("database enabled", zap.String("driver", string(store.Dialect())))
		}
	}

	var agg *cache.Aggregates
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn("redis enabled but unreachable, caching disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = client.Close()
		} else {
			a.redis = client
			agg = cache.NewAggregates(cache.NewRedisKV(client), cfg.Redis.TTL, logger)
		}
	}

	a.server = httpapi.NewServer(httpapi.Options{
		Snapshot: snap,
		Engine:   matching.NewEngine(LoadRules(cfg.RulesPath, logger)),
		Chats:    chatbot.NewRegistry(cfg.Chat.MaxSessions, time.Now),
		Cache:    agg,
		Store:    a.store,
		Logger:   logger,
	})
	return a, nil
}

func (a *App) Snapshot() *dataset.Snapshot { return a.snap }

func (a *App) Handler() http.Handler { return a.server.Routes() }

// Serve answers on ln until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("API listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ListenAndServe listens on the configured address.
func (a *App) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.cfg.HTTP.Addr, err)
	}
	return a.Serve(ctx, ln)
}

func (a *App) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	return errors.Join(errs...)
}
