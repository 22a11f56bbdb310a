package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/worldcore/internal/config"
	"github.com/udisondev/worldcore/internal/db"
	"github.com/udisondev/worldcore/internal/scripting"
	"github.com/udisondev/worldcore/internal/spawn"
	"github.com/udisondev/worldcore/internal/world"
)

const WorldConfigPath = "config/worldserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfg, err := config.LoadWorldServer(config.ResolvePath(WorldConfigPath))
	if err != nil {
		return fmt.Errorf("loading world config: %w", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	slog.Info("worldcore starting",
		"log_level", cfg.LogLevel,
		"cells_per_grid", cfg.Grid.CellsPerGrid,
		"grids_per_map", cfg.Grid.GridsPerMap,
		"grid_size", cfg.Grid.GridSize)

	layout := &cfg.Grid
	index := spawn.NewIndex(layout)

	var (
		repo     spawn.Repository = spawn.NewStaticRepository(nil, nil)
		respawns *db.RespawnRepository
	)
	if cfg.UseDatabase {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		repo = db.NewSpawnRepository(database.Pool())
		respawns = db.NewRespawnRepository(database.Pool())
	} else {
		slog.Warn("database disabled, running on an empty spawn store")
	}

	if err := spawn.NewManager(repo, index).Load(ctx); err != nil {
		return fmt.Errorf("loading spawns: %w", err)
	}

	scripts, err := scripting.NewEngine(cfg.ScriptsDir)
	if err != nil {
		return fmt.Errorf("loading scripts: %w", err)
	}
	defer scripts.Close()
	// Instance scripts take their evade areas from scripts.Boundary.
	for _, name := range scripts.Names() {
		cb, err := scripts.Boundary(name)
		if err != nil {
			return fmt.Errorf("resolving boundary %s: %w", name, err)
		}
		slog.Debug("encounter boundary", "name", name, "shapes", len(cb))
	}

	mgr := world.NewManager(cfg.Maps, layout, index)

	if respawns != nil {
		if err := restoreRespawns(ctx, mgr, respawns, cfg.Maps.Instances); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting map manager", "interval", cfg.Maps.UpdateInterval)
		if err := mgr.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("map manager: %w", err)
		}
		return nil
	})

	// Wait for all goroutines
	runErr := g.Wait()

	if respawns != nil {
		// ctx is already cancelled
		saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := saveRespawns(saveCtx, mgr, respawns, cfg.Maps.Instances); err != nil {
			return errors.Join(runErr, err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("server error: %w", runErr)
	}
	slog.Info("worldcore stopped")
	return nil
}

// restoreRespawns queues the respawns persisted at the last shutdown.
func restoreRespawns(ctx context.Context, mgr *world.Manager, repo *db.RespawnRepository, maps []config.MapEntry) error {
	for _, entry := range maps {
		m, err := mgr.Map(entry.ID)
		if err != nil {
			return err
		}
		infos, err := repo.Load(ctx, entry.ID)
		if err != nil {
			return fmt.Errorf("restoring respawns: %w", err)
		}
		for _, info := range infos {
			m.SaveRespawn(info)
		}
		slog.Info("respawns restored", "map", entry.ID, "count", m.PendingRespawns())
	}
	return nil
}

// saveRespawns persists the pending respawns of every map.
func saveRespawns(ctx context.Context, mgr *world.Manager, repo *db.RespawnRepository, maps []config.MapEntry) error {
	var errs []error
	for _, entry := range maps {
		m, err := mgr.Map(entry.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := repo.Save(ctx, entry.ID, m.Respawns().All()); err != nil {
			errs = append(errs, fmt.Errorf("saving respawns: %w", err))
			continue
		}
		slog.Info("respawns saved", "map", entry.ID, "count", m.PendingRespawns())
	}
	return errors.Join(errs...)
}
