package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/worldcore/internal/respawn"
	"github.com/udisondev/worldcore/internal/spawn"
)

// RespawnRepository persists pending respawns per map so they survive a
// restart.
type RespawnRepository struct {
	pool *pgxpool.Pool
}

// NewRespawnRepository creates a new respawn repository
func NewRespawnRepository(pool *pgxpool.Pool) *RespawnRepository {
	return &RespawnRepository{pool: pool}
}

// Load returns the pending respawns of a map in respawn order.
func (r *RespawnRepository) Load(ctx context.Context, mapID uint32) ([]*respawn.Info, error) {
	query := `
		SELECT spawn_type, spawn_id, entry, respawn_time, grid_id
		FROM respawns
		WHERE map_id = $1
		ORDER BY respawn_time, spawn_id, spawn_type
	`

	rows, err := r.pool.Query(ctx, query, int32(mapID))
	if err != nil {
		return nil, fmt.Errorf("loading respawns for map %d: %w", mapID, err)
	}
	defer rows.Close()

	var infos []*respawn.Info

	for rows.Next() {
		var (
			spawnType int16
			spawnID   int64
			entry     int32
			gridID    int32
			info      respawn.Info
		)

		if err := rows.Scan(&spawnType, &spawnID, &entry, &info.RespawnTime, &gridID); err != nil {
			return nil, fmt.Errorf("scanning respawn row: %w", err)
		}

		info.Type = spawn.SpawnObjectType(spawnType)
		info.SpawnID = uint64(spawnID)
		info.Entry = uint32(entry)
		info.GridID = uint32(gridID)
		infos = append(infos, &info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating respawn rows: %w", err)
	}

	return infos, nil
}

// Save replaces the pending respawns of a map in one transaction.
func (r *RespawnRepository) Save(ctx context.Context, mapID uint32, infos []respawn.Info) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for map %d respawns: %w", mapID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			slog.Error("rollback failed", "map", mapID, "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM respawns WHERE map_id = $1`, int32(mapID)); err != nil {
		return fmt.Errorf("deleting old respawns for map %d: %w", mapID, err)
	}

	if len(infos) > 0 {
		batch := &pgx.Batch{}
		for _, info := range infos {
			batch.Queue(
				`INSERT INTO respawns (map_id, spawn_type, spawn_id, entry, respawn_time, grid_id)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				int32(mapID), int16(info.Type), int64(info.SpawnID), int32(info.Entry),
				info.RespawnTime, int32(info.GridID),
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range infos {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("inserting respawn for map %d: %w", mapID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit map %d respawns: %w", mapID, err)
	}
	return nil
}
