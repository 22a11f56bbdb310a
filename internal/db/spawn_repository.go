package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/worldcore/internal/model"
	"github.com/udisondev/worldcore/internal/spawn"
)

// SpawnRepository loads spawn points and corpses. It implements
// spawn.Repository.
type SpawnRepository struct {
	pool *pgxpool.Pool
}

// NewSpawnRepository creates a new spawn repository
func NewSpawnRepository(pool *pgxpool.Pool) *SpawnRepository {
	return &SpawnRepository{pool: pool}
}

// LoadSpawns loads every spawn point.
func (r *SpawnRepository) LoadSpawns(ctx context.Context) ([]*spawn.SpawnData, error) {
	query := `
		SELECT spawn_type, spawn_id, map_id, entry, x, y, z, orientation,
		       phase_id, difficulties, respawn_secs
		FROM spawns
		ORDER BY spawn_type, spawn_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading all spawns: %w", err)
	}
	defer rows.Close()

	spawns := make([]*spawn.SpawnData, 0, 256)

	for rows.Next() {
		var (
			spawnType    int16
			spawnID      int64
			mapID        int32
			entry        int32
			x, y, z, o   float32
			phaseID      int32
			difficulties []int16
			respawnSecs  int32
		)

		if err := rows.Scan(&spawnType, &spawnID, &mapID, &entry, &x, &y, &z, &o,
			&phaseID, &difficulties, &respawnSecs); err != nil {
			return nil, fmt.Errorf("scanning spawn row: %w", err)
		}

		d := spawn.NewSpawnData(spawn.SpawnObjectType(spawnType), uint64(spawnID), uint32(mapID),
			uint32(entry), model.NewPosition(x, y, z, o))
		d.PhaseID = uint32(phaseID)
		d.RespawnDelay = time.Duration(respawnSecs) * time.Second
		for _, diff := range difficulties {
			d.Difficulties = append(d.Difficulties, uint8(diff))
		}
		spawns = append(spawns, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spawn rows: %w", err)
	}

	return spawns, nil
}

// CreateSpawn stores a spawn point, replacing one with the same type and id.
func (r *SpawnRepository) CreateSpawn(ctx context.Context, d *spawn.SpawnData) error {
	query := `
		INSERT INTO spawns (spawn_type, spawn_id, map_id, entry, x, y, z, orientation,
		                    phase_id, difficulties, respawn_secs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (spawn_type, spawn_id) DO UPDATE SET
			map_id       = EXCLUDED.map_id,
			entry        = EXCLUDED.entry,
			x            = EXCLUDED.x,
			y            = EXCLUDED.y,
			z            = EXCLUDED.z,
			orientation  = EXCLUDED.orientation,
			phase_id     = EXCLUDED.phase_id,
			difficulties = EXCLUDED.difficulties,
			respawn_secs = EXCLUDED.respawn_secs
	`

	difficulties := make([]int16, 0, len(d.Difficulties))
	for _, diff := range d.Difficulties {
		difficulties = append(difficulties, int16(diff))
	}

	pos := d.Position
	_, err := r.pool.Exec(ctx, query,
		int16(d.Type),
		int64(d.SpawnID),
		int32(d.MapID),
		int32(d.Entry),
		pos.X, pos.Y, pos.Z, pos.O,
		int32(d.PhaseID),
		difficulties,
		int32(d.RespawnDelay/time.Second),
	)
	if err != nil {
		return fmt.Errorf("creating %s spawn %d: %w", d.Type, d.SpawnID, err)
	}
	return nil
}

// DeleteSpawn removes a spawn point.
func (r *SpawnRepository) DeleteSpawn(ctx context.Context, t spawn.SpawnObjectType, spawnID uint64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM spawns WHERE spawn_type = $1 AND spawn_id = $2`,
		int16(t), int64(spawnID),
	)
	if err != nil {
		return fmt.Errorf("deleting %s spawn %d: %w", t, spawnID, err)
	}
	return nil
}

// LoadCorpses loads every persisted corpse.
func (r *SpawnRepository) LoadCorpses(ctx context.Context) ([]spawn.CorpseRecord, error) {
	query := `
		SELECT guid, owner_guid, corpse_type, map_id, x, y, z, orientation, created_at
		FROM corpses
		ORDER BY guid
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading all corpses: %w", err)
	}
	defer rows.Close()

	var corpses []spawn.CorpseRecord

	for rows.Next() {
		var (
			guid, owner int64
			corpseType  int16
			mapID       int32
			x, y, z, o  float32
			createdAt   time.Time
		)

		if err := rows.Scan(&guid, &owner, &corpseType, &mapID, &x, &y, &z, &o, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning corpse row: %w", err)
		}

		rec := spawn.CorpseRecord{
			GUIDLow:   uint64(guid),
			Type:      model.CorpseType(corpseType),
			MapID:     uint32(mapID),
			Position:  model.NewPosition(x, y, z, o),
			CreatedAt: createdAt,
		}
		if owner != 0 {
			rec.Owner = model.ObjectGUID{High: model.HighGUIDPlayer, Low: uint64(owner)}
		}
		corpses = append(corpses, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpse rows: %w", err)
	}

	return corpses, nil
}

// SaveCorpse stores a corpse, replacing one with the same GUID.
func (r *SpawnRepository) SaveCorpse(ctx context.Context, c spawn.CorpseRecord) error {
	query := `
		INSERT INTO corpses (guid, owner_guid, corpse_type, map_id, x, y, z, orientation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (guid) DO UPDATE SET
			owner_guid  = EXCLUDED.owner_guid,
			corpse_type = EXCLUDED.corpse_type,
			map_id      = EXCLUDED.map_id,
			x           = EXCLUDED.x,
			y           = EXCLUDED.y,
			z           = EXCLUDED.z,
			orientation = EXCLUDED.orientation
	`

	pos := c.Position
	_, err := r.pool.Exec(ctx, query,
		int64(c.GUIDLow),
		int64(c.Owner.Low),
		int16(c.Type),
		int32(c.MapID),
		pos.X, pos.Y, pos.Z, pos.O,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving corpse %d: %w", c.GUIDLow, err)
	}
	return nil
}

// DeleteCorpse removes a corpse.
func (r *SpawnRepository) DeleteCorpse(ctx context.Context, guidLow uint64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM corpses WHERE guid = $1`, int64(guidLow))
	if err != nil {
		return fmt.Errorf("deleting corpse %d: %w", guidLow, err)
	}
	return nil
}
