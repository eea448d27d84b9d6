package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/apothecary/internal/game/session"
)

// ErrSnapshotNotFound is returned when no snapshot matches a lookup.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository persists session snapshots. Progression and quest state
// are stored as JSONB; level and profession are copied into columns for
// querying.
type SnapshotRepository struct {
	db *pgxpool.Pool
}

// NewSnapshotRepository creates a SnapshotRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save inserts snap or replaces the stored snapshot with the same session ID.
//
// Precondition: snap.ID must not be uuid.Nil.
// Postcondition: The stored row matches snap, or a non-nil error is returned.
func (r *SnapshotRepository) Save(ctx context.Context, snap session.Snapshot) error {
	if snap.ID == uuid.Nil {
		return fmt.Errorf("saving snapshot: session id must be set")
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO session_snapshots
			(session_id, player_name, turn, level, profession, progression, quests)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (session_id) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			turn        = EXCLUDED.turn,
			level       = EXCLUDED.level,
			profession  = EXCLUDED.profession,
			progression = EXCLUDED.progression,
			quests      = EXCLUDED.quests,
			updated_at  = NOW()`,
		snap.ID, snap.PlayerName, snap.Turn,
		snap.Progression.Level, string(snap.Progression.Profession),
		snap.Progression, snap.Quests,
	)
	if err != nil {
		return fmt.Errorf("saving snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// Load returns the snapshot stored for id.
//
// Postcondition: Returns ErrSnapshotNotFound when no row exists.
func (r *SnapshotRepository) Load(ctx context.Context, id uuid.UUID) (session.Snapshot, error) {
	return r.scanOne(ctx, `
		SELECT session_id, player_name, turn, progression, quests
		FROM session_snapshots WHERE session_id = $1`, id)
}

// LoadLatestForPlayer returns the most recently saved snapshot of playerName.
//
// Postcondition: Returns ErrSnapshotNotFound when the player has no snapshot.
func (r *SnapshotRepository) LoadLatestForPlayer(ctx context.Context, playerName string) (session.Snapshot, error) {
	return r.scanOne(ctx, `
		SELECT session_id, player_name, turn, progression, quests
		FROM session_snapshots WHERE player_name = $1
		ORDER BY updated_at DESC LIMIT 1`, playerName)
}

func (r *SnapshotRepository) scanOne(ctx context.Context, query string, arg any) (session.Snapshot, error) {
	var snap session.Snapshot
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&snap.ID, &snap.PlayerName, &snap.Turn, &snap.Progression, &snap.Quests,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Snapshot{}, ErrSnapshotNotFound
		}
		return session.Snapshot{}, fmt.Errorf("querying snapshot: %w", err)
	}
	return snap, nil
}

// Delete removes the snapshot stored for id.
//
// Postcondition: Returns ErrSnapshotNotFound when no row was deleted.
func (r *SnapshotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM session_snapshots WHERE session_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}
