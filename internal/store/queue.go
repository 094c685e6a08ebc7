package store

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"skindb/internal/api"
	"skindb/pkg/db"
)

const queueColumns = `id, skin_url, value, signature, agent_id, status, skin_id, result, created_at, updated_at`

// EnqueueSkin inserts a new queue entry for the skin URL. Duplicates are
// detected through the unique index on skin_url rather than a separate
// pre-check, so two near-simultaneous submissions of the same URL cannot
// both insert.
func (s *Postgres) EnqueueSkin(ctx context.Context, skinURL, value, signature string, agentID int64) (int64, error) {
	var stored bool
	err := db.Get(ctx, s.pool, &stored,
		`SELECT EXISTS (SELECT 1 FROM skins WHERE skin_url = $1)`, skinURL)
	if err != nil {
		return 0, err
	}
	if stored {
		return 0, api.ErrSkinExists
	}

	const insert = `
        INSERT INTO queue (skin_url, value, signature, agent_id, status)
        VALUES ($1, $2, $3, $4, 'QUEUED')
        ON CONFLICT (skin_url) DO NOTHING
        RETURNING id
    `

	var id int64
	err = db.Get(ctx, s.pool, &id, insert, skinURL, value, signature, agentID)
	if pgxscan.NotFound(err) {
		return 0, api.ErrSkinExists
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Postgres) QueueEntry(ctx context.Context, id int64) (*api.QueueEntry, error) {
	var entry api.QueueEntry
	err := db.Get(ctx, s.pool, &entry,
		`SELECT `+queueColumns+` FROM queue WHERE id = $1`, id)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Postgres) QueueEntryForSkin(ctx context.Context, skinID int64) (*api.QueueEntry, error) {
	var entry api.QueueEntry
	err := db.Get(ctx, s.pool, &entry,
		`SELECT `+queueColumns+` FROM queue WHERE skin_id = $1`, skinID)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
