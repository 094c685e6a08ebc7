package store

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"skindb/pkg/db"
)

// Postgres implements api.Store on top of a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// ResolveAgent returns the id of the agent record for the given identity,
// creating it on first sight. The insert and the fallback lookup both key
// on the unique (user_agent, internal) pair, so concurrent first sights of
// the same agent converge on one row.
func (s *Postgres) ResolveAgent(ctx context.Context, userAgent string, internal bool) (int64, error) {
	const insert = `
        INSERT INTO agents (user_agent, internal)
        VALUES ($1, $2)
        ON CONFLICT (user_agent, internal) DO NOTHING
        RETURNING id
    `

	var id int64
	err := db.Get(ctx, s.pool, &id, insert, userAgent, internal)
	if err == nil {
		return id, nil
	}
	if !pgxscan.NotFound(err) {
		return 0, err
	}

	err = db.Get(ctx, s.pool, &id,
		`SELECT id FROM agents WHERE user_agent = $1 AND internal = $2`, userAgent, internal)
	return id, err
}
