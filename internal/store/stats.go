package store

import (
	"context"

	"skindb/pkg/db"
)

type statsRow struct {
	TotalSkins     int64 `db:"total_skins"`
	DuplicateSkins int64 `db:"duplicate_skins"`
	Queued         int64 `db:"queued"`
	Processing     int64 `db:"processing"`
	Failed         int64 `db:"failed"`
}

func (s *Postgres) Stats(ctx context.Context) (map[string]any, error) {
	const query = `
        SELECT
            (SELECT count(*) FROM skins) AS total_skins,
            (SELECT count(*) FROM skins WHERE duplicate_of IS NOT NULL) AS duplicate_skins,
            (SELECT count(*) FROM queue WHERE status = 'QUEUED') AS queued,
            (SELECT count(*) FROM queue WHERE status = 'PROCESSING') AS processing,
            (SELECT count(*) FROM queue WHERE status = 'FAILED') AS failed
    `

	var row statsRow
	if err := db.Get(ctx, s.pool, &row, query); err != nil {
		return nil, err
	}

	return map[string]any{
		"skins": map[string]any{
			"total":      row.TotalSkins,
			"duplicates": row.DuplicateSkins,
		},
		"queue": map[string]any{
			"queued":     row.Queued,
			"processing": row.Processing,
			"failed":     row.Failed,
		},
	}, nil
}

type agentStatsRow struct {
	UserAgent   string `db:"user_agent"`
	Internal    bool   `db:"internal"`
	Submissions int64  `db:"submissions"`
}

func (s *Postgres) AdvancedStats(ctx context.Context) (map[string]any, error) {
	const topAgents = `
        SELECT a.user_agent, a.internal, count(q.id) AS submissions
        FROM agents a
        JOIN queue q ON q.agent_id = a.id
        GROUP BY a.id
        ORDER BY submissions DESC
        LIMIT 25
    `

	var agents []agentStatsRow
	if err := db.Select(ctx, s.pool, &agents, topAgents); err != nil {
		return nil, err
	}

	var last24h int64
	err := db.Get(ctx, s.pool, &last24h,
		`SELECT count(*) FROM queue WHERE created_at > now() - interval '24 hours'`)
	if err != nil {
		return nil, err
	}

	top := make([]map[string]any, 0, len(agents))
	for _, a := range agents {
		top = append(top, map[string]any{
			"user_agent":  a.UserAgent,
			"internal":    a.Internal,
			"submissions": a.Submissions,
		})
	}

	return map[string]any{
		"top_agents":      top,
		"queued_last_24h": last24h,
	}, nil
}
