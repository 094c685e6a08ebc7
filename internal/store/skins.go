package store

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"skindb/internal/api"
	"skindb/pkg/db"
)

const skinColumns = `id, skin_url, duplicate_of, created_at`

func (s *Postgres) Skin(ctx context.Context, id int64) (*api.Skin, error) {
	var skin api.Skin
	err := db.Get(ctx, s.pool, &skin,
		`SELECT `+skinColumns+` FROM skins WHERE id = $1`, id)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skin, nil
}

func (s *Postgres) RandomSkins(ctx context.Context, count int) ([]api.Skin, error) {
	var skins []api.Skin
	err := db.Select(ctx, s.pool, &skins,
		`SELECT `+skinColumns+` FROM skins ORDER BY random() LIMIT $1`, count)
	if err != nil {
		return nil, err
	}
	return skins, nil
}

func (s *Postgres) SkinImage(ctx context.Context, skinID int64, kind api.ImageKind) ([]byte, error) {
	var data []byte
	err := db.Get(ctx, s.pool, &data,
		`SELECT data FROM skin_images WHERE skin_id = $1 AND kind = $2`, skinID, string(kind))
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
