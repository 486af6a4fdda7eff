package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/verdantly/verdantly/internal/dbx"
)

// CatalogRepository records persisted assets in the local sqlite catalog so
// a durable path can be resolved again after an app restart.
type CatalogRepository struct {
	db dbx.DBTX
}

func NewCatalogRepository(db dbx.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Record stores a persisted asset and returns its catalog id.
func (r *CatalogRepository) Record(ctx context.Context, sourceName, path string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (id, source_name, path) VALUES (?, ?, ?)`,
		id, sourceName, path)
	if err != nil {
		return "", fmt.Errorf("failed to record asset %s: %w", sourceName, err)
	}
	return id, nil
}

// Latest returns the durable path of the most recently persisted asset,
// or "" when the catalog is empty.
func (r *CatalogRepository) Latest(ctx context.Context) (string, error) {
	var path string
	err := r.db.QueryRowContext(ctx,
		`SELECT path FROM assets ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read latest asset: %w", err)
	}
	return path, nil
}
