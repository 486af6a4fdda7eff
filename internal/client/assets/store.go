// Package assets owns the durable on-device copy of picked images. A picker
// hands out ephemeral URIs that do not survive the session; Persist migrates
// the bytes into the app's document area and returns a stable path.
package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/verdantly/verdantly/internal/filex"
	"github.com/verdantly/verdantly/internal/logging"
)

// ErrPersistFailed marks a failed migration of picker bytes into the
// document area. It is fatal to the current commit attempt only.
var ErrPersistFailed = errors.New("asset persist failed")

// Store moves picked files into docDir and records them in the catalog.
type Store struct {
	docDir  string
	catalog *CatalogRepository
	log     logging.Logger
}

func NewStore(docDir string, db *sql.DB, log logging.Logger) *Store {
	var catalog *CatalogRepository
	if db != nil {
		catalog = NewCatalogRepository(db)
	}
	return &Store{docDir: docDir, catalog: catalog, log: log}
}

// Persist moves the file behind an ephemeral URI into the document area and
// returns the new durable path. The destination keeps the trailing segment
// of the source name; an existing file with that name gets a short uuid
// prefix instead of being overwritten.
//
// The move failing (source vanished, disk full, permission denied) wraps
// ErrPersistFailed. A catalog write failure does not fail the persist: the
// durable copy already exists, the catalog is only a resolve cache.
func (s *Store) Persist(ctx context.Context, ephemeralURI string) (string, error) {
	src := strings.TrimPrefix(ephemeralURI, "file://")
	name := filepath.Base(src)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: no file name in %q", ErrPersistFailed, ephemeralURI)
	}

	dst := filepath.Join(s.docDir, name)
	if _, err := os.Stat(dst); err == nil {
		name = uuid.NewString()[:8] + "_" + name
		dst = filepath.Join(s.docDir, name)
	}

	if err := filex.MoveFile(src, dst); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	if s.catalog != nil {
		if _, err := s.catalog.Record(ctx, name, dst); err != nil {
			s.log.Warn(ctx, "asset persisted but not cataloged", "path", dst, "error", err)
		}
	}

	return dst, nil
}

// ResolveAvatar returns the durable path of the last persisted asset, so the
// profile screen can find the avatar again after a restart. Empty string
// means no asset has ever been persisted on this device.
func (s *Store) ResolveAvatar(ctx context.Context) (string, error) {
	if s.catalog == nil {
		return "", nil
	}
	return s.catalog.Latest(ctx)
}

// DefaultDocDir ensures and returns the app's document area.
func DefaultDocDir() (string, error) {
	return filex.EnsureSubDir("documents")
}
