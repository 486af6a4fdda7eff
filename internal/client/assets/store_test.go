package assets

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verdantly/verdantly/internal/logging"

	_ "modernc.org/sqlite"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func setupCatalogDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE assets (
  id          TEXT PRIMARY KEY,
  source_name TEXT NOT NULL,
  path        TEXT NOT NULL,
  created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`)
	require.NoError(t, err)
	return db
}

func writeTempAsset(t *testing.T, name string) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(src, []byte("image-bytes"), 0o660))
	return src
}

func TestPersist_MovesIntoDocumentArea(t *testing.T) {
	docDir := t.TempDir()
	db := setupCatalogDB(t)
	s := NewStore(docDir, db, testLogger())

	src := writeTempAsset(t, "avatar.jpg")
	got, err := s.Persist(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(docDir, "avatar.jpg"), got)

	// moved, not copied
	_, err = os.Stat(src)
	require.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	require.Equal(t, []byte("image-bytes"), data)
}

func TestPersist_StripsFileScheme(t *testing.T) {
	docDir := t.TempDir()
	s := NewStore(docDir, nil, testLogger())

	src := writeTempAsset(t, "pic.png")
	got, err := s.Persist(context.Background(), "file://"+src)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(docDir, "pic.png"), got)
}

func TestPersist_CollisionGetsFreshName(t *testing.T) {
	docDir := t.TempDir()
	s := NewStore(docDir, nil, testLogger())

	require.NoError(t, os.WriteFile(filepath.Join(docDir, "avatar.jpg"), []byte("old"), 0o660))

	src := writeTempAsset(t, "avatar.jpg")
	got, err := s.Persist(context.Background(), src)
	require.NoError(t, err)
	require.NotEqual(t, filepath.Join(docDir, "avatar.jpg"), got)
	require.Equal(t, docDir, filepath.Dir(got))

	// the prior file is untouched
	old, err := os.ReadFile(filepath.Join(docDir, "avatar.jpg"))
	require.NoError(t, err)
	require.Equal(t, []byte("old"), old)
}

func TestPersist_SourceVanished(t *testing.T) {
	s := NewStore(t.TempDir(), nil, testLogger())

	_, err := s.Persist(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))
	require.ErrorIs(t, err, ErrPersistFailed)
}

func TestPersist_RecordsInCatalog(t *testing.T) {
	docDir := t.TempDir()
	db := setupCatalogDB(t)
	s := NewStore(docDir, db, testLogger())

	src := writeTempAsset(t, "avatar.jpg")
	got, err := s.Persist(context.Background(), src)
	require.NoError(t, err)

	resolved, err := s.ResolveAvatar(context.Background())
	require.NoError(t, err)
	require.Equal(t, got, resolved)
}

func TestResolveAvatar_EmptyCatalog(t *testing.T) {
	db := setupCatalogDB(t)
	s := NewStore(t.TempDir(), db, testLogger())

	resolved, err := s.ResolveAvatar(context.Background())
	require.NoError(t, err)
	require.Empty(t, resolved)
}

func TestInitDatabase_AppliesMigrations(t *testing.T) {
	chdir(t, t.TempDir())

	db, err := InitDatabase(context.Background(), "catalog.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewCatalogRepository(db)
	id, err := repo.Record(context.Background(), "a.jpg", "/docs/a.jpg")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	latest, err := repo.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/docs/a.jpg", latest)
}
