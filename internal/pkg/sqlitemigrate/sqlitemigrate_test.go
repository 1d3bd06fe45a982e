package sqlitemigrate_test

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/chargen/internal/pkg/sqlitemigrate"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyRunsEachFileOnce(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	migrations := fstest.MapFS{
		"0001_things.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE things (id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE things;\n")},
		"0002_seed.sql":   {Data: []byte("INSERT INTO things (id) VALUES ('a');")},
		"README.md":       {Data: []byte("ignored")},
	}

	require.NoError(t, sqlitemigrate.Apply(ctx, db, migrations, ""))
	require.NoError(t, sqlitemigrate.Apply(ctx, db, migrations, "."))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM things").Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestApplyReportsBadSQL(t *testing.T) {
	db := openMemory(t)
	migrations := fstest.MapFS{
		"0001_bad.sql": {Data: []byte("CREATE TABEL nope;")},
	}

	err := sqlitemigrate.Apply(context.Background(), db, migrations, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0001_bad.sql")
}

func TestUpSection(t *testing.T) {
	assert.Equal(t, "\nA\n", sqlitemigrate.UpSection("-- +migrate Up\nA\n-- +migrate Down\nB"))
	assert.Equal(t, "\nA", sqlitemigrate.UpSection("-- +migrate Up\nA"))
	assert.Equal(t, "plain", sqlitemigrate.UpSection("plain"))
}
