package cochange

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/huangsam/cogload/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB creates a co-change database with the exporter's table shape.
func newTestDB(t *testing.T, rows []schema.CoChangeRecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	_, err = db.Exec(`CREATE TABLE cochange (unit TEXT NOT NULL, timestamp INTEGER NOT NULL)`)
	require.NoError(t, err)
	for _, r := range rows {
		_, err = db.Exec(`INSERT INTO cochange (unit, timestamp) VALUES (?, ?)`, r.Unit, r.Timestamp)
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteSourceFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("records come back ordered", func(t *testing.T) {
		path := newTestDB(t, []schema.CoChangeRecord{
			{Unit: "Beta", Timestamp: 200},
			{Unit: "Alpha", Timestamp: 100},
			{Unit: "Alpha", Timestamp: 200},
		})

		source := &SQLiteSource{Path: path}
		records, err := source.Fetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, []schema.CoChangeRecord{
			{Unit: "Alpha", Timestamp: 100},
			{Unit: "Alpha", Timestamp: 200},
			{Unit: "Beta", Timestamp: 200},
		}, records)
	})

	t.Run("empty table yields no records", func(t *testing.T) {
		path := newTestDB(t, nil)
		source := &SQLiteSource{Path: path}
		records, err := source.Fetch(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("missing table errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.db")
		db, err := sql.Open("sqlite", path)
		require.NoError(t, err)
		require.NoError(t, db.Ping())
		require.NoError(t, db.Close())

		source := &SQLiteSource{Path: path}
		_, err = source.Fetch(ctx)
		assert.Error(t, err)
	})
}
