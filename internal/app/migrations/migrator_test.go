package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unicampus/internal/db"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "university.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})
	return database
}

func tableExists(t *testing.T, database *db.DB, name string) bool {
	t.Helper()
	var found string
	err := database.SQL.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&found)
	return err == nil && found == name
}

func TestMigrateCreatesTables(t *testing.T) {
	database := openTestDB(t)

	require.NoError(t, NewMigrator(database).Migrate(context.Background()))

	for _, table := range []string{"faculties", "promotions", "students", migrationTable} {
		assert.True(t, tableExists(t, database, table), "table %s", table)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, NewMigrator(database).Migrate(ctx))
	require.NoError(t, NewMigrator(database).Migrate(ctx))

	var applied int
	require.NoError(t, database.SQL.QueryRow("SELECT COUNT(*) FROM "+migrationTable).Scan(&applied))
	files, err := Files(database.Driver)
	require.NoError(t, err)
	assert.Equal(t, len(files), applied)
}

func TestFilesHasBothDrivers(t *testing.T) {
	for _, driver := range []string{"sqlite", "postgres"} {
		names, err := Files(driver)
		require.NoError(t, err)
		assert.Equal(t, []string{"001_init.sql"}, names)
	}

	_, err := Files("mysql")
	assert.Error(t, err)
}

func TestForeignKeysAreEnforced(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, NewMigrator(database).Migrate(context.Background()))

	_, err := database.SQL.Exec(
		"INSERT INTO promotions (name, faculty_id, academic_year) VALUES (?, ?, ?)",
		"Orphan", 42, "2023-2024",
	)
	assert.Error(t, err)
}
