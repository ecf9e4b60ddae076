package migrations

import (
	"testing"

	"board/internal/model"
	"board/pkg/database"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_UpAndDown(t *testing.T) {
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	goose.SetBaseFS(FS)
	t.Cleanup(func() { goose.SetBaseFS(nil) })
	require.NoError(t, goose.SetDialect("sqlite3"))

	require.NoError(t, goose.Up(sqlDB, "."))

	version, err := goose.GetDBVersion(sqlDB)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	// Every column but id accepts NULL, as with the gorm model.
	_, err = sqlDB.Exec(`INSERT INTO board (id, title, content, filename, filepath) VALUES (1, NULL, NULL, NULL, NULL)`)
	require.NoError(t, err)

	for _, column := range []string{"id", "title", "content", "filename", "filepath"} {
		assert.True(t, db.Migrator().HasColumn(&model.PostModel{}, column), column)
	}

	require.NoError(t, goose.DownTo(sqlDB, ".", 0))
	assert.False(t, db.Migrator().HasTable(&model.PostModel{}))
}
