package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"board/internal/entity"
	"board/internal/model"
	"board/internal/repo/persistent"
	"board/internal/usecase"
	"board/pkg/database"
	"board/pkg/filestore"
	"board/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedPosts(t *testing.T) {
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PostModel{}))

	dir := t.TempDir()
	files, err := filestore.NewLocal(dir)
	require.NoError(t, err)

	repo := persistent.NewPostRepository(db)
	boardUseCase := usecase.NewBoardUseCase(repo, files, nil, logger.New())

	created, err := seedPosts(boardUseCase, 7, true, logger.New())
	require.NoError(t, err)
	assert.Equal(t, 7, created)

	page, err := repo.List(entity.DefaultPageRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(7), page.TotalElements)

	first, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(first.Filename, "_note-1.txt"))

	content, err := os.ReadFile(filepath.Join(dir, first.Filename))
	require.NoError(t, err)
	assert.Equal(t, "Sample post number 1.", string(content))

	second, err := repo.GetByID(2)
	require.NoError(t, err)
	assert.False(t, second.HasAttachment())
}
