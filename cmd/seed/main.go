package main

import (
	"bytes"
	"flag"
	"fmt"
	"mime/multipart"

	"board/internal/entity"
	"board/internal/model"
	"board/internal/repo/persistent"
	"board/internal/usecase"
	"board/pkg/config"
	"board/pkg/database"
	"board/pkg/filestore"
	"board/pkg/logger"
)

var sampleTitles = []string{
	"Welcome to the board",
	"Apple pie recipe",
	"Banana bread",
	"Apple tart notes",
	"Weekly meeting minutes",
	"Lost and found",
	"Release checklist",
}

func main() {
	var (
		count  int
		attach bool
	)
	flag.IntVar(&count, "count", 25, "number of posts to create")
	flag.BoolVar(&attach, "attach", false, "attach a small text file to every third post, stored in the FILE_STORE backend")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	defer log.Sync()

	db, err := database.Open(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	if err := db.AutoMigrate(&model.PostModel{}); err != nil {
		log.Error("Failed to migrate database: %v", err)
		panic(err)
	}

	files, err := filestore.New(cfg)
	if err != nil {
		log.Error("Failed to create file store: %v", err)
		panic(err)
	}

	boardUseCase := usecase.NewBoardUseCase(persistent.NewPostRepository(db), files, nil, log)

	created, err := seedPosts(boardUseCase, count, attach, log)
	if err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully with %d posts", created)
}

func seedPosts(boardUseCase usecase.BoardUseCase, count int, attach bool, log *logger.Logger) (int, error) {
	created := 0
	for i := 0; i < count; i++ {
		post := &entity.Post{
			Title:   fmt.Sprintf("%s #%d", sampleTitles[i%len(sampleTitles)], i+1),
			Content: fmt.Sprintf("Sample post number %d.", i+1),
		}

		var file *multipart.FileHeader
		if attach && i%3 == 0 {
			fh, err := textAttachment(fmt.Sprintf("note-%d.txt", i+1), post.Content)
			if err != nil {
				return created, err
			}
			file = fh
		}

		if err := boardUseCase.Write(post, file); err != nil {
			return created, fmt.Errorf("post %d: %w", i+1, err)
		}
		log.Debug("Created post %d: %s", post.ID, post.Title)
		created++
	}
	return created, nil
}

// textAttachment builds the file header a browser upload would produce.
func textAttachment(name, content string) (*multipart.FileHeader, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(content)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		return nil, err
	}
	return form.File["file"][0], nil
}
