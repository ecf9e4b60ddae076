package usecase

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"board/internal/entity"
	"board/internal/repo/persistent"
	"board/pkg/filestore"
	"board/pkg/logger"

	"github.com/google/uuid"
)

const FilesURLPrefix = "/files/"

var ErrInvalidPost = errors.New("title and content are required")

// FileWriteError means the attachment could not be stored; the post was not
// persisted.
type FileWriteError struct {
	Name string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write file %s: %v", e.Name, e.Err)
}

func (e *FileWriteError) Unwrap() error {
	return e.Err
}

type PostCache interface {
	Get(id int) (*entity.Post, bool)
	Set(post *entity.Post)
	Invalidate(id int)
}

type BoardUseCase interface {
	Write(post *entity.Post, file *multipart.FileHeader) error
	BoardList(req entity.PageRequest) (*entity.Page, error)
	BoardSearchList(keyword string, req entity.PageRequest) (*entity.Page, error)
	BoardView(id int) (*entity.Post, error)
	BoardDelete(id int) error
}

type boardUseCase struct {
	postRepo persistent.PostRepository
	files    filestore.Store
	cache    PostCache
	logger   *logger.Logger
}

func NewBoardUseCase(
	postRepo persistent.PostRepository,
	files filestore.Store,
	cache PostCache,
	logger *logger.Logger,
) BoardUseCase {
	if cache == nil {
		cache = noopCache{}
	}
	return &boardUseCase{
		postRepo: postRepo,
		files:    files,
		cache:    cache,
		logger:   logger,
	}
}

// Write stores the attachment (if any) and then inserts or updates post.
//
// When file is nil or has no filename the post keeps whatever attachment it
// already had; no empty file is written. A new attachment replaces the old one,
// which is removed from the file store after the row is saved. For an existing
// post the current attachment is taken from the database, never from the
// caller's copy, and a post deleted in the meantime yields ErrPostNotFound.
func (uc *boardUseCase) Write(post *entity.Post, file *multipart.FileHeader) error {
	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Content) == "" {
		return ErrInvalidPost
	}

	var previous string
	if post.ID != 0 {
		stored, err := uc.postRepo.GetByID(post.ID)
		if err != nil {
			uc.cache.Invalidate(post.ID)
			return err
		}
		previous = stored.Filename
		post.Filename = stored.Filename
		post.Filepath = stored.Filepath
	}

	if hasUpload(file) {
		name := StoredFilename(uuid.New(), file.Filename)
		if err := uc.saveFile(name, file); err != nil {
			return err
		}
		post.Filename = name
		post.Filepath = FilesURLPrefix + name
	}

	if err := uc.postRepo.Save(post); err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	uc.cache.Invalidate(post.ID)

	if previous != "" && previous != post.Filename {
		uc.removeFile(previous)
	}
	return nil
}

func (uc *boardUseCase) BoardList(req entity.PageRequest) (*entity.Page, error) {
	return uc.postRepo.List(req)
}

func (uc *boardUseCase) BoardSearchList(keyword string, req entity.PageRequest) (*entity.Page, error) {
	return uc.postRepo.SearchByTitle(keyword, req)
}

func (uc *boardUseCase) BoardView(id int) (*entity.Post, error) {
	if post, ok := uc.cache.Get(id); ok {
		return post, nil
	}

	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(post)
	return post, nil
}

// BoardDelete removes the post and its attachment. Unknown ids are not an error.
func (uc *boardUseCase) BoardDelete(id int) error {
	post, err := uc.postRepo.GetByID(id)
	if err != nil && !errors.Is(err, entity.ErrPostNotFound) {
		return err
	}

	if err := uc.postRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	uc.cache.Invalidate(id)

	if post != nil && post.HasAttachment() {
		uc.removeFile(post.Filename)
	}
	return nil
}

func (uc *boardUseCase) saveFile(name string, file *multipart.FileHeader) error {
	src, err := file.Open()
	if err != nil {
		return &FileWriteError{Name: name, Err: err}
	}
	defer src.Close()

	if err := uc.files.Save(name, src, file.Header.Get("Content-Type")); err != nil {
		return &FileWriteError{Name: name, Err: err}
	}
	return nil
}

func (uc *boardUseCase) removeFile(name string) {
	if err := uc.files.Delete(name); err != nil {
		uc.logger.Warn("Failed to remove attachment %s: %v", name, err)
	}
}

func hasUpload(file *multipart.FileHeader) bool {
	return file != nil && file.Filename != ""
}

// StoredFilename is the on-disk name of an upload: token + "_" + the client's
// base file name.
func StoredFilename(token uuid.UUID, original string) string {
	return token.String() + "_" + sanitizeFilename(original)
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == ".." || name == "/" {
		return "file"
	}
	return name
}

type noopCache struct{}

func (noopCache) Get(int) (*entity.Post, bool) { return nil, false }
func (noopCache) Set(*entity.Post)             {}
func (noopCache) Invalidate(int)               {}
