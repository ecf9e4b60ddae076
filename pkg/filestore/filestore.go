// Package filestore writes post attachments under generated names, either to a
// local directory or to an S3 bucket.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"board/pkg/config"
	"board/pkg/s3"
)

// Store persists an attachment under name. Names come from the write path and
// must be a single path element.
type Store interface {
	Save(name string, src io.Reader, contentType string) error
	Delete(name string) error
}

// New returns the store selected by cfg.FileStore.
func New(cfg *config.Config) (Store, error) {
	switch cfg.FileStore {
	case config.FileStoreLocal, "":
		return NewLocal(cfg.UploadDir)
	case config.FileStoreS3:
		client, err := s3.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewS3(client), nil
	default:
		return nil, fmt.Errorf("unsupported file store %q", cfg.FileStore)
	}
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}

type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

// Save copies src into a temp file in the upload directory and renames it into
// place, so a partially written upload is never visible under its final name.
func (l *Local) Save(name string, src io.Reader, _ string) error {
	if err := validateName(name); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(l.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

func (l *Local) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(l.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

type objectStorage interface {
	UploadFile(key string, body io.Reader, contentType string) (string, error)
	ObjectURL(key string) string
	DeleteFile(key string) error
}

// S3 stores attachments as objects under the "files/" prefix.
type S3 struct {
	client objectStorage
}

const s3Prefix = "files/"

func NewS3(client objectStorage) *S3 {
	return &S3{client: client}
}

func (s *S3) Save(name string, src io.Reader, contentType string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.UploadFile(s3Prefix+name, src, contentType)
	return err
}

func (s *S3) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return s.client.DeleteFile(s3Prefix + name)
}

// URL is where a stored attachment can be fetched from.
func (s *S3) URL(name string) string {
	return s.client.ObjectURL(s3Prefix + name)
}
