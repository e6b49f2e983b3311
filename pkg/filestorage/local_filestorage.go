package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	// Path turns a path returned by Save into one the OS can open.
	Path(filePath string) string
	Delete(filePath string) error
}

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("could not create storage directory %s: %w", basePath, err)
	}
	return &LocalFileStorage{basePath: basePath}, nil
}

// Save writes the file under <prefix>/<yyyy/mm/dd>/ with a unique name that
// keeps the original extension. The returned path is relative to the storage root.
func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := fmt.Sprintf("%s-%s%s", time.Now().Format("2006-01-02"), uuid.NewString(), ext)

	datePath := time.Now().Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, datePath)
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(prefix, datePath, uniqueFileName)), nil
}

func (s *LocalFileStorage) Path(filePath string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(filePath))
}

func (s *LocalFileStorage) Delete(filePath string) error {
	if filePath == "" {
		return nil
	}
	err := os.Remove(s.Path(filePath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
