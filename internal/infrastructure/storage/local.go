// Package storage keeps uploaded files on the local disk. Stored names are
// "<uuid>.<ext>" so the original name never leaks into paths.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/almazgeobur/etp-api/internal/domain"
)

// StoredFile describes one file on disk.
type StoredFile struct {
	FileID     string // uuid without extension
	FileName   string // stored name, uuid.ext
	FileSize   int64
	FileType   string // extension without dot
	UploadedAt time.Time
}

// LocalStorage is a flat directory of uploaded files.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates the upload directory when missing.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Save writes the content under a fresh uuid name, keeping the extension.
func (s *LocalStorage) Save(r io.Reader, originalName string) (*StoredFile, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	id := uuid.New().String()
	name := id
	if ext != "" {
		name = id + "." + ext
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}
	return &StoredFile{
		FileID:     id,
		FileName:   name,
		FileSize:   size,
		FileType:   ext,
		UploadedAt: time.Now(),
	}, nil
}

// Find locates a stored file by its uuid prefix.
func (s *LocalStorage) Find(fileID string) (*StoredFile, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, fileID+".*"))
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}
	if len(matches) == 0 {
		// extension-less uploads are stored under the bare uuid
		if info, err := os.Stat(filepath.Join(s.dir, fileID)); err == nil {
			return fileInfo(fileID, info), nil
		}
		return nil, domain.ErrNotFound
	}
	info, err := os.Stat(matches[0])
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return fileInfo(filepath.Base(matches[0]), info), nil
}

// Path returns the absolute path of a stored file name.
func (s *LocalStorage) Path(fileName string) string {
	return filepath.Join(s.dir, filepath.Base(fileName))
}

// List returns every stored file, newest first left to the caller.
func (s *LocalStorage) List() ([]StoredFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}
	files := make([]StoredFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, *fileInfo(e.Name(), info))
	}
	return files, nil
}

// Delete removes a stored file by uuid.
func (s *LocalStorage) Delete(fileID string) error {
	f, err := s.Find(fileID)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, f.FileName)); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func fileInfo(name string, info os.FileInfo) *StoredFile {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return &StoredFile{
		FileID:     strings.TrimSuffix(name, filepath.Ext(name)),
		FileName:   name,
		FileSize:   info.Size(),
		FileType:   ext,
		UploadedAt: info.ModTime(),
	}
}
