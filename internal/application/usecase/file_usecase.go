package usecase

import (
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/infrastructure/storage"
	"github.com/almazgeobur/etp-api/pkg/config"
)

// FileUseCase validates and stores uploaded documents.
type FileUseCase struct {
	store *storage.LocalStorage
	cfg   config.UploadConfig
}

// NewFileUseCase builds the use case over the local storage.
func NewFileUseCase(store *storage.LocalStorage, cfg config.UploadConfig) *FileUseCase {
	return &FileUseCase{store: store, cfg: cfg}
}

// Upload checks size and extension against the configured limits and
// stores the content under a generated name.
func (uc *FileUseCase) Upload(r io.Reader, originalName string, size int64) (*dto.FileUploadResponse, error) {
	if size > uc.cfg.MaxSize {
		return nil, domain.ErrFileTooLarge
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if !uc.allowed(ext) {
		return nil, domain.ErrInvalidInput
	}
	f, err := uc.store.Save(r, originalName)
	if err != nil {
		return nil, err
	}
	return &dto.FileUploadResponse{
		FileID:       f.FileID,
		OriginalName: originalName,
		FilePath:     uc.store.Path(f.FileName),
		FileSize:     f.FileSize,
		FileType:     f.FileType,
	}, nil
}

func (uc *FileUseCase) allowed(ext string) bool {
	for _, t := range uc.cfg.AllowedTypesList() {
		if t == ext {
			return true
		}
	}
	return false
}

// Get returns the stored file metadata and its path for download.
func (uc *FileUseCase) Get(fileID string) (*storage.StoredFile, string, error) {
	f, err := uc.store.Find(fileID)
	if err != nil {
		return nil, "", err
	}
	return f, uc.store.Path(f.FileName), nil
}

// List returns every stored file, newest first.
func (uc *FileUseCase) List() (*dto.FileListResponse, error) {
	files, err := uc.store.List()
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
	items := make([]dto.FileInfo, 0, len(files))
	for _, f := range files {
		items = append(items, dto.FileInfo{
			FileID:     f.FileID,
			FileName:   f.FileName,
			FileSize:   f.FileSize,
			FileType:   f.FileType,
			UploadedAt: f.UploadedAt,
		})
	}
	return &dto.FileListResponse{Items: items, Total: len(items)}, nil
}

// Delete removes a stored file.
func (uc *FileUseCase) Delete(fileID string) error {
	return uc.store.Delete(fileID)
}
