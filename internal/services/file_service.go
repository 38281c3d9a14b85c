package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/storage"
	"gorm.io/gorm"
)

var ErrFileNotFound = errors.New("file not found")

type FileService struct {
	db      *gorm.DB
	storage *storage.LocalStorage
	metrics *metrics.Metrics
}

func NewFileService(db *gorm.DB, store *storage.LocalStorage, m *metrics.Metrics) *FileService {
	return &FileService{db: db, storage: store, metrics: m}
}

// Upload stores content in the player's folder and records it.
func (s *FileService) Upload(ctx context.Context, userID, playerID uint, filename string, content io.Reader) (*models.File, error) {
	if playerID == 0 {
		return nil, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}
	if filename == "" {
		return nil, fmt.Errorf("%w: no selected file", ErrInvalidInput)
	}

	rel, err := s.storage.Save(playerID, filename, content)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	file := models.File{
		PlayerID: playerID,
		FilePath: rel,
		FileType: storage.FileType(rel),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file).Error; err != nil {
			return fmt.Errorf("failed to record file: %w", err)
		}
		return recordAudit(tx, userID, "Uploaded file "+rel)
	})
	if err != nil {
		if rmErr := s.storage.Remove(rel); rmErr != nil {
			slog.Error("failed to remove orphaned upload", "path", rel, "error", rmErr)
		}
		return nil, err
	}

	s.metrics.FilesUploaded.Inc()
	return &file, nil
}

func (s *FileService) ListForPlayer(ctx context.Context, playerID uint) ([]models.File, error) {
	var files []models.File
	err := s.db.WithContext(ctx).Where("player_id = ?", playerID).Order("id ASC").Find(&files).Error
	return files, err
}

func (s *FileService) Get(ctx context.Context, id uint) (*models.File, error) {
	var file models.File
	if err := s.db.WithContext(ctx).First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

// Locate returns the record and the absolute on-disk path of a file.
func (s *FileService) Locate(ctx context.Context, id uint) (*models.File, string, error) {
	file, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	path, err := s.storage.Path(file.FilePath)
	if err != nil {
		return nil, "", err
	}
	return file, path, nil
}

// Delete removes the file from disk, if still present, and then its record.
func (s *FileService) Delete(ctx context.Context, userID, id uint) error {
	file, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Remove(file.FilePath); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(file).Error; err != nil {
			return fmt.Errorf("failed to delete file record: %w", err)
		}
		return recordAudit(tx, userID, "Deleted file "+file.FilePath)
	})
}
