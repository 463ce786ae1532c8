package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ajayrajc1998/wedding/internal/database"
	"github.com/Ajayrajc1998/wedding/internal/flags"
	"github.com/Ajayrajc1998/wedding/internal/models"

	"github.com/dustin/go-humanize"
	"gorm.io/gorm"
)

var photoExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".heic": true,
}

type PhotoService struct {
	db        *gorm.DB
	flags     flags.Store
	maxBytes  int64
	legacyDir string
	gated     bool
	now       func() time.Time
}

type PhotoConfig struct {
	MaxBytes  int64
	LegacyDir string
	// ListGated refuses the public listing while uploads are disabled.
	ListGated bool
}

func NewPhotoService(db *gorm.DB, store flags.Store, cfg PhotoConfig) *PhotoService {
	return &PhotoService{
		db:        db,
		flags:     store,
		maxBytes:  cfg.MaxBytes,
		legacyDir: cfg.LegacyDir,
		gated:     cfg.ListGated,
		now:       time.Now,
	}
}

type PhotoInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Filename    string
	Data        []byte
}

type UploadResult struct {
	ID       uint   `json:"id"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

func (s *PhotoService) MaxBytes() int64 {
	return s.maxBytes
}

func (s *PhotoService) Upload(ctx context.Context, input PhotoInput) (*UploadResult, error) {
	enabled, err := s.flags.Get(ctx, flags.Photos)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, newError(ErrForbidden, "photo uploads are disabled")
	}

	filename := filepath.Base(strings.TrimSpace(input.Filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, newError(ErrValidation, "filename is required")
	}
	if !photoExts[strings.ToLower(filepath.Ext(filename))] {
		return nil, newError(ErrValidation, "unsupported file format")
	}
	if len(input.Data) == 0 {
		return nil, newError(ErrValidation, "file is empty")
	}
	if int64(len(input.Data)) > s.maxBytes {
		return nil, newError(ErrValidation, "file too large (max %s)", humanize.IBytes(uint64(s.maxBytes)))
	}

	contentType, ok := imageType(filename, input.Data)
	if !ok {
		return nil, newError(ErrValidation, "file is not a supported image")
	}

	photo := models.UploadedPhoto{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(input.Data)),
		Data:        input.Data,
		UploadedAt:  s.now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.LockKey(tx, "photo:"+input.FirstName+"\x00"+input.LastName); err != nil {
			return err
		}

		var dup int64
		if err := tx.Model(&models.UploadedPhoto{}).
			Where("first_name = ? AND last_name = ? AND filename = ?", input.FirstName, input.LastName, filename).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return newError(ErrConflict, "duplicate photo %s for %s %s", filename, input.FirstName, input.LastName)
		}

		var count int64
		if err := tx.Model(&models.UploadedPhoto{}).
			Where("first_name = ? AND last_name = ?", input.FirstName, input.LastName).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= models.MaxPhotosPerUploader {
			return newError(ErrConflict, "photo upload limit reached for %s %s", input.FirstName, input.LastName)
		}

		if err := tx.Create(&photo).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return newError(ErrConflict, "duplicate photo %s for %s %s", filename, input.FirstName, input.LastName)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		ID:       photo.ID,
		Message:  fmt.Sprintf("Photo uploaded successfully for %s %s.", input.FirstName, input.LastName),
		Filename: filename,
	}, nil
}

// List returns photo metadata only.
func (s *PhotoService) List(ctx context.Context) ([]models.UploadedPhoto, error) {
	if s.gated {
		enabled, err := s.flags.Get(ctx, flags.Photos)
		if err != nil {
			return nil, err
		}
		if !enabled {
			return nil, newError(ErrForbidden, "photos are not visible")
		}
	}

	photos := []models.UploadedPhoto{}
	err := s.db.WithContext(ctx).Omit("data").Order("uploaded_at ASC").Order("id ASC").Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (s *PhotoService) Download(ctx context.Context, id uint) (*models.UploadedPhoto, error) {
	var photo models.UploadedPhoto
	if err := s.db.WithContext(ctx).First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "photo not found")
		}
		return nil, err
	}
	if len(photo.Data) == 0 {
		return nil, newError(ErrNotFound, "photo data not found")
	}
	// Rows written before sniffing was enforced may carry a client-supplied type.
	if ct, ok := imageType(photo.Filename, photo.Data); ok {
		photo.ContentType = ct
	} else {
		photo.ContentType = "application/octet-stream"
	}
	return &photo, nil
}

// imageType derives the served content type from the payload itself. The
// client's declared type is never trusted. HEIC has no signature known to
// http.DetectContentType, so it falls back to the extension.
func imageType(filename string, data []byte) (string, bool) {
	ct := http.DetectContentType(data)
	if strings.HasPrefix(ct, "image/") {
		return ct, true
	}
	if ct == "application/octet-stream" && strings.EqualFold(filepath.Ext(filename), ".heic") {
		return "image/heic", true
	}
	return "", false
}

// Delete removes the row and, if present, the same-named file left in the
// legacy upload directory by older deployments.
func (s *PhotoService) Delete(ctx context.Context, id uint) error {
	var photo models.UploadedPhoto
	if err := s.db.WithContext(ctx).Omit("data").First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, "photo not found")
		}
		return err
	}

	if s.legacyDir != "" {
		path := filepath.Join(s.legacyDir, filepath.Base(photo.Filename))
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove legacy photo file", "path", path, "error", err)
		}
	}

	result := s.db.WithContext(ctx).Delete(&models.UploadedPhoto{}, photo.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return newError(ErrNotFound, "photo not found")
	}
	return nil
}
