package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openbistro/cafe-booking-backend/internal/pkg/storage"
)

const thumbnailSize = 200

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type Service interface {
	Upload(ctx context.Context, header *multipart.FileHeader, userID int64) (*Media, error)
	Get(ctx context.Context, id string) (*Media, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Media, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Media, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(MinDimension, MinDimension, MaxDimension, MaxDimension),
	}
}

// Upload validates the uploaded image (extension, size, dimensions), stores
// the original plus a JPEG thumbnail, and records the metadata.
func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, userID int64) (*Media, error) {
	if header.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return nil, ErrUnsupportedFileType
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	// Buffer the content: it is read twice (validation, thumbnail) and
	// capped at MaxUploadSize, so memory use is bounded.
	content, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded file failed: %w", err)
	}
	if int64(len(content)) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	width, height, err := s.imgProc.Validate(bytes.NewReader(content))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrImageTooSmall):
			return nil, ErrImageTooSmall
		case errors.Is(err, storage.ErrImageTooLarge):
			return nil, ErrImageTooLarge
		default:
			return nil, ErrUnsupportedFileType
		}
	}

	mediaID := uuid.New().String()
	shard := mediaID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s%s", shard, mediaID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("save media to storage failed: %w", err)
	}

	var thumbnailPath *string
	thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(content), thumbnailSize, thumbnailSize)
	if err != nil {
		log.Printf("thumbnail generation for %s failed: %v", mediaID, err)
	} else {
		tPath := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, mediaID)
		if err := s.storage.Save(ctx, tPath, thumb); err != nil {
			log.Printf("save thumbnail for %s failed: %v", mediaID, err)
		} else {
			thumbnailPath = &tPath
		}
	}

	m := &Media{
		ID:            mediaID,
		UserID:        userID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(content)),
		Width:         width,
		Height:        height,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return m, nil
}

func (s *service) Get(ctx context.Context, id string) (*Media, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Media, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, m.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve media from storage failed: %w", err)
	}
	return stream, m, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Media, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if m.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *m.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve thumbnail from storage failed: %w", err)
	}
	return stream, m, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, m.StoragePath); err != nil {
		log.Printf("delete media file %s failed: %v", m.StoragePath, err)
	}
	if m.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *m.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
