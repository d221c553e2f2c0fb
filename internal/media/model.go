package media

import (
	"net/http"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "media_not_found", "media not found")
	ErrNoThumbnail         = apperror.New(http.StatusNotFound, "thumbnail_not_found", "thumbnail not available")
	ErrFileTooLarge        = apperror.New(http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the maximum upload size")
	ErrUnsupportedFileType = apperror.New(http.StatusUnsupportedMediaType, "unsupported_file_type", "only jpg, jpeg and png images are accepted")
	ErrImageTooSmall       = apperror.New(http.StatusBadRequest, "image_too_small", "image dimensions are too small")
	ErrImageTooLarge       = apperror.New(http.StatusBadRequest, "image_too_large", "image dimensions are too large")
)

// Limits for uploaded images.
const (
	MaxUploadSize = 5 << 20 // 5 MiB
	MinDimension  = 100
	MaxDimension  = 4000
)

// Media is an uploaded image (cafe photos) stored on disk with its
// metadata in the database.
type Media struct {
	ID            string // UUID
	UserID        int64
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	Width         int
	Height        int
	CreatedAt     time.Time
}

// URL returns the public URL for downloading the media by ID.
func URL(id string) string {
	return "/media/" + id
}

// ThumbnailURL returns the public URL for the media thumbnail.
func ThumbnailURL(id string) string {
	return "/media/" + id + "/thumbnail"
}
