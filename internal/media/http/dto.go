package http

import (
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/media"
)

type MediaResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewResponse(m *media.Media) MediaResponse {
	resp := MediaResponse{
		ID:          m.ID,
		Filename:    m.Filename,
		ContentType: m.ContentType,
		Size:        m.Size,
		Width:       m.Width,
		Height:      m.Height,
		URL:         media.URL(m.ID),
		CreatedAt:   m.CreatedAt,
	}
	if m.ThumbnailPath != nil {
		thumbURL := media.ThumbnailURL(m.ID)
		resp.ThumbnailURL = &thumbURL
	}
	return resp
}

type ByMediaIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
