package media

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	media map[string]*Media
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{media: map[string]*Media{}}
}

func (r *fakeRepo) Create(ctx context.Context, m *Media) error {
	clone := *m
	r.media[m.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Media, error) {
	m, ok := r.media[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.media[id]; !ok {
		return ErrNotFound
	}
	delete(r.media, id)
	return nil
}

type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (s *memStorage) Save(ctx context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *memStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Delete(ctx context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestUpload(t *testing.T) {
	repo := newFakeRepo()
	store := newMemStorage()
	svc := NewService(repo, store)

	m, err := svc.Upload(context.Background(), fileHeader(t, "photo.png", pngBytes(t, 640, 480)), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), m.UserID)
	assert.Equal(t, "image/png", m.ContentType)
	assert.Equal(t, 640, m.Width)
	assert.Equal(t, 480, m.Height)
	assert.NotNil(t, m.ThumbnailPath)

	// Original and thumbnail both stored.
	assert.Len(t, store.files, 2)

	// Round trip through Download.
	stream, got, err := svc.Download(context.Background(), m.ID)
	require.NoError(t, err)
	defer stream.Close()
	assert.Equal(t, m.ID, got.ID)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc := NewService(newFakeRepo(), newMemStorage())

	_, err := svc.Upload(context.Background(), fileHeader(t, "notes.txt", []byte("hello")), 7)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestUploadRejectsMismatchedContent(t *testing.T) {
	svc := NewService(newFakeRepo(), newMemStorage())

	// Right extension, not actually an image.
	_, err := svc.Upload(context.Background(), fileHeader(t, "photo.png", []byte("not an image")), 7)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestUploadRejectsTinyImage(t *testing.T) {
	svc := NewService(newFakeRepo(), newMemStorage())

	_, err := svc.Upload(context.Background(), fileHeader(t, "photo.png", pngBytes(t, 50, 50)), 7)
	assert.ErrorIs(t, err, ErrImageTooSmall)
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	store := newMemStorage()
	svc := NewService(repo, store)

	m, err := svc.Upload(context.Background(), fileHeader(t, "photo.png", pngBytes(t, 640, 480)), 7)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), m.ID))
	assert.Empty(t, store.files, "storage should be cleaned up")

	_, err = svc.Get(context.Background(), m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
