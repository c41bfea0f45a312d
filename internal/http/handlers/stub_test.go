package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Oxyrus/keepsake/internal/gallery"
	"github.com/Oxyrus/keepsake/internal/http/middleware"
	"github.com/Oxyrus/keepsake/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubGallery lets each test wire up only the calls it expects. Unset
// functions panic, which surfaces unexpected calls as test failures.
type stubGallery struct {
	uploadPhotos         func(ctx context.Context, ownerID int64, uploads []gallery.Upload, caption string, albumID *int64) ([]storage.Photo, error)
	listPhotos           func(ctx context.Context, ownerID int64, page storage.Page) (gallery.PhotoPage, error)
	updateCaption        func(ctx context.Context, ownerID, photoID int64, caption string) (storage.Photo, error)
	deletePhoto          func(ctx context.Context, ownerID, photoID int64) error
	createAlbum          func(ctx context.Context, ownerID int64, title, coverURL string) (gallery.AlbumDetail, error)
	listAlbums           func(ctx context.Context, ownerID int64) ([]storage.Album, error)
	updateAlbumTitle     func(ctx context.Context, ownerID, albumID int64, title string) (gallery.AlbumDetail, error)
	deleteAlbum          func(ctx context.Context, ownerID, albumID int64, deletePhotos bool) error
	addPhotosToAlbum     func(ctx context.Context, ownerID, albumID int64, photoIDs []int64) ([]storage.AlbumPhoto, error)
	removePhotoFromAlbum func(ctx context.Context, ownerID, albumID, photoID int64) error
	photosInAlbum        func(ctx context.Context, ownerID, albumID int64, page storage.Page) (gallery.PhotoPage, error)
}

func (s *stubGallery) UploadPhotos(ctx context.Context, ownerID int64, uploads []gallery.Upload, caption string, albumID *int64) ([]storage.Photo, error) {
	return s.uploadPhotos(ctx, ownerID, uploads, caption, albumID)
}

func (s *stubGallery) ListPhotos(ctx context.Context, ownerID int64, page storage.Page) (gallery.PhotoPage, error) {
	return s.listPhotos(ctx, ownerID, page)
}

func (s *stubGallery) UpdateCaption(ctx context.Context, ownerID, photoID int64, caption string) (storage.Photo, error) {
	return s.updateCaption(ctx, ownerID, photoID, caption)
}

func (s *stubGallery) DeletePhoto(ctx context.Context, ownerID, photoID int64) error {
	return s.deletePhoto(ctx, ownerID, photoID)
}

func (s *stubGallery) CreateAlbum(ctx context.Context, ownerID int64, title, coverURL string) (gallery.AlbumDetail, error) {
	return s.createAlbum(ctx, ownerID, title, coverURL)
}

func (s *stubGallery) ListAlbums(ctx context.Context, ownerID int64) ([]storage.Album, error) {
	return s.listAlbums(ctx, ownerID)
}

func (s *stubGallery) UpdateAlbumTitle(ctx context.Context, ownerID, albumID int64, title string) (gallery.AlbumDetail, error) {
	return s.updateAlbumTitle(ctx, ownerID, albumID, title)
}

func (s *stubGallery) DeleteAlbum(ctx context.Context, ownerID, albumID int64, deletePhotos bool) error {
	return s.deleteAlbum(ctx, ownerID, albumID, deletePhotos)
}

func (s *stubGallery) AddPhotosToAlbum(ctx context.Context, ownerID, albumID int64, photoIDs []int64) ([]storage.AlbumPhoto, error) {
	return s.addPhotosToAlbum(ctx, ownerID, albumID, photoIDs)
}

func (s *stubGallery) RemovePhotoFromAlbum(ctx context.Context, ownerID, albumID, photoID int64) error {
	return s.removePhotoFromAlbum(ctx, ownerID, albumID, photoID)
}

func (s *stubGallery) PhotosInAlbum(ctx context.Context, ownerID, albumID int64, page storage.Page) (gallery.PhotoPage, error) {
	return s.photosInAlbum(ctx, ownerID, albumID, page)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newCtx builds a gin context with an authenticated caller and the given
// request, skipping the middleware chain.
func newCtx(t *testing.T, ownerID int64, req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	middleware.SetOwnerID(c, ownerID)

	return c, w
}
