package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Oxyrus/keepsake/internal/gallery"
	"github.com/Oxyrus/keepsake/internal/http/middleware"
	"github.com/Oxyrus/keepsake/internal/storage"
)

// Gallery is the slice of the lifecycle service the HTTP layer consumes.
type Gallery interface {
	UploadPhotos(ctx context.Context, ownerID int64, uploads []gallery.Upload, caption string, albumID *int64) ([]storage.Photo, error)
	ListPhotos(ctx context.Context, ownerID int64, page storage.Page) (gallery.PhotoPage, error)
	UpdateCaption(ctx context.Context, ownerID, photoID int64, caption string) (storage.Photo, error)
	DeletePhoto(ctx context.Context, ownerID, photoID int64) error
	CreateAlbum(ctx context.Context, ownerID int64, title, coverURL string) (gallery.AlbumDetail, error)
	ListAlbums(ctx context.Context, ownerID int64) ([]storage.Album, error)
	UpdateAlbumTitle(ctx context.Context, ownerID, albumID int64, title string) (gallery.AlbumDetail, error)
	DeleteAlbum(ctx context.Context, ownerID, albumID int64, deletePhotos bool) error
	AddPhotosToAlbum(ctx context.Context, ownerID, albumID int64, photoIDs []int64) ([]storage.AlbumPhoto, error)
	RemovePhotoFromAlbum(ctx context.Context, ownerID, albumID, photoID int64) error
	PhotosInAlbum(ctx context.Context, ownerID, albumID int64, page storage.Page) (gallery.PhotoPage, error)
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type photoResponse struct {
	PhotoID   int64     `json:"photoId"`
	ImageURL  string    `json:"imageUrl"`
	Caption   string    `json:"caption"`
	TakenAt   time.Time `json:"takenAt"`
	CreatedAt time.Time `json:"createdAt"`
}

type photoPageResponse struct {
	Photos        []photoResponse `json:"photos"`
	Page          int             `json:"page"`
	Size          int             `json:"size"`
	TotalElements int64           `json:"totalElements"`
	TotalPages    int             `json:"totalPages"`
}

type albumResponse struct {
	AlbumID       int64     `json:"albumId"`
	OwnerID       int64     `json:"ownerId"`
	Title         string    `json:"title"`
	CoverURL      string    `json:"coverUrl,omitempty"`
	OwnerNickname string    `json:"ownerNickname,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type linkResponse struct {
	AlbumID int64 `json:"albumId"`
	PhotoID int64 `json:"photoId"`
}

func toPhotoResponse(photo storage.Photo) photoResponse {
	return photoResponse{
		PhotoID:   photo.ID,
		ImageURL:  photo.ImageURL,
		Caption:   photo.Caption,
		TakenAt:   photo.TakenAt,
		CreatedAt: photo.CreatedAt,
	}
}

func toPhotoPageResponse(page gallery.PhotoPage) photoPageResponse {
	photos := make([]photoResponse, 0, len(page.Photos))
	for _, photo := range page.Photos {
		photos = append(photos, toPhotoResponse(photo))
	}
	return photoPageResponse{
		Photos:        photos,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.Total,
		TotalPages:    page.TotalPages(),
	}
}

func toAlbumResponse(album storage.Album, nickname string) albumResponse {
	return albumResponse{
		AlbumID:       album.ID,
		OwnerID:       album.OwnerID,
		Title:         album.Title,
		CoverURL:      album.CoverURL,
		OwnerNickname: nickname,
		CreatedAt:     album.CreatedAt,
	}
}

// owner pulls the authenticated caller id off the context; Identity
// middleware guarantees it is present on protected routes.
func owner(c *gin.Context) (int64, bool) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
	}
	return ownerID, ok
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func pageFromQuery(c *gin.Context) storage.Page {
	page := storage.Page{Number: 1, Size: defaultPageSize}

	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			page.Number = n
		}
	}
	if raw := c.Query("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= maxPageSize {
			page.Size = n
		}
	}

	return page
}

// respondError maps service failures onto the HTTP surface. Unexpected
// failures are logged and masked with a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, gallery.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, gallery.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(msg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
