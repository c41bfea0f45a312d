package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AlbumHandler struct {
	logger  *slog.Logger
	gallery Gallery
}

func NewAlbumHandler(logger *slog.Logger, gallery Gallery) *AlbumHandler {
	return &AlbumHandler{
		logger:  logger,
		gallery: gallery,
	}
}

type albumCreateRequest struct {
	Title    string `json:"title"`
	CoverURL string `json:"coverUrl"`
}

// Create handles POST /albums.
func (h *AlbumHandler) Create(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var req albumCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	detail, err := h.gallery.CreateAlbum(c.Request.Context(), ownerID, req.Title, req.CoverURL)
	if err != nil {
		respondError(c, h.logger, err, "failed to create album")
		return
	}

	c.JSON(http.StatusCreated, toAlbumResponse(detail.Album, detail.OwnerNickname))
}

// List handles GET /albums.
func (h *AlbumHandler) List(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	albums, err := h.gallery.ListAlbums(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, h.logger, err, "failed to list albums")
		return
	}

	out := make([]albumResponse, 0, len(albums))
	for _, album := range albums {
		out = append(out, toAlbumResponse(album, ""))
	}

	c.JSON(http.StatusOK, gin.H{"albums": out})
}

type albumTitleRequest struct {
	Title string `json:"title"`
}

// UpdateTitle handles POST /albums/:albumId/title.
func (h *AlbumHandler) UpdateTitle(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	albumID, ok := pathID(c, "albumId")
	if !ok {
		return
	}

	var req albumTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	detail, err := h.gallery.UpdateAlbumTitle(c.Request.Context(), ownerID, albumID, req.Title)
	if err != nil {
		respondError(c, h.logger, err, "failed to update album title")
		return
	}

	c.JSON(http.StatusOK, toAlbumResponse(detail.Album, detail.OwnerNickname))
}

type albumDeleteRequest struct {
	DeletePhotos *bool `json:"deletePhotos"`
}

// Delete handles DELETE /albums/:albumId. The body must state the cascade
// choice explicitly; there is no default.
func (h *AlbumHandler) Delete(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	albumID, ok := pathID(c, "albumId")
	if !ok {
		return
	}

	var req albumDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DeletePhotos == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deletePhotos must be provided"})
		return
	}

	if err := h.gallery.DeleteAlbum(c.Request.Context(), ownerID, albumID, *req.DeletePhotos); err != nil {
		respondError(c, h.logger, err, "failed to delete album")
		return
	}

	c.Status(http.StatusNoContent)
}

// Photos handles GET /albums/:albumId/photos.
func (h *AlbumHandler) Photos(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	albumID, ok := pathID(c, "albumId")
	if !ok {
		return
	}

	page, err := h.gallery.PhotosInAlbum(c.Request.Context(), ownerID, albumID, pageFromQuery(c))
	if err != nil {
		respondError(c, h.logger, err, "failed to list album photos")
		return
	}

	c.JSON(http.StatusOK, toPhotoPageResponse(page))
}

type addPhotosRequest struct {
	PhotoIDs []int64 `json:"photoIds"`
}

// AddPhotos handles POST /albums/:albumId/photos.
func (h *AlbumHandler) AddPhotos(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	albumID, ok := pathID(c, "albumId")
	if !ok {
		return
	}

	var req addPhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.PhotoIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photoIds must be a non-empty list"})
		return
	}

	links, err := h.gallery.AddPhotosToAlbum(c.Request.Context(), ownerID, albumID, req.PhotoIDs)
	if err != nil {
		respondError(c, h.logger, err, "failed to add photos to album")
		return
	}

	out := make([]linkResponse, 0, len(links))
	for _, link := range links {
		out = append(out, linkResponse{AlbumID: link.AlbumID, PhotoID: link.PhotoID})
	}

	c.JSON(http.StatusOK, gin.H{"links": out})
}

// RemovePhoto handles DELETE /albums/:albumId/photos/:photoId.
func (h *AlbumHandler) RemovePhoto(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	albumID, ok := pathID(c, "albumId")
	if !ok {
		return
	}

	photoID, ok := pathID(c, "photoId")
	if !ok {
		return
	}

	if err := h.gallery.RemovePhotoFromAlbum(c.Request.Context(), ownerID, albumID, photoID); err != nil {
		respondError(c, h.logger, err, "failed to remove photo from album")
		return
	}

	c.Status(http.StatusNoContent)
}
