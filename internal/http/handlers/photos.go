package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Oxyrus/keepsake/internal/gallery"
)

type PhotoHandler struct {
	logger  *slog.Logger
	gallery Gallery
}

func NewPhotoHandler(logger *slog.Logger, gallery Gallery) *PhotoHandler {
	return &PhotoHandler{
		logger:  logger,
		gallery: gallery,
	}
}

// Upload handles POST /photos. The multipart form carries the files under
// "files", an optional shared "caption" and an optional "albumId".
func (h *PhotoHandler) Upload(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	caption := c.PostForm("caption")

	var albumID *int64
	if raw := c.PostForm("albumId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid albumId"})
			return
		}
		albumID = &id
	}

	uploads := make([]gallery.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.logger.Error("failed to open uploaded file", "filename", fh.Filename, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file " + fh.Filename})
			return
		}

		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			h.logger.Error("failed to read uploaded file", "filename", fh.Filename, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file " + fh.Filename})
			return
		}

		uploads = append(uploads, gallery.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	photos, err := h.gallery.UploadPhotos(c.Request.Context(), ownerID, uploads, caption, albumID)
	if err != nil {
		respondError(c, h.logger, err, "failed to upload photos")
		return
	}

	out := make([]photoResponse, 0, len(photos))
	for _, photo := range photos {
		out = append(out, toPhotoResponse(photo))
	}

	c.JSON(http.StatusCreated, gin.H{"photos": out})
}

// List handles GET /photos.
func (h *PhotoHandler) List(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	page, err := h.gallery.ListPhotos(c.Request.Context(), ownerID, pageFromQuery(c))
	if err != nil {
		respondError(c, h.logger, err, "failed to list photos")
		return
	}

	c.JSON(http.StatusOK, toPhotoPageResponse(page))
}

type captionRequest struct {
	Caption string `json:"caption"`
}

// UpdateCaption handles POST /photos/:photoId/caption.
func (h *PhotoHandler) UpdateCaption(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	photoID, ok := pathID(c, "photoId")
	if !ok {
		return
	}

	var req captionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	photo, err := h.gallery.UpdateCaption(c.Request.Context(), ownerID, photoID, req.Caption)
	if err != nil {
		respondError(c, h.logger, err, "failed to update caption")
		return
	}

	c.JSON(http.StatusOK, toPhotoResponse(photo))
}

// Delete handles DELETE /photos/:photoId.
func (h *PhotoHandler) Delete(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	photoID, ok := pathID(c, "photoId")
	if !ok {
		return
	}

	if err := h.gallery.DeletePhoto(c.Request.Context(), ownerID, photoID); err != nil {
		respondError(c, h.logger, err, "failed to delete photo")
		return
	}

	c.Status(http.StatusNoContent)
}
