package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Oxyrus/keepsake/internal/http/handlers"
	"github.com/Oxyrus/keepsake/internal/http/middleware"
)

func New(logger *slog.Logger, gallery handlers.Gallery) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logging(logger))

	photoHandler := handlers.NewPhotoHandler(logger, gallery)
	albumHandler := handlers.NewAlbumHandler(logger, gallery)

	protected := r.Group("/")
	protected.Use(middleware.Identity())

	protected.POST("/photos", photoHandler.Upload)
	protected.GET("/photos", photoHandler.List)
	protected.POST("/photos/:photoId/caption", photoHandler.UpdateCaption)
	protected.DELETE("/photos/:photoId", photoHandler.Delete)

	protected.POST("/albums", albumHandler.Create)
	protected.GET("/albums", albumHandler.List)
	protected.POST("/albums/:albumId/title", albumHandler.UpdateTitle)
	protected.DELETE("/albums/:albumId", albumHandler.Delete)
	protected.GET("/albums/:albumId/photos", albumHandler.Photos)
	protected.POST("/albums/:albumId/photos", albumHandler.AddPhotos)
	protected.DELETE("/albums/:albumId/photos/:photoId", albumHandler.RemovePhoto)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
