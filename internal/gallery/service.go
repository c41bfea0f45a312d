// Package gallery implements the photo and album lifecycle: uploads into
// object storage, metadata rows, album membership and the ownership checks
// that guard every mutation.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Oxyrus/keepsake/internal/blob"
	"github.com/Oxyrus/keepsake/internal/metadata"
	"github.com/Oxyrus/keepsake/internal/storage"
)

const (
	keyCategory   = "photos"
	maxUploadSize = 10 << 20
	maxCaptionLen = 500
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Upload is one file of an upload batch.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PhotoPage is one window of a photo listing plus the overall count. An empty
// page with Total zero is a valid outcome, not an error.
type PhotoPage struct {
	Photos []storage.Photo
	Page   int
	Size   int
	Total  int64
}

// TotalPages returns how many pages the full listing spans.
func (p PhotoPage) TotalPages() int {
	if p.Size <= 0 || p.Total == 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// AlbumDetail is an album plus the display attributes of its owner, fetched
// explicitly when a response needs them.
type AlbumDetail struct {
	storage.Album
	OwnerNickname string
}

// Service orchestrates photo and album lifecycles across the metadata store
// and the object-storage backend. Callers supply a pre-authenticated owner id
// with every operation; the service trusts it completely.
type Service struct {
	photos  storage.Photos
	albums  storage.Albums
	links   storage.AlbumPhotos
	users   storage.Users
	objects blob.Storage
	logger  *slog.Logger
	now     func() time.Time
}

// New returns a Service backed by the given store and blob storage.
func New(logger *slog.Logger, store storage.Store, objects blob.Storage) *Service {
	return &Service{
		photos:  store.Photos(),
		albums:  store.Albums(),
		links:   store.AlbumPhotos(),
		users:   store.Users(),
		objects: objects,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// UploadPhotos stores each non-empty file in object storage, persists a photo
// row and, when albumID is given, links the photo into that album. Files are
// processed sequentially and a failure on one file aborts the rest of the
// batch; files already committed are not rolled back. Results are returned in
// input order.
func (s *Service) UploadPhotos(ctx context.Context, ownerID int64, uploads []Upload, caption string, albumID *int64) ([]storage.Photo, error) {
	if err := validateCaption(caption); err != nil {
		return nil, err
	}

	var album *storage.Album
	if albumID != nil {
		a, err := s.albums.GetByID(ctx, *albumID)
		if err != nil {
			return nil, err
		}
		if a.OwnerID != ownerID {
			return nil, fmt.Errorf("%w: album %d", ErrForbidden, *albumID)
		}
		album = &a
	}

	results := make([]storage.Photo, 0, len(uploads))

	for _, up := range uploads {
		if len(up.Data) == 0 {
			continue
		}
		if err := validateUpload(up); err != nil {
			return nil, err
		}

		key := blob.NewKey(keyCategory, ownerID, up.Filename)
		url, err := s.objects.Store(ctx, up.Data, up.ContentType, key)
		if err != nil {
			return nil, fmt.Errorf("upload %q: %w", up.Filename, err)
		}

		takenAt, ok := metadata.CapturedAt(up.Data, up.Filename)
		if !ok {
			takenAt = s.now()
		}

		photo, err := s.photos.Create(ctx, storage.PhotoCreate{
			OwnerID:  ownerID,
			ImageURL: url,
			Caption:  caption,
			TakenAt:  takenAt,
		})
		if err != nil {
			return nil, fmt.Errorf("persist %q: %w", up.Filename, err)
		}

		if album != nil {
			if _, err := s.links.Link(ctx, album.ID, photo.ID); err != nil && !errors.Is(err, storage.ErrConflict) {
				return nil, fmt.Errorf("link %q to album %d: %w", up.Filename, album.ID, err)
			}
		}

		s.logger.Info("photo uploaded", "photoID", photo.ID, "ownerID", ownerID, "key", key)
		results = append(results, photo)
	}

	return results, nil
}

// ListPhotos returns the caller's photos, newest first.
func (s *Service) ListPhotos(ctx context.Context, ownerID int64, page storage.Page) (PhotoPage, error) {
	photos, total, err := s.photos.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return PhotoPage{}, err
	}
	return PhotoPage{Photos: photos, Page: page.Number, Size: page.Limit(), Total: total}, nil
}

// UpdateCaption replaces the caption on a photo the caller owns. It has no
// object-storage side effect.
func (s *Service) UpdateCaption(ctx context.Context, ownerID, photoID int64, caption string) (storage.Photo, error) {
	if err := validateCaption(caption); err != nil {
		return storage.Photo{}, err
	}

	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return storage.Photo{}, err
	}
	if photo.OwnerID != ownerID {
		return storage.Photo{}, fmt.Errorf("%w: photo %d", ErrForbidden, photoID)
	}

	return s.photos.UpdateCaption(ctx, photoID, caption)
}

// DeletePhoto removes the storage object first and the metadata row second.
// If the storage delete fails the row is left intact, so the database never
// forgets about a blob that may still exist.
func (s *Service) DeletePhoto(ctx context.Context, ownerID, photoID int64) error {
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.OwnerID != ownerID {
		return fmt.Errorf("%w: photo %d", ErrForbidden, photoID)
	}

	if err := s.objects.Delete(ctx, photo.ImageURL); err != nil {
		return fmt.Errorf("delete object for photo %d: %w", photoID, err)
	}

	if err := s.photos.Delete(ctx, photoID); err != nil {
		return err
	}

	s.logger.Info("photo deleted", "photoID", photoID, "ownerID", ownerID)
	return nil
}

// CreateAlbum persists a new, empty album.
func (s *Service) CreateAlbum(ctx context.Context, ownerID int64, title, coverURL string) (AlbumDetail, error) {
	if err := validateTitle(title); err != nil {
		return AlbumDetail{}, err
	}

	album, err := s.albums.Create(ctx, storage.AlbumCreate{
		OwnerID:  ownerID,
		Title:    title,
		CoverURL: coverURL,
	})
	if err != nil {
		return AlbumDetail{}, err
	}

	s.logger.Info("album created", "albumID", album.ID, "ownerID", ownerID)
	return AlbumDetail{Album: album, OwnerNickname: s.ownerNickname(ctx, ownerID)}, nil
}

// ListAlbums returns the caller's albums, newest first.
func (s *Service) ListAlbums(ctx context.Context, ownerID int64) ([]storage.Album, error) {
	return s.albums.ListByOwner(ctx, ownerID)
}

// UpdateAlbumTitle renames an album the caller owns.
func (s *Service) UpdateAlbumTitle(ctx context.Context, ownerID, albumID int64, title string) (AlbumDetail, error) {
	if err := validateTitle(title); err != nil {
		return AlbumDetail{}, err
	}

	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return AlbumDetail{}, err
	}
	if album.OwnerID != ownerID {
		return AlbumDetail{}, fmt.Errorf("%w: album %d", ErrForbidden, albumID)
	}

	updated, err := s.albums.UpdateTitle(ctx, albumID, title)
	if err != nil {
		return AlbumDetail{}, err
	}

	return AlbumDetail{Album: updated, OwnerNickname: s.ownerNickname(ctx, ownerID)}, nil
}

// DeleteAlbum removes an album. With deletePhotos set, every member photo is
// hard-deleted (storage object and row); otherwise the member photos stay in
// the owner's library and only the membership links go away. The album row is
// deleted last in both modes.
func (s *Service) DeleteAlbum(ctx context.Context, ownerID, albumID int64, deletePhotos bool) error {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return err
	}
	if album.OwnerID != ownerID {
		return fmt.Errorf("%w: album %d", ErrForbidden, albumID)
	}

	if deletePhotos {
		links, err := s.links.ListByAlbum(ctx, albumID)
		if err != nil {
			return err
		}

		for _, link := range links {
			photo, err := s.photos.GetByID(ctx, link.PhotoID)
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			if err := s.objects.Delete(ctx, photo.ImageURL); err != nil {
				return fmt.Errorf("delete object for photo %d: %w", photo.ID, err)
			}

			if err := s.photos.Delete(ctx, photo.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
		}
	}

	if err := s.albums.Delete(ctx, albumID); err != nil {
		return err
	}

	s.logger.Info("album deleted", "albumID", albumID, "ownerID", ownerID, "deletePhotos", deletePhotos)
	return nil
}

// AddPhotosToAlbum links the given photos into an album the caller owns. Each
// photo must exist and belong to the caller. Linking an already-linked photo
// is a no-op; a duplicate insert lost to a concurrent call is absorbed the
// same way. The returned slice holds the link for every requested photo as it
// exists after the call.
func (s *Service) AddPhotosToAlbum(ctx context.Context, ownerID, albumID int64, photoIDs []int64) ([]storage.AlbumPhoto, error) {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if album.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: album %d", ErrForbidden, albumID)
	}

	links := make([]storage.AlbumPhoto, 0, len(photoIDs))

	for _, photoID := range photoIDs {
		photo, err := s.photos.GetByID(ctx, photoID)
		if err != nil {
			return nil, err
		}
		if photo.OwnerID != ownerID {
			return nil, fmt.Errorf("%w: photo %d", ErrForbidden, photoID)
		}

		link, err := s.links.Get(ctx, albumID, photoID)
		if errors.Is(err, storage.ErrNotFound) {
			link, err = s.links.Link(ctx, albumID, photoID)
			if errors.Is(err, storage.ErrConflict) {
				link, err = s.links.Get(ctx, albumID, photoID)
			}
		}
		if err != nil {
			return nil, err
		}

		links = append(links, link)
	}

	return links, nil
}

// RemovePhotoFromAlbum deletes a membership link. The ownership check goes
// through the album's owner, who controls membership; the photo row and its
// storage object are untouched.
func (s *Service) RemovePhotoFromAlbum(ctx context.Context, ownerID, albumID, photoID int64) error {
	if _, err := s.links.Get(ctx, albumID, photoID); err != nil {
		return err
	}

	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return err
	}
	if album.OwnerID != ownerID {
		return fmt.Errorf("%w: album %d", ErrForbidden, albumID)
	}

	return s.links.Unlink(ctx, albumID, photoID)
}

// PhotosInAlbum returns a page of an album's member photos, newest first.
func (s *Service) PhotosInAlbum(ctx context.Context, ownerID, albumID int64, page storage.Page) (PhotoPage, error) {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return PhotoPage{}, err
	}
	if album.OwnerID != ownerID {
		return PhotoPage{}, fmt.Errorf("%w: album %d", ErrForbidden, albumID)
	}

	photos, total, err := s.links.ListPhotos(ctx, albumID, page)
	if err != nil {
		return PhotoPage{}, err
	}

	return PhotoPage{Photos: photos, Page: page.Number, Size: page.Limit(), Total: total}, nil
}

func (s *Service) ownerNickname(ctx context.Context, ownerID int64) string {
	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return ""
	}
	return user.Nickname
}

func validateCaption(caption string) error {
	if len(caption) > maxCaptionLen {
		return fmt.Errorf("%w: caption exceeds %d characters", ErrInvalidInput, maxCaptionLen)
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	return nil
}

func validateUpload(up Upload) error {
	if len(up.Data) > maxUploadSize {
		return fmt.Errorf("%w: %q exceeds the %d byte upload limit", ErrInvalidInput, up.Filename, maxUploadSize)
	}
	if !allowedContentTypes[up.ContentType] {
		return fmt.Errorf("%w: %q has unsupported content type %q", ErrInvalidInput, up.Filename, up.ContentType)
	}
	return nil
}
