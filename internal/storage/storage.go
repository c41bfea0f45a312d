package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates that the requested entity does not exist in the
// underlying storage.
var ErrNotFound = errors.New("storage: not found")

// ErrConflict indicates that a uniqueness constraint rejected the write, e.g.
// inserting an (album, photo) link that already exists.
var ErrConflict = errors.New("storage: conflict")

// Store exposes the persistence primitives required by the application. It is
// expected to be safe for concurrent use.
type Store interface {
	Photos() Photos
	Albums() Albums
	AlbumPhotos() AlbumPhotos
	Users() Users
	Ping(ctx context.Context) error
	Close() error
}

// Page selects a window of a list. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Limit returns the row limit for the page.
func (p Page) Limit() int {
	if p.Size <= 0 {
		return 20
	}
	return p.Size
}

// Offset returns the number of rows to skip before the page starts.
func (p Page) Offset() int {
	n := p.Number
	if n < 1 {
		n = 1
	}
	return (n - 1) * p.Limit()
}

// Photo is a single uploaded image. OwnerID is immutable after creation and
// ImageURL is an opaque pointer into object storage.
type Photo struct {
	ID        int64
	OwnerID   int64
	ImageURL  string
	Caption   string
	TakenAt   time.Time
	CreatedAt time.Time
}

// PhotoCreate contains the data required to insert a new photo.
type PhotoCreate struct {
	OwnerID  int64
	ImageURL string
	Caption  string
	TakenAt  time.Time
}

// Photos defines the operations supported for managing photo rows.
type Photos interface {
	Create(ctx context.Context, input PhotoCreate) (Photo, error)
	GetByID(ctx context.Context, id int64) (Photo, error)
	ListByOwner(ctx context.Context, ownerID int64, page Page) ([]Photo, int64, error)
	UpdateCaption(ctx context.Context, id int64, caption string) (Photo, error)
	Delete(ctx context.Context, id int64) error
}

// Album is a named collection of photos belonging to one owner.
type Album struct {
	ID        int64
	OwnerID   int64
	Title     string
	CoverURL  string
	CreatedAt time.Time
}

// AlbumCreate captures the data required to create a new album.
type AlbumCreate struct {
	OwnerID  int64
	Title    string
	CoverURL string
}

// Albums defines the operations supported for managing album rows.
type Albums interface {
	Create(ctx context.Context, input AlbumCreate) (Album, error)
	GetByID(ctx context.Context, id int64) (Album, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Album, error)
	UpdateTitle(ctx context.Context, id int64, title string) (Album, error)
	Delete(ctx context.Context, id int64) error
}

// AlbumPhoto links one photo to one album. The (AlbumID, PhotoID) pair is the
// identity; a pair appears at most once.
type AlbumPhoto struct {
	AlbumID   int64
	PhotoID   int64
	CreatedAt time.Time
}

// AlbumPhotos defines the operations supported for managing membership links.
// Link returns ErrConflict when the pair already exists; Unlink and Get return
// ErrNotFound when it does not.
type AlbumPhotos interface {
	Link(ctx context.Context, albumID, photoID int64) (AlbumPhoto, error)
	Unlink(ctx context.Context, albumID, photoID int64) error
	Get(ctx context.Context, albumID, photoID int64) (AlbumPhoto, error)
	ListByAlbum(ctx context.Context, albumID int64) ([]AlbumPhoto, error)
	ListPhotos(ctx context.Context, albumID int64, page Page) ([]Photo, int64, error)
}

// User is the locally mirrored profile of an account owner. Authentication
// lives elsewhere; this row only supplies display attributes such as the
// nickname shown on album responses.
type User struct {
	ID        int64
	Nickname  string
	CreatedAt time.Time
}

// Users defines the operations supported for the mirrored user profiles.
type Users interface {
	GetByID(ctx context.Context, id int64) (User, error)
	Upsert(ctx context.Context, id int64, nickname string) (User, error)
}
