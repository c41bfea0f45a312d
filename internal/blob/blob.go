// Package blob defines the object-storage boundary. Implementations store
// opaque byte blobs under caller-supplied keys and hand back durable URLs;
// they never retry on their own.
package blob

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Storage is the contract against the remote blob backend. Delete is
// idempotent: deleting an object that is already gone is not an error.
type Storage interface {
	Store(ctx context.Context, data []byte, contentType, key string) (string, error)
	Delete(ctx context.Context, url string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// defaultExt is used when the original filename carries no extension.
const defaultExt = ".jpg"

// NewKey builds an owner-namespaced, collision-resistant storage key of the
// form {category}/{ownerID}/{random}{ext}. The extension is taken from the
// original filename.
func NewKey(category string, ownerID int64, filename string) string {
	return fmt.Sprintf("%s/%d/%s%s", category, ownerID, uuid.NewString(), ext(filename))
}

func ext(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return defaultExt
	}
	return strings.ToLower(filename[idx:])
}
