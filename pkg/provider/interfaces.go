package provider

import (
	"context"
	"errors"
	"io"

	"github.com/vietdv277/mmgmt/pkg/types"
)

// ErrObjectNotFound is returned when the requested key does not exist in
// the bucket. Callers test for it with errors.Is.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore defines the primitive operations the orchestrators and the
// search engine need from the remote storage backend. The backend owns
// retries and timeouts; callers treat any returned error as terminal for
// the current attempt.
type ObjectStore interface {
	// Put uploads the body under key and returns the backend's
	// integrity tag for the stored object.
	Put(ctx context.Context, key string, body io.Reader) (string, error)

	// Get opens the object body for reading. The caller must close it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Head returns the object's metadata without fetching the body.
	Head(ctx context.Context, key string) (*types.Object, error)

	// Delete removes the object.
	Delete(ctx context.Context, key string) error

	// List returns metadata for every object whose key starts with
	// prefix, in the backend's listing order.
	List(ctx context.Context, prefix string) ([]types.Object, error)

	// ListBuckets returns the names of all buckets visible to the
	// configured credentials.
	ListBuckets(ctx context.Context) ([]string, error)

	// Restore requests a restore of an archived object at the given
	// retrieval tier. It returns once the request is accepted.
	Restore(ctx context.Context, key string, tier string) error
}
