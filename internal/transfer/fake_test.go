package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vietdv277/mmgmt/pkg/provider"
	"github.com/vietdv277/mmgmt/pkg/types"
)

// fakeStore is an in-memory ObjectStore for orchestrator tests.
type fakeStore struct {
	objects  map[string][]byte
	meta     map[string]types.Object
	restored map[string]string

	putErr   error
	getErr   error
	putCalls int
	deleted  []string
}

var _ provider.ObjectStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:  make(map[string][]byte),
		meta:     make(map[string]types.Object),
		restored: make(map[string]string),
	}
}

func (f *fakeStore) add(obj types.Object, data []byte) {
	f.objects[obj.Key] = data
	if obj.Size == 0 {
		obj.Size = int64(len(data))
	}
	if obj.StorageClass == "" {
		obj.StorageClass = "STANDARD"
	}
	f.meta[obj.Key] = obj
}

func (f *fakeStore) Put(ctx context.Context, key string, body io.Reader) (string, error) {
	f.putCalls++
	if f.putErr != nil {
		return "", f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.add(types.Object{Key: key, ETag: "etag-" + key}, data)
	return "etag-" + key, nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", key, provider.ErrObjectNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) Head(ctx context.Context, key string) (*types.Object, error) {
	obj, ok := f.meta[key]
	if !ok {
		return nil, fmt.Errorf("head %s: %w", key, provider.ErrObjectNotFound)
	}
	return &obj, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	if _, ok := f.meta[key]; !ok {
		return fmt.Errorf("delete %s: %w", key, provider.ErrObjectNotFound)
	}
	f.deleted = append(f.deleted, key)
	delete(f.meta, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) List(ctx context.Context, prefix string) ([]types.Object, error) {
	keys := make([]string, 0, len(f.meta))
	for key := range f.meta {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	objects := make([]types.Object, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, f.meta[key])
	}
	return objects, nil
}

func (f *fakeStore) ListBuckets(ctx context.Context) ([]string, error) {
	return []string{"media-archive"}, nil
}

func (f *fakeStore) Restore(ctx context.Context, key string, tier string) error {
	if _, ok := f.meta[key]; !ok {
		return fmt.Errorf("restore %s: %w", key, provider.ErrObjectNotFound)
	}
	f.restored[key] = tier
	return nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}
