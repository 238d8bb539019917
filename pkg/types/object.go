package types

import "time"

// Object represents an object in the remote bucket
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag"`
	StorageClass string    `json:"storage_class"`
	Restore      string    `json:"restore,omitempty"`
}

// SizeGB returns the object size in gigabytes, rounded to two decimals
func (o Object) SizeGB() float64 {
	const gb = 1 << 30
	return float64(int64(float64(o.Size)/gb*100+0.5)) / 100
}

// Archived reports whether the object sits in a storage class that
// requires a restore before it can be downloaded
func (o Object) Archived() bool {
	return o.StorageClass == "GLACIER" || o.StorageClass == "DEEP_ARCHIVE"
}
