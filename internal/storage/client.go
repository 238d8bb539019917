// Package storage implements the remote storage client over S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vietdv277/mmgmt/pkg/provider"
	"github.com/vietdv277/mmgmt/pkg/types"
)

// API is the subset of the S3 client surface the storage layer depends on.
// *s3.Client satisfies it; tests substitute a stub.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	ListBuckets(ctx context.Context, in *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	RestoreObject(ctx context.Context, in *s3.RestoreObjectInput, optFns ...func(*s3.Options)) (*s3.RestoreObjectOutput, error)
}

// Client implements provider.ObjectStore against a single bucket.
type Client struct {
	api    API
	bucket string

	profile  string
	region   string
	endpoint string
}

// Option allows customizing the storage Client
type Option func(*Client)

// WithProfile sets the AWS profile for the client
func WithProfile(profile string) Option {
	return func(c *Client) {
		c.profile = profile
	}
}

// WithRegion sets the AWS region for the client
func WithRegion(region string) Option {
	return func(c *Client) {
		c.region = region
	}
}

// WithEndpoint points the client at a custom S3-compatible endpoint
// (minio and friends). Path-style addressing is enabled alongside.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		c.endpoint = url
	}
}

// WithAPI injects a pre-built SDK client. Used by tests.
func WithAPI(api API) Option {
	return func(c *Client) {
		c.api = api
	}
}

// NewClient creates a storage Client bound to bucket with the given
// options. An empty bucket is allowed only for bucket-level calls such as
// ListBuckets; object operations require one, which callers validate
// through the configuration layer.
func NewClient(ctx context.Context, bucket string, opts ...Option) (*Client, error) {
	c := &Client{bucket: bucket}
	for _, opt := range opts {
		opt(c)
	}

	if c.api == nil {
		var configOpts []func(*awsconfig.LoadOptions) error
		if c.profile != "" {
			configOpts = append(configOpts, awsconfig.WithSharedConfigProfile(c.profile))
		}
		if c.region != "" {
			configOpts = append(configOpts, awsconfig.WithRegion(c.region))
		}

		cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
		}

		var s3Opts []func(*s3.Options)
		if c.endpoint != "" {
			s3Opts = append(s3Opts, func(o *s3.Options) {
				o.BaseEndpoint = aws.String(c.endpoint)
				o.UsePathStyle = true
			})
		}
		c.api = s3.NewFromConfig(cfg, s3Opts...)
	}

	return c, nil
}

// Bucket returns the bucket the client is bound to.
func (c *Client) Bucket() string {
	return c.bucket
}

// Put uploads body under key and returns the ETag of the stored object.
func (c *Client) Put(ctx context.Context, key string, body io.Reader) (string, error) {
	out, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", fmt.Errorf("put %s/%s: %w", c.bucket, key, err)
	}
	return trimETag(aws.ToString(out.ETag)), nil
}

// Get opens the object body for reading.
func (c *Client) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("get %s/%s: %w", c.bucket, key, provider.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("get %s/%s: %w", c.bucket, key, err)
	}
	return out.Body, nil
}

// Head returns the object metadata without the body.
func (c *Client) Head(ctx context.Context, key string) (*types.Object, error) {
	out, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("head %s/%s: %w", c.bucket, key, provider.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("head %s/%s: %w", c.bucket, key, err)
	}

	obj := &types.Object{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ETag:         trimETag(aws.ToString(out.ETag)),
		StorageClass: storageClass(string(out.StorageClass)),
		Restore:      aws.ToString(out.Restore),
	}
	if out.LastModified != nil {
		obj.LastModified = *out.LastModified
	}
	return obj, nil
}

// Delete removes the object.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("delete %s/%s: %w", c.bucket, key, provider.ErrObjectNotFound)
		}
		return fmt.Errorf("delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// List returns metadata for every object under prefix, draining all pages.
// S3 returns keys in lexicographic order, which keeps results stable
// between calls.
func (c *Client) List(ctx context.Context, prefix string) ([]types.Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	paginator := s3.NewListObjectsV2Paginator(c.api, input)

	var objects []types.Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", c.bucket, err)
		}
		for _, o := range page.Contents {
			obj := types.Object{
				Key:          aws.ToString(o.Key),
				Size:         aws.ToInt64(o.Size),
				ETag:         trimETag(aws.ToString(o.ETag)),
				StorageClass: storageClass(string(o.StorageClass)),
			}
			if o.LastModified != nil {
				obj.LastModified = *o.LastModified
			}
			if o.RestoreStatus != nil {
				obj.Restore = restoreStatusString(o.RestoreStatus)
			}
			objects = append(objects, obj)
		}
	}
	return objects, nil
}

// ListBuckets returns the names of all buckets visible to the credentials.
func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	out, err := c.api.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}
	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		names = append(names, aws.ToString(b.Name))
	}
	return names, nil
}

// Restore requests a restore of an archived object. Restored copies stay
// available for ten days.
func (c *Client) Restore(ctx context.Context, key string, tier string) error {
	_, err := c.api.RestoreObject(ctx, &s3.RestoreObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		RestoreRequest: &s3types.RestoreRequest{
			Days: aws.Int32(10),
			GlacierJobParameters: &s3types.GlacierJobParameters{
				Tier: s3types.Tier(tier),
			},
		},
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("restore %s/%s: %w", c.bucket, key, provider.ErrObjectNotFound)
		}
		return fmt.Errorf("restore %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

func storageClass(class string) string {
	if class == "" {
		return "STANDARD"
	}
	return class
}

func restoreStatusString(rs *s3types.RestoreStatus) string {
	if rs == nil {
		return ""
	}
	if aws.ToBool(rs.IsRestoreInProgress) {
		return `ongoing-request="true"`
	}
	return `ongoing-request="false"`
}

func trimETag(etag string) string {
	return strings.Trim(etag, `"`)
}
