package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/Gi2009/cod-back/internal/media"
	"github.com/Gi2009/cod-back/internal/model"
)

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketPolicy(ctx context.Context, bucketName, policy string) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var _ model.MediaHost = (*Client)(nil)

// Client stores activity images in a MinIO bucket that is publicly readable.
type Client struct {
	api       minioAPI
	bucket    string
	publicURL string
}

// NewClient creates a media host backed by a real *minio.Client.
// Objects are published under publicURL/bucket/key.
func NewClient(ctx context.Context, client *minio.Client, bucket, publicURL string) (*Client, error) {
	return NewClientWithAPI(ctx, client, bucket, publicURL)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket, publicURL string) (*Client, error) {
	c := &Client{
		api:       api,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}

	err := c.ensureBucketExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

// ensureBucketExists creates the bucket with an anonymous read policy if it doesn't exist
func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	err = c.api.SetBucketPolicy(ctx, c.bucket, publicReadPolicy(c.bucket))
	if err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// Upload decodes the image payload, stores it and returns its public URL.
func (c *Client) Upload(ctx context.Context, payload string) (string, error) {
	img, err := media.Decode(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	key := img.Key()
	_, err = c.api.PutObject(ctx, c.bucket, key, bytes.NewReader(img.Data), int64(len(img.Data)), minio.PutObjectOptions{
		ContentType: img.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return c.objectURL(key), nil
}

// Destroy removes every object whose name without extension equals publicID.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	// cancelling stops the listing goroutine on early return
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range c.api.ListObjects(listCtx, c.bucket, minio.ListObjectsOptions{Prefix: publicID}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if strings.TrimSuffix(obj.Key, path.Ext(obj.Key)) != publicID {
			continue
		}
		err := c.api.RemoveObject(ctx, c.bucket, obj.Key, minio.RemoveObjectOptions{})
		if err != nil {
			return fmt.Errorf("failed to delete object: %w", err)
		}
	}

	return nil
}

// Owns reports whether url was published by this client.
func (c *Client) Owns(url string) bool {
	return strings.HasPrefix(url, c.objectURL(""))
}

func (c *Client) objectURL(key string) string {
	return c.publicURL + "/" + c.bucket + "/" + key
}
