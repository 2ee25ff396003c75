// Package s3 is a media host on any S3-compatible object store.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Gi2009/cod-back/internal/media"
	"github.com/Gi2009/cod-back/internal/model"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var _ model.MediaHost = (*Client)(nil)

// Options configures the S3 media host.
type Options struct {
	// Endpoint overrides the AWS endpoint, e.g. for MinIO or R2. Empty uses AWS.
	Endpoint  string
	UseSSL    bool
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

type Client struct {
	api       s3API
	bucket    string
	publicURL string
}

// NewClient builds an S3 client from static credentials.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	endpoint := endpointURL(opts.Endpoint, opts.UseSSL)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return NewClientWithAPI(client, opts.Bucket, opts.PublicURL), nil
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(api s3API, bucket, publicURL string) *Client {
	return &Client{
		api:       api,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func endpointURL(endpoint string, useSSL bool) string {
	if endpoint == "" || strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// Upload decodes the image payload, stores it and returns its public URL.
func (c *Client) Upload(ctx context.Context, payload string) (string, error) {
	img, err := media.Decode(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	key := img.Key()
	_, err = c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentLength: aws.Int64(int64(len(img.Data))),
		ContentType:   aws.String(img.ContentType),
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

	pages := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(publicID),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.TrimSuffix(key, path.Ext(key)) != publicID {
				continue
			}
			_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(c.bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				return fmt.Errorf("failed to delete object: %w", err)
			}
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
