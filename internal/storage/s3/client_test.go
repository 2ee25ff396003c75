package s3

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	putErr   error
	putInput *s3.PutObjectInput
	putBody  []byte

	// pages are returned in order, one per ListObjectsV2 call
	pages   [][]string
	listErr error
	calls   int

	deleteErr error
	deleted   []string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.putInput, f.putBody = in, body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &s3.ListObjectsV2Output{}
	if f.calls < len(f.pages) {
		for _, k := range f.pages[f.calls] {
			if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
				out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
			}
		}
	}
	f.calls++
	if f.calls < len(f.pages) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String("next")
	}
	return out, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

var jpegBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0xff, 0xd9}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()
	payload := base64.StdEncoding.EncodeToString(jpegBytes)

	t.Run("success", func(t *testing.T) {
		api := &fakeS3{}
		c := NewClientWithAPI(api, "activities", "https://cdn.example.com/")

		url, err := c.Upload(ctx, payload)
		require.NoError(t, err)

		key := aws.ToString(api.putInput.Key)
		assert.True(t, strings.HasSuffix(key, ".jpg"))
		assert.Equal(t, "activities", aws.ToString(api.putInput.Bucket))
		assert.Equal(t, "image/jpeg", aws.ToString(api.putInput.ContentType))
		assert.Equal(t, int64(len(jpegBytes)), aws.ToInt64(api.putInput.ContentLength))
		assert.Equal(t, jpegBytes, api.putBody)
		assert.Equal(t, "https://cdn.example.com/activities/"+key, url)
	})

	t.Run("decode error", func(t *testing.T) {
		api := &fakeS3{}
		_, err := NewClientWithAPI(api, "activities", "https://cdn.example.com").Upload(ctx, "")
		require.Error(t, err)
		assert.Nil(t, api.putInput)
	})

	t.Run("put error", func(t *testing.T) {
		api := &fakeS3{putErr: errors.New("denied")}
		_, err := NewClientWithAPI(api, "activities", "https://cdn.example.com").Upload(ctx, payload)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Destroy(t *testing.T) {
	ctx := context.Background()

	t.Run("walks all pages", func(t *testing.T) {
		api := &fakeS3{pages: [][]string{{"abc.jpg", "abcd.jpg"}, {"abc.png"}}}
		c := NewClientWithAPI(api, "activities", "https://cdn.example.com")

		require.NoError(t, c.Destroy(ctx, "abc"))
		assert.Equal(t, []string{"abc.jpg", "abc.png"}, api.deleted)
		assert.Equal(t, 2, api.calls)
	})

	t.Run("empty id", func(t *testing.T) {
		api := &fakeS3{pages: [][]string{{"abc.jpg"}}}
		require.NoError(t, NewClientWithAPI(api, "b", "u").Destroy(ctx, ""))
		assert.Zero(t, api.calls)
	})

	t.Run("list error", func(t *testing.T) {
		api := &fakeS3{listErr: errors.New("boom")}
		err := NewClientWithAPI(api, "b", "u").Destroy(ctx, "abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list objects")
	})

	t.Run("delete error", func(t *testing.T) {
		api := &fakeS3{pages: [][]string{{"abc.jpg"}}, deleteErr: errors.New("boom")}
		err := NewClientWithAPI(api, "b", "u").Destroy(ctx, "abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete object")
	})
}

func TestClient_Owns(t *testing.T) {
	c := NewClientWithAPI(&fakeS3{}, "activities", "https://cdn.example.com")

	assert.True(t, c.Owns("https://cdn.example.com/activities/x.jpg"))
	assert.False(t, c.Owns("https://cdn.example.com/activitiesx/x.jpg"))
	assert.False(t, c.Owns("https://res.cloudinary.com/x.jpg"))
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL("", true))
	assert.Equal(t, "http://localhost:9000", endpointURL("localhost:9000", false))
	assert.Equal(t, "https://s3.example.com", endpointURL("s3.example.com", true))
	assert.Equal(t, "http://minio:9000", endpointURL("http://minio:9000", true))
}
