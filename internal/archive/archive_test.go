package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	exists  bool
	made    []string
	objects map[string][]byte
	opts    map[string]minioSDK.PutObjectOptions
	putErr  error
}

func newFakeStore(exists bool) *fakeStore {
	return &fakeStore{
		exists:  exists,
		objects: map[string][]byte{},
		opts:    map[string]minioSDK.PutObjectOptions{},
	}
}

func (f *fakeStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return f.exists, nil
}

func (f *fakeStore) MakeBucket(ctx context.Context, bucket string, opts minioSDK.MakeBucketOptions) error {
	f.made = append(f.made, bucket)
	return nil
}

func (f *fakeStore) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minioSDK.PutObjectOptions) (minioSDK.UploadInfo, error) {
	if f.putErr != nil {
		return minioSDK.UploadInfo{}, f.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return minioSDK.UploadInfo{}, err
	}
	f.objects[key] = b
	f.opts[key] = opts
	return minioSDK.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func TestNew_CreatesMissingBucket(t *testing.T) {
	store := newFakeStore(false)
	_, err := New(context.Background(), store, "forms", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"forms"}, store.made)

	store = newFakeStore(true)
	_, err = New(context.Background(), store, "forms", zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, store.made)
}

func TestOpen_Disabled(t *testing.T) {
	a, err := Open(context.Background(), Config{}, zap.NewNop())
	assert.NoError(t, err)
	assert.Nil(t, a)
}

func TestStore_WritesSnapshotAndEmail(t *testing.T) {
	store := newFakeStore(true)
	a, err := New(context.Background(), store, "forms", zap.NewNop())
	require.NoError(t, err)

	snapshot := map[string]any{"reference": "abc123", "formId": "contact"}
	require.NoError(t, a.Store(context.Background(), "abc123", snapshot, "<p>hi</p>"))

	gz, ok := store.objects["submissions/abc123/submission.json.gz"]
	require.True(t, ok)
	assert.Equal(t, "gzip", store.opts["submissions/abc123/submission.json.gz"].ContentEncoding)

	zr, err := gzip.NewReader(bytes.NewReader(gz))
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "contact", got["formId"])

	assert.Equal(t, "<p>hi</p>", string(store.objects["submissions/abc123/email.html"]))
}

func TestStore_SkipsEmptyEmail(t *testing.T) {
	store := newFakeStore(true)
	a, err := New(context.Background(), store, "forms", zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, a.Store(context.Background(), "r1", map[string]string{}, ""))
	assert.Len(t, store.objects, 1)
}

func TestStore_PutError(t *testing.T) {
	store := newFakeStore(true)
	store.putErr = errors.New("boom")
	a, err := New(context.Background(), store, "forms", zap.NewNop())
	require.NoError(t, err)

	err = a.Store(context.Background(), "r1", map[string]string{}, "")
	assert.ErrorContains(t, err, "submissions/r1/submission.json.gz")
}
