// Package archive stores submission snapshots in an S3 compatible bucket.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const prefix = "submissions"

// ObjectStore is the subset of the minio client the archive needs.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minioSDK.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minioSDK.PutObjectOptions) (minioSDK.UploadInfo, error)
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type Archive struct {
	store  ObjectStore
	bucket string
	log    *zap.Logger
}

// Open connects to the object store and makes sure the bucket exists.
// It returns nil, nil when no endpoint is configured.
func Open(ctx context.Context, cfg Config, log *zap.Logger) (*Archive, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}
	client, err := minioSDK.New(cfg.Endpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return New(ctx, client, cfg.Bucket, log)
}

func New(ctx context.Context, store ObjectStore, bucket string, log *zap.Logger) (*Archive, error) {
	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := store.MakeBucket(ctx, bucket, minioSDK.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		log.Info("archive bucket created", zap.String("bucket", bucket))
	}
	return &Archive{store: store, bucket: bucket, log: log}, nil
}

// SnapshotKey is the object name of the gzipped submission JSON.
func SnapshotKey(reference string) string {
	return path.Join(prefix, reference, "submission.json.gz")
}

// EmailKey is the object name of the rendered notification email.
func EmailKey(reference string) string {
	return path.Join(prefix, reference, "email.html")
}

// Store writes the snapshot and, when non-empty, the email body.
func (a *Archive) Store(ctx context.Context, reference string, snapshot any, emailHTML string) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	if err := a.put(ctx, SnapshotKey(reference), buf.Bytes(), "application/json", "gzip"); err != nil {
		return err
	}
	if emailHTML != "" {
		if err := a.put(ctx, EmailKey(reference), []byte(emailHTML), "text/html; charset=utf-8", ""); err != nil {
			return err
		}
	}
	a.log.Debug("submission archived", zap.String("reference", reference))
	return nil
}

func (a *Archive) put(ctx context.Context, key string, body []byte, contentType, encoding string) error {
	_, err := a.store.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minioSDK.PutObjectOptions{
		ContentType:     contentType,
		ContentEncoding: encoding,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
