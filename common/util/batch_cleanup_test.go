package util

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucket struct {
	objects   []minio.ObjectInfo
	removed   []string
	failOn    string
	gotPrefix string
}

func (f *fakeBucket) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	f.gotPrefix = opts.Prefix
	ch := make(chan minio.ObjectInfo, len(f.objects))
	for _, object := range f.objects {
		ch <- object
	}
	close(ch)
	return ch
}

func (f *fakeBucket) RemoveObject(ctx context.Context, bucketName string, objectName string, opts minio.RemoveObjectOptions) error {
	if objectName == f.failOn {
		return errors.New("access denied")
	}
	f.removed = append(f.removed, objectName)
	return nil
}

func TestCleanupExpiredObjects(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	bucket := &fakeBucket{
		objects: []minio.ObjectInfo{
			{Key: "batch/a/1.png", LastModified: now.Add(-48 * time.Hour)},
			{Key: "batch/a/2.png", LastModified: now.Add(-1 * time.Hour)},
			{Key: "batch/b/1.svg", LastModified: now.Add(-30 * time.Hour)},
			{Key: "batch/c/1.pdf", LastModified: now.Add(-72 * time.Hour)},
		},
		failOn: "batch/c/1.pdf",
	}

	removed, err := CleanupExpiredObjects(context.Background(), bucket, "certificates", BatchPrefix, 24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"batch/a/1.png", "batch/b/1.svg"}, bucket.removed)
	assert.Equal(t, BatchPrefix, bucket.gotPrefix)
}

func TestCleanupExpiredObjects_ListError(t *testing.T) {
	bucket := &fakeBucket{objects: []minio.ObjectInfo{{Err: errors.New("bucket missing")}}}

	_, err := CleanupExpiredObjects(context.Background(), bucket, "certificates", BatchPrefix, time.Hour, time.Now())
	assert.Error(t, err)
}
