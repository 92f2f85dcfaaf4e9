package util

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
)

// BatchPrefix is where ad hoc batch renders are stored. Event renders live
// under their event id and are never expired.
const BatchPrefix = "batch/"

type bucketObjects interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObject(ctx context.Context, bucketName string, objectName string, opts minio.RemoveObjectOptions) error
}

// StartBatchCleanupJob removes batch artifacts older than retention once at
// startup and then every hour.
func StartBatchCleanupJob(client *minio.Client, bucket string, retention time.Duration) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic occurred in batch cleanup job", "panic", r)
			}
		}()

		run := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			startTime := time.Now()
			removed, err := CleanupExpiredObjects(ctx, client, bucket, BatchPrefix, retention, startTime)
			if err != nil {
				slog.Error("BatchCleanup Cleanup failed", "error", err, "removed", removed, "duration", time.Since(startTime))
				return
			}
			slog.Info("BatchCleanup Completed", "removed", removed, "max_age", retention.String(), "duration", time.Since(startTime))
		}

		run()

		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			run()
		}
	}()

	slog.Info("BatchCleanup Job started", "bucket", bucket, "retention", retention.String())
}

// CleanupExpiredObjects deletes objects under prefix last modified before
// now - maxAge and reports how many were removed.
func CleanupExpiredObjects(ctx context.Context, objects bucketObjects, bucket string, prefix string, maxAge time.Duration, now time.Time) (int, error) {
	cutoff := now.Add(-maxAge)
	removed := 0

	for object := range objects.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if object.Err != nil {
			return removed, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		if !object.LastModified.Before(cutoff) {
			continue
		}
		if err := objects.RemoveObject(ctx, bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			slog.Warn("BatchCleanup Failed to remove object", "error", err, "object", object.Key)
			continue
		}
		removed++
	}

	return removed, nil
}
