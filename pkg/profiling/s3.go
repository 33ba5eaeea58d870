package profiling

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3PutAPI is the slice of the S3 client the sink uses.
type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink archives snapshots to an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	sink := profiling.NewS3Sink(s3.NewFromConfig(cfg), "my-bucket", "profiling/")
type S3Sink struct {
	client s3PutAPI
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Sink creates a sink writing under prefix in bucket.
func NewS3Sink(client s3PutAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
	}
}

// Store uploads one snapshot.
func (s *S3Sink) Store(ctx context.Context, snap *Snapshot) error {
	key := snapshotKey(s.prefix, snap, s.now())
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(snap.Encode()),
		ContentType: aws.String("application/octet-stream"),
		Metadata: map[string]string{
			"frames":      fmt.Sprintf("%d", snap.Frames),
			"upload-time": s.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("profiling: s3 upload failed: %w", err)
	}
	return nil
}
