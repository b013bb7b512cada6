package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// ReceiptStore keeps payment receipts and returns where each was written.
type ReceiptStore interface {
	Put(ctx context.Context, key string, body []byte) (string, error)
}

// S3Receipts uploads receipts to an S3 bucket.
type S3Receipts struct {
	uploader *s3manager.Uploader
	bucket   string
	region   string
}

// NewS3Receipts uses the default AWS credential chain.
func NewS3Receipts(region, bucket string) (*S3Receipts, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return &S3Receipts{uploader: s3manager.NewUploader(sess), bucket: bucket, region: region}, nil
}

func (s *S3Receipts) Put(ctx context.Context, key string, body []byte) (string, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// LocalReceipts writes receipts under a directory on disk.
type LocalReceipts struct {
	dir string
}

func NewLocalReceipts(dir string) (*LocalReceipts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create receipt directory: %w", err)
	}
	return &LocalReceipts{dir: dir}, nil
}

func (l *LocalReceipts) Put(_ context.Context, key string, body []byte) (string, error) {
	path := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder directory: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return "file://" + filepath.ToSlash(path), nil
}
