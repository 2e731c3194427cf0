package storage

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type storageClient struct {
	bucket  string
	baseURL string
	client  *s3.Client
}

// NewStorageClient builds the S3-backed blob store used in deployed
// environments. Bucket, region and the public base URL come from env vars.
func NewStorageClient() (*storageClient, error) {
	region := os.Getenv("AWS_S3_REGION")
	bucket := os.Getenv("S3_BUCKET_NAME")
	baseURL := os.Getenv("MEDIA_BASE_URL")
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)
	return &storageClient{
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}, nil
}

func (s *storageClient) Put(data []byte, key string) (string, error) {
	if key == "" {
		return "", errors.New("key is empty")
	}

	mimeType := mime.TypeByExtension(filepath.Ext(key))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: &mimeType,
	}

	_, err := s.client.PutObject(context.Background(), input)
	if err != nil {
		return "", err
	}
	return key, nil
}

// Delete is idempotent: it returns nil if the object does not exist. This
// prevents errors when the database and the bucket are out of sync.
func (s *storageClient) Delete(key string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil
	}
	return err
}

func (s *storageClient) URL(key string) string {
	return s.baseURL + "/" + key
}
