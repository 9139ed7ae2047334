package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"courtbook/core/logger"
	"courtbook/core/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ProofStorage stores payment-proof images and hands back an opaque object
// key. Serving the file is the storage collaborator's responsibility; the
// core never reads proofs back.
type ProofStorage interface {
	UploadProof(ctx context.Context, bookingScope string, contentType string, body io.Reader) (string, error)
}

type StorageConfig struct {
	Region    string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type s3Storage struct {
	client *s3.Client
	bucket string
}

func NewS3Storage(config StorageConfig) ProofStorage {
	opts := s3.Options{
		Region:      config.Region,
		Credentials: credentials.NewStaticCredentialsProvider(config.AccessKey, config.SecretKey, ""),
	}
	if config.Endpoint != "" {
		opts.BaseEndpoint = aws.String(config.Endpoint)
		opts.UsePathStyle = true
	}

	return &s3Storage{
		client: s3.New(opts),
		bucket: config.Bucket,
	}
}

func (s *s3Storage) UploadProof(ctx context.Context, bookingScope string, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("proofs/%s/%s-%s", bookingScope, time.Now().UTC().Format("20060102T150405"), utils.GenerateID())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Storage:UploadProof", "key", key, "error", err)
		return "", err
	}

	return key, nil
}
