package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/common"
	"github.com/rustblog/rustblog/internal/server/config"
)

// objectAPI is the subset of the S3 client the store uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps blobs in one flat S3-compatible bucket. Writes and
// deletes go to the internal endpoint; reads go to the public one,
// which serves the image proxy. Both clients are stateless and safe
// for concurrent use.
type S3Store struct {
	client       objectAPI
	publicClient objectAPI
	bucket       string
}

// NewS3Store builds path-style clients against the configured
// MinIO/S3 endpoints.
func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("s3 config error: %w", err)
	}

	clientFor := func(endpoint string) *s3.Client {
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Store{
		client:       clientFor(cfg.MinioAddr),
		publicClient: clientFor(cfg.MinioPublicAddr),
		bucket:       cfg.MinioBucketName,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, content []byte, contentType string) (uuid.UUID, error) {
	id := uuid.New()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(id.String()),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("store error: %w", err)
	}

	return id, nil
}

func (s *S3Store) Get(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	out, err := s.publicClient.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id.String()),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", fmt.Errorf("store error: %w", err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("store error: %w", err)
	}

	return content, aws.ToString(out.ContentType), nil
}

func (s *S3Store) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id.String()),
	})
	if err != nil {
		return fmt.Errorf("store error: %w", err)
	}

	return nil
}
