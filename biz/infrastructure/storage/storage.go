// Package storage 课程素材的对象存储
package storage

import (
	"context"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/util/log"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const presignExpire = 15 * time.Minute

type IStorage interface {
	Delete(ctx context.Context, key string) error
	// PresignPut 生成直传用的加签url
	PresignPut(ctx context.Context, key string) (string, error)
}

// NewStorage 未配置 Bucket 时不做任何事
func NewStorage(config *config.Config) IStorage {
	if config.Storage.Bucket == "" {
		log.Info("NewStorage: no bucket configured, use noop storage")
		return NoopStorage{}
	}
	return NewS3Storage(config)
}

type S3Storage struct {
	client *s3.S3
	bucket string
}

func NewS3Storage(config *config.Config) *S3Storage {
	cfg := aws.NewConfig().WithRegion(config.Storage.Region)
	if config.Storage.Endpoint != "" {
		cfg = cfg.WithEndpoint(config.Storage.Endpoint).WithS3ForcePathStyle(true)
	}
	sess := session.Must(session.NewSession(cfg))
	return &S3Storage{
		client: s3.New(sess),
		bucket: config.Storage.Bucket,
	}
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) PresignPut(_ context.Context, key string) (string, error) {
	req, _ := s.client.PutObjectRequest(&s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return req.Presign(presignExpire)
}

type NoopStorage struct{}

func (NoopStorage) Delete(context.Context, string) error { return nil }

func (NoopStorage) PresignPut(_ context.Context, key string) (string, error) {
	return "/local-upload/" + key, nil
}
