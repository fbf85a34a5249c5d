package transfer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/daylog/internal/filex"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Sink stores an encoded export under name and returns where it went.
type Sink interface {
	Put(ctx context.Context, name string, body []byte) (string, error)
}

// FileSink writes exports to the local filesystem. Relative names are
// resolved against Dir.
type FileSink struct {
	Dir string
}

func (s FileSink) Put(ctx context.Context, name string, body []byte) (string, error) {
	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.Dir, p)
	}
	p, err := filex.EnsureParentDir(p, 0o755)
	if err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	if err := os.WriteFile(p, body, 0o600); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return p, nil
}

// S3Config locates an S3-compatible bucket, e.g. MinIO.
type S3Config struct {
	Endpoint        string `json:"endpoint"`
	Region          string `json:"region"`
	Bucket          string `json:"bucket"`
	Prefix          string `json:"prefix"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	putObject = func(ctx context.Context, c *s3.Client, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}
)

// S3Sink uploads exports to an S3 bucket.
type S3Sink struct {
	cfg    S3Config
	client *s3.Client
}

func NewS3Sink(ctx context.Context, c S3Config) (*S3Sink, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Sink{cfg: c, client: client}, nil
}

func (s *S3Sink) key(name string) string {
	base := filepath.Base(name)
	if s.cfg.Prefix == "" {
		return base
	}
	return path.Join(strings.Trim(s.cfg.Prefix, "/"), base)
}

func (s *S3Sink) Put(ctx context.Context, name string, body []byte) (string, error) {
	key := s.key(name)
	contentType := "text/csv"
	if f, err := FormatOf(name); err == nil && f == FormatJSON {
		contentType = "application/json"
	}

	err := putObject(ctx, s.client, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, key), nil
}
