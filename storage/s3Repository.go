package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"internhub/models"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config describes the bucket object holding the record set. Endpoint is
// optional and lets the repository target R2 or MinIO.
type S3Config struct {
	Bucket    string
	Key       string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3Repository stores the record set as a single JSON object.
type S3Repository struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Repository builds an S3 client from static credentials when given,
// otherwise from the default AWS credential chain.
func NewS3Repository(ctx context.Context, cfg S3Config) (*S3Repository, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	key := cfg.Key
	if key == "" {
		key = "enrollments.json"
	}
	return &S3Repository{client: client, bucket: cfg.Bucket, key: key}, nil
}

func (r *S3Repository) LoadAll(ctx context.Context) ([]models.Enrollment, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return []models.Enrollment{}, nil
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	if buf.Len() == 0 {
		return []models.Enrollment{}, nil
	}

	var enrollments []models.Enrollment
	if err := json.Unmarshal(buf.Bytes(), &enrollments); err != nil {
		return nil, fmt.Errorf("decode s3://%s/%s: %w", r.bucket, r.key, err)
	}
	return enrollments, nil
}

func (r *S3Repository) SaveAll(ctx context.Context, enrollments []models.Enrollment) error {
	if enrollments == nil {
		enrollments = []models.Enrollment{}
	}
	body, err := json.Marshal(enrollments)
	if err != nil {
		return err
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}
