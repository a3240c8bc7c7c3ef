package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

var ErrContentTypeNotAllowed = errors.New("content type not allowed")

// AllowedImageTypes are the upload types accepted for product and comment files.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}

type S3Storage struct {
	presign func(ctx context.Context, key, contentType string) (string, error)
	bucket  string
	region  string
	baseURL string
}

func NewS3Storage(ctx context.Context, region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config

	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region:      region,
			Credentials: credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		}
	} else {
		// default chain: env, shared credentials, IAM role
		loaded, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
		if err != nil {
			loaded = aws.Config{Region: region}
		}
		cfg = loaded
	}

	presignClient := s3.NewPresignClient(s3.NewFromConfig(cfg))
	return &S3Storage{
		presign: func(ctx context.Context, key, contentType string) (string, error) {
			req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
				Bucket:      aws.String(bucket),
				Key:         aws.String(key),
				ContentType: aws.String(contentType),
			}, s3.WithPresignExpires(presignExpiry))
			if err != nil {
				return "", err
			}
			return req.URL, nil
		},
		bucket:  bucket,
		region:  region,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// PresignUpload returns a PUT URL for a new object under folder. The object
// key keeps only the extension of the client filename.
func (s *S3Storage) PresignUpload(ctx context.Context, folder, filename, contentType string) (*PresignedUpload, error) {
	if err := ValidateContentType(contentType, AllowedImageTypes); err != nil {
		return nil, err
	}

	key := ObjectKey(folder, filename)
	uploadURL, err := s.presign(ctx, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &PresignedUpload{
		UploadURL: uploadURL,
		FileURL:   s.FileURL(key),
		Key:       key,
		ExpiresIn: int(presignExpiry.Seconds()),
	}, nil
}

// FileURL is the public URL of key, through the CDN base URL when configured.
func (s *S3Storage) FileURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.New().String(), ext)
}

func ValidateFileSize(size int64, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", maxSize)
	}
	return nil
}

func ValidateContentType(contentType string, allowedTypes []string) error {
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrContentTypeNotAllowed, contentType)
}
