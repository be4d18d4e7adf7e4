package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/memorylane/internal/common"
	sc "github.com/dmitrijs2005/memorylane/internal/server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// StorageService fronts the S3-compatible object store. Clients upload
// straight to presigned URLs; public URLs point at the gateway's /media
// endpoint, which redirects to a fresh presigned GET.
type StorageService struct {
	config *sc.Config
}

func NewStorageService(config *sc.Config) *StorageService {
	return &StorageService{config: config}
}

func (s *StorageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// CheckKey reports whether key is a well-formed object key inside the
// namespace of userID.
func CheckKey(userID, key string) error {
	if err := checkKeyPath(key); err != nil {
		return err
	}
	if userID == "" || !strings.HasPrefix(key, userID+"/") {
		return common.ErrorForbidden
	}
	return nil
}

// checkKeyPath rejects empty keys and keys with an empty, "." or ".." segment.
// Dots inside a file name are fine.
func checkKeyPath(key string) error {
	if key == "" {
		return fmt.Errorf("%w: invalid storage key", common.ErrorValidation)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: invalid storage key", common.ErrorValidation)
		}
	}
	return nil
}

// CreateUploadURL presigns a PUT of key with contentType for userID.
func (s *StorageService) CreateUploadURL(ctx context.Context, userID, key, contentType string) (string, error) {
	if err := CheckKey(userID, key); err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(s.presignExpiry()))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// PublicURL returns the stable, publicly resolvable URL of key.
func (s *StorageService) PublicURL(userID, key string) (string, error) {
	if err := CheckKey(userID, key); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(s.config.PublicBaseURL, "/")
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return base + "/" + strings.Join(parts, "/"), nil
}

// PresignedGetURL presigns a short-lived GET of key.
func (s *StorageService) PresignedGetURL(ctx context.Context, key string) (string, error) {
	if err := checkKeyPath(key); err != nil {
		return "", err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.presignExpiry()))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *StorageService) presignExpiry() time.Duration {
	if s.config.PresignExpiry <= 0 {
		return 15 * time.Minute
	}
	return s.config.PresignExpiry
}
