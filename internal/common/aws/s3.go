package aws

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "juriscontent-workers/internal/common/config"
	"juriscontent-workers/internal/common/errors"
)

const assetHostService = "asset-host"

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader hosts rendered images and returns their public URL.
type S3Uploader struct {
	client s3API
	cfg    appconfig.S3Config
	newKey func() string
}

func NewS3Uploader(ctx context.Context, cfg appconfig.S3Config) (*S3Uploader, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3UploaderWithClient(client, cfg), nil
}

func NewS3UploaderWithClient(client s3API, cfg appconfig.S3Config) *S3Uploader {
	return &S3Uploader{
		client: client,
		cfg:    cfg,
		newKey: func() string { return uuid.New().String() },
	}
}

// Upload stores data under folder with a random name and returns the
// public URL of the object.
func (u *S3Uploader) Upload(ctx context.Context, folder string, data []byte, contentType string) (string, error) {
	key := path.Join(strings.Trim(folder, "/"), u.newKey()+extensionFor(contentType))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.cfg.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		var respErr *awshttp.ResponseError
		if stderrors.As(err, &respErr) {
			return "", &errors.UpstreamError{
				Service: assetHostService,
				Status:  respErr.HTTPStatusCode(),
				Message: respErr.Error(),
			}
		}
		return "", errors.NewAssetUploadFailedError(folder, err)
	}

	return u.publicURL(key), nil
}

func (u *S3Uploader) publicURL(key string) string {
	switch {
	case u.cfg.PublicBaseURL != "":
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key
	case u.cfg.Endpoint != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.cfg.Endpoint, "/"), u.cfg.Bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
	}
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
