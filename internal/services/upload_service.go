package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appErr "github.com/craftfolio/engine/pkg/errors"
)

// profileFolder is the object-key prefix for profile pictures.
const profileFolder = "resume_builder_profiles"

// UploadResult is what the client stores: a serving URL and the object key
// used later as the deletion handle.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// UploadService stores and deletes profile images on S3-compatible object
// storage. The rest of the system treats URL and PublicID as opaque.
type UploadService interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

type s3Uploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Uploader wraps an S3 client for profile-image storage. publicBaseURL
// is the externally reachable prefix objects are served from.
func NewS3Uploader(client *s3.Client, bucket, publicBaseURL string) UploadService {
	return &s3Uploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (u *s3Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (*UploadResult, error) {
	key := fmt.Sprintf("%s/%s%s", profileFolder, uuid.NewString(), strings.ToLower(path.Ext(filename)))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "image upload failed")
	}

	return &UploadResult{
		URL:      u.publicBaseURL + "/" + key,
		PublicID: key,
	}, nil
}

func (u *s3Uploader) Delete(ctx context.Context, publicID string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "image delete failed")
	}
	return nil
}
