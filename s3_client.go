package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader abstracts S3 upload operations for testability.
// Implementations include the real AWS SDK v2 client and mock versions for testing.
type S3Uploader interface {
	// Upload puts content to S3 with the specified parameters.
	Upload(ctx context.Context, input *UploadInput) (*UploadOutput, error)
}

// UploadInput contains the parameters for an S3 upload operation.
// This abstraction allows tests to verify upload parameters without
// depending directly on AWS SDK types.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType *string
}

// UploadOutput contains the result of an S3 upload operation.
type UploadOutput struct {
	Location  string
	VersionID *string
	ETag      *string
}

// objectPutter is the part of the S3 API used for uploads.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ objectPutter = (*s3.Client)(nil)

// S3UploaderSDK implements S3Uploader with single part PutObject calls, so
// the resulting ETag stays the md5 of the content.
type S3UploaderSDK struct {
	client objectPutter
}

// NewS3UploaderWithClient creates a new S3Uploader on top of client, usually
// the *s3.Client built by newS3Client.
func NewS3UploaderWithClient(client objectPutter) *S3UploaderSDK {
	return &S3UploaderSDK{client: client}
}

// Upload implements S3Uploader.Upload.
func (u *S3UploaderSDK) Upload(ctx context.Context, input *UploadInput) (*UploadOutput, error) {
	sdkInput := &s3.PutObjectInput{
		Bucket:      aws.String(input.Bucket),
		Key:         aws.String(input.Key),
		Body:        input.Body,
		ContentType: input.ContentType,
	}

	result, err := u.client.PutObject(ctx, sdkInput)
	if err != nil {
		return nil, err
	}

	return &UploadOutput{
		Location:  fmt.Sprintf("s3://%s/%s", input.Bucket, input.Key),
		VersionID: result.VersionId,
		ETag:      result.ETag,
	}, nil
}
