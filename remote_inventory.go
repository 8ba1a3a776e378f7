package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectLister is the part of the S3 API used to enumerate a bucket.
type objectLister interface {
	ListObjects(ctx context.Context, params *s3.ListObjectsInput, optFns ...func(*s3.Options)) (*s3.ListObjectsOutput, error)
}

var _ objectLister = (*s3.Client)(nil)

// remoteFile is an object already in the bucket.
type remoteFile struct {
	Key    string
	Digest string
}

// listRemoteFiles returns every object in bucket, following the listing
// markers until a page is no longer truncated. Each request is bounded by
// timeout when it is positive.
func listRemoteFiles(ctx context.Context, client objectLister, bucket string, timeout time.Duration) ([]remoteFile, error) {
	var (
		files  []remoteFile
		marker *string
	)

	for {
		out, err := listPage(ctx, client, &s3.ListObjectsInput{
			Bucket: aws.String(bucket),
			Marker: marker,
		}, timeout)
		if err != nil {
			return nil, newBucketError("list", bucket, err)
		}

		for _, obj := range out.Contents {
			files = append(files, remoteFile{
				Key:    aws.ToString(obj.Key),
				Digest: normalizeETag(aws.ToString(obj.ETag)),
			})
		}

		if !aws.ToBool(out.IsTruncated) {
			return files, nil
		}

		// NextMarker is only returned when a delimiter is set; otherwise the
		// last key of the page is the marker.
		next := aws.ToString(out.NextMarker)
		if next == "" && len(files) > 0 {
			next = files[len(files)-1].Key
		}
		// The listing must move forward or it would request the same page forever.
		if next == "" || next == aws.ToString(marker) {
			return nil, newBucketError("list", bucket, ErrUnresolvableMarker)
		}
		marker = aws.String(next)
	}
}

func listPage(ctx context.Context, client objectLister, in *s3.ListObjectsInput, timeout time.Duration) (*s3.ListObjectsOutput, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return client.ListObjects(ctx, in)
}

// normalizeETag strips the outer quotes S3 puts around ETags. Tags that are
// not a quoted string are returned as they are.
func normalizeETag(tag string) string {
	var s string
	if err := json.Unmarshal([]byte(tag), &s); err != nil {
		return tag
	}
	return s
}
