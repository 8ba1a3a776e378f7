package main

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the sync pipeline.
var (
	// ErrMissingBucket is returned when no bucket name could be resolved.
	ErrMissingBucket = errors.New("bucket name is not set")

	// ErrUnresolvableMarker is returned when a listing page is truncated but
	// neither carries a NextMarker nor any entry to continue from.
	ErrUnresolvableMarker = errors.New("truncated listing without a continuation marker")
)

// SyncError wraps a failure of one pipeline step with the bucket and key it
// was working on. It unwraps to the underlying error.
type SyncError struct {
	// Op is the step that failed: "walk", "digest", "list", "read" or "upload".
	Op     string
	Bucket string
	Key    string
	Path   string // local file or folder, set before an object key is known
	Err    error
}

func (e *SyncError) Error() string {
	switch {
	case e.Bucket != "" && e.Key != "":
		return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	case e.Bucket != "":
		return fmt.Sprintf("%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	case e.Key != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func newBucketError(op, bucket string, err error) *SyncError {
	return &SyncError{Op: op, Bucket: bucket, Err: err}
}

func newObjectError(op, bucket, key string, err error) *SyncError {
	return &SyncError{Op: op, Bucket: bucket, Key: key, Err: err}
}

func newPathError(op, path string, err error) *SyncError {
	return &SyncError{Op: op, Path: path, Err: err}
}
