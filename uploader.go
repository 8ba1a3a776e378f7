package main

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const defaultContentType = "application/octet-stream"

// uploadFiles puts files to bucket one at a time, in order. The first failure
// stops the loop; files uploaded before it are left in place.
func uploadFiles(ctx context.Context, u S3Uploader, bucket string, files []localFile, opts uploadOptions, log Logger) (uploaded int, err error) {
	log.Info(fmt.Sprintf("Upload to bucket %q", bucket))

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return uploaded, err
		}

		if opts.dryRun {
			log.Info(fmt.Sprintf("Pretending to upload %q to %q.", f.Path, f.Key))
			continue
		}

		log.Info(fmt.Sprintf("Upload %q to %q.", f.Path, f.Key))
		if err := uploadFile(ctx, u, bucket, f, opts.timeout); err != nil {
			return uploaded, err
		}
		uploaded++
	}

	return uploaded, nil
}

type uploadOptions struct {
	dryRun  bool
	timeout time.Duration
}

func uploadFile(ctx context.Context, u S3Uploader, bucket string, f localFile, timeout time.Duration) error {
	data, err := os.ReadFile(f.Path) // #nosec G304 - path comes from the file selection
	if err != nil {
		return newObjectError("read", bucket, f.Key, err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	contentType := contentTypeFor(f.Path)
	_, err = u.Upload(ctx, &UploadInput{
		Bucket:      bucket,
		Key:         f.Key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return newObjectError("upload", bucket, f.Key, err)
	}

	return nil
}

// contentTypeFor looks the content type up by extension and falls back to
// sniffing the file's content.
func contentTypeFor(path string) string {
	if mt := betterMime(path); mt != "" {
		return mt
	}
	if mt, err := mimetype.DetectFile(path); err == nil {
		return mt.String()
	}
	return defaultContentType
}

// betterMime wraps mime.TypeByExtension and tries to handle a few edge cases.
func betterMime(fname string) string {
	ext := strings.ToLower(filepath.Ext(fname))
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	if ext == ".ttf" {
		return "binary/octet-stream"
	}
	return ""
}
