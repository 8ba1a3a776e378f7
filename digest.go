package main

import (
	"crypto/md5" // #nosec G501 - md5 is what S3 reports as the ETag of single part objects
	"encoding/hex"
	"io"
	"os"
)

// digestBytes returns the lowercase hex md5 of data.
func digestBytes(data []byte) string {
	sum := md5.Sum(data) // #nosec G401
	return hex.EncodeToString(sum[:])
}

// digestFile streams the file at path through md5 and returns the lowercase hex sum.
func digestFile(path string) (sum string, err error) {
	f, err := os.Open(path) // #nosec G304 - path comes from the file selection
	if err != nil {
		return "", newPathError("digest", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = newPathError("digest", path, closeErr)
		}
	}()

	h := md5.New() // #nosec G401
	if _, err = io.Copy(h, f); err != nil {
		return "", newPathError("digest", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
