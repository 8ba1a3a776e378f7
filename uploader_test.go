package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localFiles(t *testing.T, dir string, keys ...string) []localFile {
	t.Helper()
	files, err := buildLocalInventory([]fileGroup{{Cwd: dir, Src: keys}}, &recordingLogger{})
	require.NoError(t, err)
	return files
}

func TestUploadFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{"index.html": "<html></html>", "data.json": `{"a":1}`})
	files := localFiles(t, dir, "index.html", "data.json")
	mock := NewMockS3Uploader()
	log := &recordingLogger{}

	n, err := uploadFiles(context.Background(), mock, "bucket", files, uploadOptions{}, log)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"index.html", "data.json"}, mock.Keys())

	html := mock.GetUploadByKey("index.html")
	require.NotNil(t, html)
	assert.Equal(t, "bucket", html.Input.Bucket)
	assert.Equal(t, "<html></html>", string(html.Content))
	assert.Equal(t, "text/html; charset=utf-8", aws.ToString(html.Input.ContentType))
	assert.Equal(t, "application/json", aws.ToString(mock.GetUploadByKey("data.json").Input.ContentType))

	assert.Equal(t, []string{
		`Upload to bucket "bucket"`,
		`Upload "` + filepath.Join(dir, "index.html") + `" to "index.html".`,
		`Upload "` + filepath.Join(dir, "data.json") + `" to "data.json".`,
	}, log.messages("info"))
}

func TestUploadFiles_StopsAtFirstFailure(t *testing.T) {
	dir := writeTree(t, map[string]string{"1.txt": "one", "2.txt": "two", "3.txt": "three"})
	files := localFiles(t, dir, "1.txt", "2.txt", "3.txt")
	boom := errors.New("AccessDenied: Access Denied")
	mock := NewMockS3Uploader()
	mock.ErrorFunc = ErrorOnKey("2.txt", boom)
	log := &recordingLogger{}

	n, err := uploadFiles(context.Background(), mock, "bucket", files, uploadOptions{}, log)

	assert.ErrorIs(t, err, boom)
	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "upload", syncErr.Op)
	assert.Equal(t, "2.txt", syncErr.Key)

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"1.txt", "2.txt"}, mock.Keys(), "3.txt is never attempted")
	assert.Nil(t, mock.Uploads[0].Error)

	infos := log.messages("info")
	require.Len(t, infos, 3)
	assert.Contains(t, infos[1], `to "1.txt".`)
	assert.Contains(t, infos[2], `to "2.txt".`)
}

func TestUploadFiles_ReadFailure(t *testing.T) {
	files := []localFile{{Key: "gone.txt", Path: filepath.Join(t.TempDir(), "gone.txt")}}
	mock := NewMockS3Uploader()

	_, err := uploadFiles(context.Background(), mock, "bucket", files, uploadOptions{}, &recordingLogger{})

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "read", syncErr.Op)
	assert.Empty(t, mock.Uploads)
}

func TestUploadFiles_DryRun(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "a"})
	mock := NewMockS3Uploader()
	log := &recordingLogger{}

	n, err := uploadFiles(context.Background(), mock, "bucket", localFiles(t, dir, "a.txt"), uploadOptions{dryRun: true}, log)
	require.NoError(t, err)

	assert.Zero(t, n)
	assert.Empty(t, mock.Uploads)
	assert.True(t, strings.HasPrefix(log.messages("info")[1], "Pretending to upload"))
}

func TestUploadFiles_Cancelled(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "a"})
	mock := NewMockS3Uploader()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uploadFiles(ctx, mock, "bucket", localFiles(t, dir, "a.txt"), uploadOptions{}, &recordingLogger{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, mock.Uploads)
}

func TestContentTypeFor(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"page.HTML":  "<html></html>",
		"noext":      "%PDF-1.4\n%âãÏÓ\n",
		"blob.zzzzz": "\x00\x01\x02\x03",
	})

	assert.Equal(t, "text/html; charset=utf-8", contentTypeFor(filepath.Join(dir, "page.HTML")))
	assert.Equal(t, "application/pdf", contentTypeFor(filepath.Join(dir, "noext")), "sniffed from content")
	assert.Equal(t, "application/octet-stream", contentTypeFor(filepath.Join(dir, "blob.zzzzz")))
	assert.Equal(t, "application/octet-stream", contentTypeFor(filepath.Join(dir, "missing.zzzzz")))
}

func TestBetterMime(t *testing.T) {
	assertions := map[string]string{
		".html": "text/html; charset=utf-8",
		".jpg":  "image/jpeg",
		".JPG":  "image/jpeg",
		".css":  "text/css; charset=utf-8",
	}

	for ext, mime := range assertions {
		assert.Equal(t, mime, betterMime("file"+ext))
	}
}
