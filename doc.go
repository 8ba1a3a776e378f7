/*
Go S3 Sync is a small tool that pushes a set of local files to an S3 bucket,
uploading only what is new or changed.

It is meant to run as a build pipeline step. On every run it computes the md5
sum of each selected local file, lists the bucket and compares the sums with the
objects' ETags. Files whose key is missing from the bucket, or whose ETag
differs, are uploaded one at a time; everything else is left alone.

The focus of the tool is one way uploads. Objects that were removed locally are
not deleted from the bucket, and the first failure stops the run (files uploaded
before it stay uploaded).

Objects that were uploaded in multiple parts (or encrypted with SSE-KMS) carry
an ETag that is not the md5 of their content, so they are always considered
changed. Uploads made by this tool are single part PutObject calls, which makes
the next run comparable again.

This started as a fork of github.com/petems/go-s3-uploader.
*/
package main
