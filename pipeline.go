package main

import (
	"context"
	"fmt"
)

// backend bundles the collaborators the pipeline talks to.
type backend struct {
	lister   objectLister
	uploader S3Uploader
	log      Logger
}

// syncResult summarizes a finished run.
type syncResult struct {
	Local, Remote, Pending, Uploaded int
}

// runSync builds the local and remote inventories, reconciles them and uploads
// what differs. Stages run strictly one after the other; the first error ends
// the run and is returned as is.
func runSync(ctx context.Context, groups []fileGroup, cfg Config, b backend) (syncResult, error) {
	var res syncResult

	local, err := buildLocalInventory(groups, b.log)
	if err != nil {
		return res, err
	}
	res.Local = len(local)

	remote, err := listRemoteFiles(ctx, b.lister, cfg.BucketName, cfg.Timeout)
	if err != nil {
		return res, err
	}
	res.Remote = len(remote)

	pending := reconcile(local, remote)
	res.Pending = len(pending)

	for _, f := range local {
		b.log.Verbose(fmt.Sprintf("Local digest %q path %q", f.Digest, f.Path))
	}
	for _, f := range remote {
		b.log.Verbose(fmt.Sprintf("Remote digest %q key %q", f.Digest, f.Key))
	}
	for _, f := range pending {
		b.log.Verbose(fmt.Sprintf("Upload digest %q key %q", f.Digest, f.Key))
	}

	res.Uploaded, err = uploadFiles(ctx, b.uploader, cfg.BucketName, pending,
		uploadOptions{dryRun: cfg.DryRun, timeout: cfg.Timeout}, b.log)
	return res, err
}
