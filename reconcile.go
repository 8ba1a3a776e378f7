package main

type keyDigest struct {
	key, digest string
}

// reconcile returns the local files that have no remote counterpart with the
// same key and digest, in local order.
func reconcile(local []localFile, remote []remoteFile) []localFile {
	seen := make(map[keyDigest]struct{}, len(remote))
	for _, r := range remote {
		seen[keyDigest{r.Key, r.Digest}] = struct{}{}
	}

	uploads := make([]localFile, 0, len(local))
	for _, l := range local {
		if _, ok := seen[keyDigest{l.Key, l.Digest}]; ok {
			continue
		}
		uploads = append(uploads, l)
	}

	return uploads
}
