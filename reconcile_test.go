package main

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name   string
		local  []localFile
		remote []remoteFile
		want   []localFile
	}{
		{
			name:   "new file",
			local:  []localFile{{Key: "a.txt", Digest: "d1"}, {Key: "b.txt", Digest: "d2"}},
			remote: []remoteFile{{Key: "a.txt", Digest: "d1"}},
			want:   []localFile{{Key: "b.txt", Digest: "d2"}},
		},
		{
			name:   "stale content under same key",
			local:  []localFile{{Key: "a.txt", Digest: "d1"}},
			remote: []remoteFile{{Key: "a.txt", Digest: "d9"}},
			want:   []localFile{{Key: "a.txt", Digest: "d1"}},
		},
		{
			name:   "same digest under another key",
			local:  []localFile{{Key: "a.txt", Digest: "d1"}},
			remote: []remoteFile{{Key: "b.txt", Digest: "d1"}},
			want:   []localFile{{Key: "a.txt", Digest: "d1"}},
		},
		{
			name:   "everything in sync",
			local:  []localFile{{Key: "a.txt", Digest: "d1"}},
			remote: []remoteFile{{Key: "a.txt", Digest: "d1"}, {Key: "z.txt", Digest: "d3"}},
			want:   []localFile{},
		},
		{
			name:   "multipart etag never matches",
			local:  []localFile{{Key: "big.bin", Digest: "9b2cf535f27731c974343645a3985328"}},
			remote: []remoteFile{{Key: "big.bin", Digest: "9b2cf535f27731c974343645a3985328-3"}},
			want:   []localFile{{Key: "big.bin", Digest: "9b2cf535f27731c974343645a3985328"}},
		},
		{
			name:  "empty bucket keeps local order",
			local: []localFile{{Key: "c", Digest: "3"}, {Key: "a", Digest: "1"}, {Key: "b", Digest: "2"}},
			want:  []localFile{{Key: "c", Digest: "3"}, {Key: "a", Digest: "1"}, {Key: "b", Digest: "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconcile(tt.local, tt.remote))
		})
	}
}

// reconcileNaive is the definition: keep f unless some r has the same key and digest.
func reconcileNaive(local []localFile, remote []remoteFile) []localFile {
	out := []localFile{}
	for _, l := range local {
		found := false
		for _, r := range remote {
			if r.Key == l.Key && r.Digest == l.Digest {
				found = true
				break
			}
		}
		if !found {
			out = append(out, l)
		}
	}
	return out
}

func TestReconcile_MatchesDefinition(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	pick := func(n int) string { return fmt.Sprint(rnd.Intn(n)) }

	for i := 0; i < 200; i++ {
		local := make([]localFile, rnd.Intn(20))
		for j := range local {
			local[j] = localFile{Key: "k" + pick(8), Digest: "d" + pick(3)}
		}
		remote := make([]remoteFile, rnd.Intn(20))
		for j := range remote {
			remote[j] = remoteFile{Key: "k" + pick(8), Digest: "d" + pick(3)}
		}

		assert.Equal(t, reconcileNaive(local, remote), reconcile(local, remote), "local=%v remote=%v", local, remote)
	}
}
