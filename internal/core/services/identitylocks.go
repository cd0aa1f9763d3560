package services

import (
	"hash/maphash"
	"sync"
)

const numLockShards = 64

// identityLocks serialises work on a document identity. Identities hash onto
// a fixed set of mutexes, so unrelated identities may share a shard.
type identityLocks struct {
	shards [numLockShards]sync.Mutex
	seed   maphash.Seed
}

func newIdentityLocks() *identityLocks {
	return &identityLocks{seed: maphash.MakeSeed()}
}

// lock acquires the shard for id and returns its release func.
func (l *identityLocks) lock(id string) func() {
	mu := &l.shards[maphash.String(l.seed, id)%numLockShards]
	mu.Lock()
	return mu.Unlock
}
