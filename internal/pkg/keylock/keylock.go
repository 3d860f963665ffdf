// Package keylock provides per-key mutual exclusion for serializing work
// scoped to an identifier, such as status transitions on a single order.
// Locks for different keys never contend with each other beyond the shard
// lookup, so concurrent operations on unrelated orders proceed independently.
package keylock

import (
	"hash/fnv"
	"sync"
)

const defaultShardCount = 64

// KeyedMutex is a sharded set of mutexes addressed by string key.
// A caller holding the lock for key K has exclusive access to whatever
// resource K designates for the duration of the critical section.
//
// Keys are mapped onto a fixed number of shards, so two distinct keys may
// occasionally share a mutex. That only ever over-serializes; it never
// under-serializes.
type KeyedMutex struct {
	shards []sync.Mutex
}

// NewKeyedMutex creates a KeyedMutex with the default shard count.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{shards: make([]sync.Mutex, defaultShardCount)}
}

// Lock acquires the mutex guarding key, blocking until it is available.
// It returns the unlock function for the acquired mutex.
//
// Example:
//
//	unlock := locks.Lock(orderID.String())
//	defer unlock()
func (m *KeyedMutex) Lock(key string) func() {
	shard := &m.shards[m.shardIndex(key)]
	shard.Lock()
	return shard.Unlock
}

func (m *KeyedMutex) shardIndex(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32() % uint32(len(m.shards))
}
