package web

import (
	"encoding/binary"
	"sync"
)

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a fixed size ring of recently sent frames, so that a
// frame seen recently can be repeated by index.
type cache struct {
	cache []cacheEntry
	idx   int
	sync.RWMutex
}

func newCache(size int) *cache {
	return &cache{
		cache: make([]cacheEntry, size),
	}
}

// add stores data under hash, evicting the oldest entry, and returns
// its index.
func (c *cache) add(hash uint64, data []byte) int {
	c.Lock()
	defer c.Unlock()

	i := c.idx
	c.cache[i] = cacheEntry{hash: hash, data: data}
	c.idx = (c.idx + 1) % len(c.cache)
	return i
}

// index returns the index of hash in the cache, or -1.
func (c *cache) index(hash uint64) int {
	c.RLock()
	defer c.RUnlock()

	for i, e := range c.cache {
		if len(e.data) > 0 && e.hash == hash {
			return i
		}
	}
	return -1
}

// sync encodes every cache entry for a FrameCacheSync message.
func (c *cache) sync() []byte {
	c.RLock()
	defer c.RUnlock()

	data := []byte{FrameCacheSync}
	for i, e := range c.cache {
		if len(e.data) == 0 {
			continue
		}
		data = binary.LittleEndian.AppendUint16(data, uint16(len(e.data)))
		data = binary.LittleEndian.AppendUint16(data, uint16(i))
		data = append(data, e.data...)
	}
	return data
}
