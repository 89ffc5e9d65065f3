// Package cache implements the lazily-computed digest cache used by the
// PredicateExists access operation: the SHA-256 digest of each solution
// data entry's decision variables is computed at most once per check, no
// matter how many times the predicate being evaluated queries it.
package cache

import (
	"crypto/sha256"
	"sync"

	"github.com/vybium/predicate-vm/internal/predicatevm/word"
)

// Word is the cache's element type.
type Word = word.Word

// DigestSource describes how to compute the digest for a single solution
// data entry, so the cache package does not need to import the solution
// types directly.
type DigestSource interface {
	// Len returns the number of solution data entries.
	Len() int
	// EncodeEntry appends the canonical byte encoding of entry i's
	// decision variables (and anything else the digest must cover) to dst
	// and returns the result.
	EncodeEntry(i int, dst []byte) []byte
}

// Cache memoizes the digest of every solution data entry, computing each
// digest at most once.
type Cache struct {
	source  DigestSource
	once    []sync.Once
	digests [][32]byte
}

// New returns a cache over source, with no digests yet computed.
func New(source DigestSource) *Cache {
	return &Cache{
		source:  source,
		once:    make([]sync.Once, source.Len()),
		digests: make([][32]byte, source.Len()),
	}
}

// Len returns the number of solution data entries the cache covers.
func (c *Cache) Len() int { return len(c.once) }

// Digest returns the memoized SHA-256 digest of solution data entry i,
// computing it on first access.
func (c *Cache) Digest(i int) ([32]byte, error) {
	if i < 0 || i >= len(c.once) {
		return [32]byte{}, ErrIndexOutOfBounds()
	}
	c.once[i].Do(func() {
		buf := c.source.EncodeEntry(i, nil)
		c.digests[i] = sha256.Sum256(buf)
	})
	return c.digests[i], nil
}

// DigestWords returns entry i's digest packed as 4 big-endian Words, the
// layout in which the PredicateExists operation pops an address.
func (c *Cache) DigestWords(i int) ([4]Word, error) {
	d, err := c.Digest(i)
	if err != nil {
		return [4]Word{}, err
	}
	return word.Words4FromAddress(word.ContentAddress(d)), nil
}
