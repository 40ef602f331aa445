package runtime

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DedupSet is a hash-keyed membership set used by the `-u` global-dedup CLI
// flag. Named `set`s and global sets do not use it; they deduplicate with
// their own string-keyed maps. Large dictionaries make a map keyed by the full string memory-heavy;
// DedupSet instead keys on xxhash.Sum64String(entry), the same
// non-cryptographic-hash-as-map-key technique used by
// kris-hansen/comanda and standardbeagle/lci for content-addressed
// caches over large corpora.
//
// A 64-bit hash collision would silently treat two distinct entries as
// duplicates; this is an accepted tradeoff of the technique (as in the
// grounding repos) in exchange for not holding every raw string in memory.
type DedupSet struct {
	mu   sync.Mutex
	seen map[uint64]struct{}
}

// NewDedupSet returns an empty DedupSet.
func NewDedupSet() *DedupSet {
	return &DedupSet{seen: make(map[uint64]struct{})}
}

// SeenOrAdd reports whether s was already present, adding it if not. Safe
// for concurrent use (spec §5 allows parallel per-entry evaluation).
func (d *DedupSet) SeenOrAdd(s string) bool {
	h := xxhash.Sum64String(s)
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[h]; ok {
		return true
	}
	d.seen[h] = struct{}{}
	return false
}

// Len returns the number of distinct hashes recorded so far.
func (d *DedupSet) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
