// File: archive.go
// Role: Thread-safe memo of closability verdicts keyed by chain synonyms.

package rings

import (
	"sync"
)

// Entry is what the archive remembers about one chain.
type Entry struct {
	Closable bool
	// Best is the highest-ranked closable conformation, if any.
	Best    Closure
	Quality float64
	// Conformers counts the conformations evaluated.
	Conformers int
}

// Archive memoizes entries under every synonym of a path's chain ID, so a
// chain reached from the other end or with rotated numbering is a hit.
type Archive struct {
	mu      sync.RWMutex
	byID    map[string]*Entry
	entries int
	hits    int
	misses  int
}

// NewArchive returns an empty archive.
func NewArchive() *Archive {
	return &Archive{byID: make(map[string]*Entry)}
}

// Lookup returns the entry stored for any synonym of p.
func (a *Archive) Lookup(p *Path) (Entry, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, id := range p.synonyms {
		if e, ok := a.byID[id]; ok {
			a.hits++
			return *e, true
		}
	}
	a.misses++
	return Entry{}, false
}

// Store records e under every synonym of p, replacing earlier entries.
func (a *Archive) Store(p *Path, e Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	stored := e
	fresh := true
	for _, id := range p.synonyms {
		if _, ok := a.byID[id]; ok {
			fresh = false
		}
		a.byID[id] = &stored
	}
	if fresh && len(p.synonyms) > 0 {
		a.entries++
	}
}

// Len returns the number of distinct chains stored.
func (a *Archive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.entries
}

// Stats returns the lookup hit and miss counts.
func (a *Archive) Stats() (hits, misses int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.hits, a.misses
}
