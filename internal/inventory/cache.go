package inventory

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mabhi256/jdepcheck/internal/artifact"
)

// DefaultCacheSize bounds the number of distinct coordinates kept resident.
// A multi-module build rarely resolves more than a few thousand artifacts.
const DefaultCacheSize = 4096

// ClassLister lists the classes one artifact file provides.
// classfile.Extractor is the production implementation.
type ClassLister interface {
	ProvidedClasses(path string) (map[string]struct{}, error)
}

// Cache memoizes per-coordinate class inventories across repeated analyses in
// one host process. Keys are artifact coordinates, never file paths: two
// resolutions of the same coordinate hit the same entry. Entries are
// immutable once committed; under concurrent misses on the same key the first
// committed inventory wins and later computations are discarded.
type Cache struct {
	entries *lru.Cache[artifact.ID, *Inventory]
	lister  ClassLister
}

func NewCache(size int, lister ClassLister) (*Cache, error) {
	if lister == nil {
		return nil, &artifact.ConfigurationError{Reason: "inventory cache requires a class lister"}
	}
	if size <= 0 {
		size = DefaultCacheSize
	}

	entries, err := lru.New[artifact.ID, *Inventory](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory cache: %w", err)
	}

	return &Cache{entries: entries, lister: lister}, nil
}

// GetOrCompute returns the inventory for the given coordinate, extracting the
// classes of each provided file on a miss. The union across files forms one
// inventory: a module may publish more than one artifact file under the same
// coordinate.
func (c *Cache) GetOrCompute(id artifact.ID, files []string) (*Inventory, error) {
	if cached, ok := c.entries.Get(id); ok {
		return cached, nil
	}

	classes := make(map[string]struct{})
	for _, file := range files {
		provided, err := c.lister.ProvidedClasses(file)
		if err != nil {
			return nil, fmt.Errorf("failed to inventory %s: %w", id, err)
		}
		for name := range provided {
			classes[name] = struct{}{}
		}
	}

	computed := NewInventory(id, classes)

	// First committed value wins: if another caller beat us to the commit,
	// drop our computation and return theirs.
	if previous, existed, _ := c.entries.PeekOrAdd(id, computed); existed {
		return previous, nil
	}
	return computed, nil
}

// Seed installs an inventory for a coordinate unless one is already
// committed, and returns the inventory that ended up cached.
func (c *Cache) Seed(id artifact.ID, classes map[string]struct{}) *Inventory {
	seeded := NewInventory(id, classes)
	if previous, existed, _ := c.entries.PeekOrAdd(id, seeded); existed {
		return previous
	}
	return seeded
}

func (c *Cache) Len() int {
	return c.entries.Len()
}
