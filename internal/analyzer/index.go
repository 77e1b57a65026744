package analyzer

import (
	"sort"

	"github.com/mabhi256/jdepcheck/internal/artifact"
)

// ClassOwnerIndex maps a fully-qualified class name to the ordered set of
// artifacts providing a class with that name. An entry with more than one
// owner is ambiguous; every owner is kept.
type ClassOwnerIndex struct {
	owners map[string]*artifact.Set
}

func NewClassOwnerIndex() *ClassOwnerIndex {
	return &ClassOwnerIndex{owners: make(map[string]*artifact.Set)}
}

// Add records id as an owner of className and reports whether the entry is
// now ambiguous (owned by more than one artifact).
func (idx *ClassOwnerIndex) Add(className string, id artifact.ID) bool {
	set, exists := idx.owners[className]
	if !exists {
		set = artifact.NewSet()
		idx.owners[className] = set
	}
	set.Add(id)
	return set.Len() > 1
}

// Owners returns the owner set for className, or nil when the class is not
// provided by any indexed artifact.
func (idx *ClassOwnerIndex) Owners(className string) *artifact.Set {
	return idx.owners[className]
}

func (idx *ClassOwnerIndex) Len() int {
	return len(idx.owners)
}

// ClassNames returns every indexed class name sorted, for audit rendering.
func (idx *ClassOwnerIndex) ClassNames() []string {
	names := make([]string, 0, len(idx.owners))
	for name := range idx.owners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClassCountByOwner tallies how many indexed classes each artifact provides.
func (idx *ClassOwnerIndex) ClassCountByOwner() map[artifact.ID]int {
	counts := make(map[artifact.ID]int)
	for _, set := range idx.owners {
		for _, id := range set.Values() {
			counts[id]++
		}
	}
	return counts
}

// Ambiguity is a non-fatal diagnostic: one class name resolving to more than
// one owning artifact. Classification proceeds treating any owner as
// satisfying "needed".
type Ambiguity struct {
	Class  string
	Owners []artifact.ID
}
