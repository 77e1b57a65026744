package analyzer

import (
	"sort"

	"github.com/mabhi256/jdepcheck/internal/artifact"
	"github.com/mabhi256/jdepcheck/internal/inventory"
)

// Indexer builds the class-name -> owning-artifacts index by walking the
// transitive dependency graphs of all three role sets through the shared
// inventory cache.
type Indexer struct {
	cache *inventory.Cache
}

func NewIndexer(cache *inventory.Cache) (*Indexer, error) {
	if cache == nil {
		return nil, &artifact.ConfigurationError{Reason: "indexer requires a shared inventory cache"}
	}
	return &Indexer{cache: cache}, nil
}

// BuildIndex walks every first-level node of required, allowedToUse and
// allowedToDeclare with an explicit worklist. A node reached via multiple
// paths (diamond) is expanded exactly once: the enqueued set is keyed by
// coordinate, so traversal cost stays bounded by the number of distinct
// nodes. Returns the index plus the ambiguity diagnostics gathered along the
// way.
func (ix *Indexer) BuildIndex(roles artifact.Roles) (*ClassOwnerIndex, []Ambiguity, error) {
	index := NewClassOwnerIndex()
	ambiguous := make(map[string]bool)

	worklist := make([]*artifact.Node, 0)
	enqueued := make(map[artifact.ID]bool)

	enqueue := func(node *artifact.Node) {
		if !enqueued[node.ID] {
			enqueued[node.ID] = true
			worklist = append(worklist, node)
		}
	}

	for _, nodes := range [][]*artifact.Node{roles.Required, roles.AllowedToUse, roles.AllowedToDeclare} {
		for _, node := range nodes {
			enqueue(node)
		}
	}

	for len(worklist) > 0 {
		node := worklist[0]
		worklist = worklist[1:]

		inv, err := ix.cache.GetOrCompute(node.ID, node.Files)
		if err != nil {
			return nil, nil, err
		}

		inv.Classes(func(className string) {
			if index.Add(className, node.ID) {
				ambiguous[className] = true
			}
		})

		for _, child := range node.Children {
			enqueue(child)
		}
	}

	return index, collectAmbiguities(index, ambiguous), nil
}

func collectAmbiguities(index *ClassOwnerIndex, ambiguous map[string]bool) []Ambiguity {
	if len(ambiguous) == 0 {
		return nil
	}

	names := make([]string, 0, len(ambiguous))
	for name := range ambiguous {
		names = append(names, name)
	}
	sort.Strings(names)

	diagnostics := make([]Ambiguity, 0, len(names))
	for _, name := range names {
		diagnostics = append(diagnostics, Ambiguity{
			Class:  name,
			Owners: index.Owners(name).Values(),
		})
	}
	return diagnostics
}
