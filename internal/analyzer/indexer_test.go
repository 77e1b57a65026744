package analyzer

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabhi256/jdepcheck/internal/artifact"
	"github.com/mabhi256/jdepcheck/internal/inventory"
)

type fakeLister struct {
	classes map[string][]string
	calls   map[string]*atomic.Int64
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		classes: make(map[string][]string),
		calls:   make(map[string]*atomic.Int64),
	}
}

func (l *fakeLister) add(path string, names ...string) {
	l.classes[path] = names
	l.calls[path] = &atomic.Int64{}
}

func (l *fakeLister) ProvidedClasses(path string) (map[string]struct{}, error) {
	counter, ok := l.calls[path]
	if !ok {
		return nil, fmt.Errorf("no classes registered for %s", path)
	}
	counter.Add(1)

	set := make(map[string]struct{})
	for _, name := range l.classes[path] {
		set[name] = struct{}{}
	}
	return set, nil
}

func newTestIndexer(t *testing.T, lister inventory.ClassLister) *Indexer {
	t.Helper()
	cache, err := inventory.NewCache(64, lister)
	require.NoError(t, err)
	indexer, err := NewIndexer(cache)
	require.NoError(t, err)
	return indexer
}

func node(name string, file string, children ...*artifact.Node) *artifact.Node {
	return &artifact.Node{ID: id(name), Files: []string{file}, Children: children}
}

func TestBuildIndex_DiamondExpandedOnce(t *testing.T) {
	lister := newFakeLister()
	lister.add("x.jar", "com.lib.X")
	lister.add("y.jar", "com.lib.Y")
	lister.add("shared.jar", "com.lib.Shared")

	// libX and libY both depend on the same shared node.
	shared := node("shared", "shared.jar")
	roles := artifact.Roles{
		Required: []*artifact.Node{
			node("x", "x.jar", shared),
			node("y", "y.jar", shared),
		},
	}

	indexer := newTestIndexer(t, lister)
	index, ambiguities, err := indexer.BuildIndex(roles)
	require.NoError(t, err)

	assert.EqualValues(t, 1, lister.calls["shared.jar"].Load(),
		"diamond node is expanded exactly once")
	assert.Empty(t, ambiguities)

	owners := index.Owners("com.lib.Shared")
	require.NotNil(t, owners)
	assert.Equal(t, []artifact.ID{id("shared")}, owners.Values(),
		"shared classes attributed once, no duplicate ownership")
}

func TestBuildIndex_DiamondByCoordinate(t *testing.T) {
	lister := newFakeLister()
	lister.add("x.jar", "com.lib.X")
	lister.add("y.jar", "com.lib.Y")
	lister.add("shared.jar", "com.lib.Shared")

	// Same coordinate appears as two distinct node objects; identity is by
	// coordinate, so it is still expanded once.
	roles := artifact.Roles{
		Required: []*artifact.Node{
			node("x", "x.jar", node("shared", "shared.jar")),
			node("y", "y.jar", node("shared", "shared.jar")),
		},
	}

	indexer := newTestIndexer(t, lister)
	_, _, err := indexer.BuildIndex(roles)
	require.NoError(t, err)

	assert.EqualValues(t, 1, lister.calls["shared.jar"].Load())
}

func TestBuildIndex_WalksAllThreeRoleSets(t *testing.T) {
	lister := newFakeLister()
	lister.add("a.jar", "com.lib.A")
	lister.add("b.jar", "com.lib.B")
	lister.add("c.jar", "com.lib.C")
	lister.add("c-child.jar", "com.lib.CChild")

	roles := artifact.Roles{
		Required:         []*artifact.Node{node("a", "a.jar")},
		AllowedToUse:     []*artifact.Node{node("b", "b.jar")},
		AllowedToDeclare: []*artifact.Node{node("c", "c.jar", node("cchild", "c-child.jar"))},
	}

	indexer := newTestIndexer(t, lister)
	index, _, err := indexer.BuildIndex(roles)
	require.NoError(t, err)

	for _, class := range []string{"com.lib.A", "com.lib.B", "com.lib.C", "com.lib.CChild"} {
		assert.NotNil(t, index.Owners(class), "missing index entry for %s", class)
	}
}

func TestBuildIndex_AmbiguityDiagnostics(t *testing.T) {
	lister := newFakeLister()
	lister.add("p.jar", "x.y.Foo", "x.y.OnlyP")
	lister.add("q.jar", "x.y.Foo")

	roles := artifact.Roles{
		Required: []*artifact.Node{node("p", "p.jar"), node("q", "q.jar")},
	}

	indexer := newTestIndexer(t, lister)
	index, ambiguities, err := indexer.BuildIndex(roles)
	require.NoError(t, err)

	require.Len(t, ambiguities, 1)
	assert.Equal(t, "x.y.Foo", ambiguities[0].Class)
	assert.ElementsMatch(t, []artifact.ID{id("p"), id("q")}, ambiguities[0].Owners)

	owners := index.Owners("x.y.Foo")
	assert.Equal(t, 2, owners.Len(), "no owner is dropped")
	assert.Equal(t, 1, index.Owners("x.y.OnlyP").Len())
}

func TestBuildIndex_ExtractionErrorAborts(t *testing.T) {
	lister := newFakeLister()
	lister.add("a.jar", "com.lib.A")

	roles := artifact.Roles{
		Required: []*artifact.Node{node("a", "a.jar"), node("broken", "broken.jar")},
	}

	indexer := newTestIndexer(t, lister)
	_, _, err := indexer.BuildIndex(roles)
	require.Error(t, err, "an unreadable artifact aborts indexing, no partial index")
}

func TestNewIndexer_RequiresCache(t *testing.T) {
	_, err := NewIndexer(nil)
	require.Error(t, err)

	var confErr *artifact.ConfigurationError
	require.ErrorAs(t, err, &confErr)
}
