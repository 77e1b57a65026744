package inventory

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabhi256/jdepcheck/internal/artifact"
)

// countingLister serves class sets from memory and counts invocations, so
// tests can prove when extraction was skipped.
type countingLister struct {
	classes map[string]map[string]struct{}
	calls   atomic.Int64
}

func newCountingLister() *countingLister {
	return &countingLister{classes: make(map[string]map[string]struct{})}
}

func (l *countingLister) add(path string, names ...string) {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	l.classes[path] = set
}

func (l *countingLister) ProvidedClasses(path string) (map[string]struct{}, error) {
	l.calls.Add(1)
	set, ok := l.classes[path]
	if !ok {
		return nil, fmt.Errorf("no classes registered for %s", path)
	}
	return set, nil
}

func libID(name string) artifact.ID {
	return artifact.ID{Group: "com.lib", Name: name, Version: "1.0.0", Extension: "jar"}
}

func TestGetOrCompute_MissThenHit(t *testing.T) {
	lister := newCountingLister()
	lister.add("a.jar", "com.lib.A", "com.lib.A$Inner")

	cache, err := NewCache(16, lister)
	require.NoError(t, err)

	first, err := cache.GetOrCompute(libID("a"), []string{"a.jar"})
	require.NoError(t, err)
	assert.True(t, first.Contains("com.lib.A"))
	assert.True(t, first.Contains("com.lib.A$Inner"))
	assert.EqualValues(t, 1, lister.calls.Load())

	second, err := cache.GetOrCompute(libID("a"), []string{"a.jar"})
	require.NoError(t, err)
	assert.Same(t, first, second, "hits return the stored inventory unchanged")
	assert.EqualValues(t, 1, lister.calls.Load(), "hits never re-extract")
}

func TestGetOrCompute_UnionAcrossFiles(t *testing.T) {
	lister := newCountingLister()
	lister.add("a.jar", "com.lib.A")
	lister.add("a-native.jar", "com.lib.Native")

	cache, err := NewCache(16, lister)
	require.NoError(t, err)

	inv, err := cache.GetOrCompute(libID("a"), []string{"a.jar", "a-native.jar"})
	require.NoError(t, err)

	assert.True(t, inv.Contains("com.lib.A"))
	assert.True(t, inv.Contains("com.lib.Native"))
	assert.Equal(t, 2, inv.Len())
}

func TestSeed_WinsOverLaterCompute(t *testing.T) {
	lister := newCountingLister()
	lister.add("a.jar", "com.lib.FromExtractor")

	cache, err := NewCache(16, lister)
	require.NoError(t, err)

	seeded := cache.Seed(libID("a"), map[string]struct{}{"com.lib.Seeded": {}})

	inv, err := cache.GetOrCompute(libID("a"), []string{"a.jar"})
	require.NoError(t, err)

	assert.Same(t, seeded, inv, "seeded value is returned verbatim")
	assert.True(t, inv.Contains("com.lib.Seeded"))
	assert.EqualValues(t, 0, lister.calls.Load(), "extractor is never invoked after seeding")
}

func TestGetOrCompute_FirstCommitWinsUnderConcurrency(t *testing.T) {
	lister := newCountingLister()
	lister.add("a.jar", "com.lib.A")

	cache, err := NewCache(16, lister)
	require.NoError(t, err)

	const workers = 16
	results := make([]*Inventory, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inv, err := cache.GetOrCompute(libID("a"), []string{"a.jar"})
			assert.NoError(t, err)
			results[i] = inv
		}(i)
	}
	wg.Wait()

	// Losing computations are discarded: everyone observes one committed value.
	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestGetOrCompute_ExtractionFailure(t *testing.T) {
	cache, err := NewCache(16, newCountingLister())
	require.NoError(t, err)

	_, err = cache.GetOrCompute(libID("a"), []string{"unregistered.jar"})
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len(), "failed computations are not committed")
}

func TestNewCache_RequiresLister(t *testing.T) {
	_, err := NewCache(16, nil)
	require.Error(t, err)

	var confErr *artifact.ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestCacheKeyedByCoordinateNotPath(t *testing.T) {
	lister := newCountingLister()
	lister.add("first-resolution.jar", "com.lib.A")
	lister.add("second-resolution.jar", "com.lib.A")

	cache, err := NewCache(16, lister)
	require.NoError(t, err)

	first, err := cache.GetOrCompute(libID("a"), []string{"first-resolution.jar"})
	require.NoError(t, err)

	// Same coordinate resolved to a different temp file still hits.
	second, err := cache.GetOrCompute(libID("a"), []string{"second-resolution.jar"})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, lister.calls.Load())
}
