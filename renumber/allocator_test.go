package renumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorSequentialAssignment(t *testing.T) {
	alloc := NewAllocator("http://ex.org/id/", 1, 10)

	first, err := alloc.Allocate("http://ex.org/id/apple")
	require.NoError(t, err)
	assert.Equal(t, "http://ex.org/id/1", first)

	second, err := alloc.Allocate("http://ex.org/id/banana")
	require.NoError(t, err)
	assert.Equal(t, "http://ex.org/id/2", second)
}

func TestAllocatorMemoizes(t *testing.T) {
	alloc := NewAllocator("http://ex.org/id/", 1, 10)

	first, err := alloc.Allocate("http://ex.org/id/apple")
	require.NoError(t, err)
	again, err := alloc.Allocate("http://ex.org/id/apple")
	require.NoError(t, err)

	assert.Equal(t, first, again)
	assert.Equal(t, 1, alloc.Count())
}

func TestAllocatorBijection(t *testing.T) {
	alloc := NewAllocator("http://ex.org/id/", 100, 200)
	uris := []string{"http://ex.org/id/a", "http://ex.org/id/b", "http://ex.org/id/c"}

	seen := map[string]string{}
	for _, uri := range uris {
		minted, err := alloc.Allocate(uri)
		require.NoError(t, err)
		for other, existing := range seen {
			assert.NotEqual(t, existing, minted, "URIs %s and %s share a number", other, uri)
		}
		seen[uri] = minted
	}
	assert.Equal(t, uris, alloc.Order())
}

func TestAllocatorRangeExhausted(t *testing.T) {
	alloc := NewAllocator("http://ex.org/id/", 1, 2)

	_, err := alloc.Allocate("http://ex.org/id/a")
	require.NoError(t, err)
	_, err = alloc.Allocate("http://ex.org/id/b")
	require.NoError(t, err)

	_, err = alloc.Allocate("http://ex.org/id/c")
	require.ErrorIs(t, err, ErrRangeExhausted)

	// Already-assigned URIs still resolve after exhaustion.
	minted, err := alloc.Allocate("http://ex.org/id/a")
	require.NoError(t, err)
	assert.Equal(t, "http://ex.org/id/1", minted)
}

func TestAllocatorInclusiveBounds(t *testing.T) {
	alloc := NewAllocator("http://ex.org/id/", 5, 5)

	minted, err := alloc.Allocate("http://ex.org/id/only")
	require.NoError(t, err)
	assert.Equal(t, "http://ex.org/id/5", minted)

	_, err = alloc.Allocate("http://ex.org/id/extra")
	require.ErrorIs(t, err, ErrRangeExhausted)
}
