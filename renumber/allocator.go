package renumber

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrRangeExhausted indicates more distinct matched URIs exist than
// numbers available in the configured range. The run must abort without
// writing output; applying a partial renaming map would leave the graph
// internally inconsistent.
var ErrRangeExhausted = errors.New("renumber: number range exhausted")

// Allocator assigns each distinct matched URI a sequential number from
// the inclusive range [start, end], minting the replacement URI as
// base + number. Re-allocating a URI returns its previous assignment,
// so the mapping is a bijection for the duration of a run.
type Allocator struct {
	base     string
	start    int64
	next     int64
	end      int64
	assigned map[string]string
	order    []string
}

// NewAllocator creates an allocator over [start, end].
func NewAllocator(base string, start, end int64) *Allocator {
	return &Allocator{
		base:     base,
		start:    start,
		next:     start,
		end:      end,
		assigned: map[string]string{},
	}
}

// Allocate returns the replacement URI for uri, minting a new one on
// first encounter. It fails with ErrRangeExhausted once the range is
// used up.
func (a *Allocator) Allocate(uri string) (string, error) {
	if assigned, ok := a.assigned[uri]; ok {
		return assigned, nil
	}
	if a.next > a.end {
		return "", fmt.Errorf("%w: [%d, %d] cannot cover %d distinct URIs",
			ErrRangeExhausted, a.start, a.end, len(a.assigned)+1)
	}
	minted := a.base + strconv.FormatInt(a.next, 10)
	a.next++
	a.assigned[uri] = minted
	a.order = append(a.order, uri)
	return minted, nil
}

// Count returns the number of URIs allocated so far.
func (a *Allocator) Count() int { return len(a.assigned) }

// Mapping returns a copy of the original-to-replacement URI map.
func (a *Allocator) Mapping() map[string]string {
	mapping := make(map[string]string, len(a.assigned))
	for uri, minted := range a.assigned {
		mapping[uri] = minted
	}
	return mapping
}

// Order returns the original URIs in first-encounter order.
func (a *Allocator) Order() []string {
	order := make([]string, len(a.order))
	copy(order, a.order)
	return order
}
