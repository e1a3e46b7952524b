// Package timeline maps positions on the audio clock to recorded pages.
package timeline

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnordered is returned when page start times decrease.
var ErrUnordered = errors.New("page start times are not ordered")

// Index holds the start time of every recorded page in playback order.
type Index struct {
	starts []int64
}

// New builds an index from page start times in milliseconds. The times
// must be non-decreasing.
func New(starts []int64) (*Index, error) {
	for i := 1; i < len(starts); i++ {
		if starts[i] < starts[i-1] {
			return nil, fmt.Errorf("page %d starts at %d before page %d at %d: %w",
				i, starts[i], i-1, starts[i-1], ErrUnordered)
		}
	}
	return &Index{starts: append([]int64(nil), starts...)}, nil
}

func (ix *Index) Len() int { return len(ix.starts) }

// Start returns the start time of page position i.
func (ix *Index) Start(i int) int64 {
	if i < 0 || i >= len(ix.starts) {
		return 0
	}
	return ix.starts[i]
}

// At returns the position of the page shown at time t: the last page whose
// start is not after t. Times before the first page map to position 0.
// When several pages share a start time the last of them wins.
func (ix *Index) At(t int64) int {
	i := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > t })
	if i == 0 {
		return 0
	}
	return i - 1
}

// End returns the time page position i stops being shown, or duration for
// the last page.
func (ix *Index) End(i int, duration int64) int64 {
	if i+1 < len(ix.starts) {
		return ix.starts[i+1]
	}
	return duration
}
