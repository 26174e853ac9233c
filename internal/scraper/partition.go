package scraper

import (
	"errors"
	"slices"
)

var ErrInvalidParts = errors.New("number of parts must be 1 or greater")

// Partition splits items into contiguous groups. Without a parts argument the
// whole slice is returned as a single group. Group i spans
// [i*len/parts, (i+1)*len/parts), so later groups absorb any remainder.
func Partition[T any](items []T, parts ...int) ([][]T, error) {
	if len(parts) == 0 {
		return [][]T{slices.Clone(items)}, nil
	}
	if len(parts) > 1 || parts[0] < 1 {
		return nil, ErrInvalidParts
	}
	n := parts[0]
	length := len(items)
	out := make([][]T, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, slices.Clone(items[i*length/n:(i+1)*length/n]))
	}
	return out, nil
}
