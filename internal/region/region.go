// Package region provides the named address ranges of a flat memory dump.
package region

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

var (
	// ErrRegionBounds is returned for a region that does not fit into the address space.
	ErrRegionBounds = errors.New("region outside of address space")
	// ErrRegionOverlap is returned when two regions of a table share an offset.
	ErrRegionOverlap = errors.New("regions overlap")
	// ErrDuplicateName is returned when two regions of a table share a name.
	ErrDuplicateName = errors.New("duplicate region name")
	// ErrRegionLookupAmbiguous signals a table that resolves an offset to more than one region.
	ErrRegionLookupAmbiguous = errors.New("region lookup ambiguous")
)

// Region is a named, contiguous byte range of the address space.
type Region struct {
	Name   string
	Offset int
	Length int
}

// End returns the first offset after the region.
func (r Region) End() int {
	return r.Offset + r.Length
}

// Contains returns whether the offset is part of the region.
func (r Region) Contains(offset int) bool {
	return offset >= r.Offset && offset < r.End()
}

func (r Region) String() string {
	return fmt.Sprintf("%s [0x%04X-0x%04X]", r.Name, r.Offset, r.End()-1)
}

// Table is an immutable catalog of non overlapping regions, ordered by offset.
type Table struct {
	size    int
	regions []Region
}

// NewTable returns a table for an address space of the given size.
// Every region has to fit into the address space, regions may not overlap
// and names have to be unique.
func NewTable(size int, regions ...Region) (*Table, error) {
	sorted := slices.Clone(regions)
	slices.SortStableFunc(sorted, func(a, b Region) int {
		return a.Offset - b.Offset
	})

	names := set.New[string]()
	for i, r := range sorted {
		if r.Offset < 0 || r.Length <= 0 || r.End() > size {
			return nil, fmt.Errorf("%w: %s with size 0x%X", ErrRegionBounds, r, size)
		}

		key := strings.ToLower(r.Name)
		if names.Contains(key) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, r.Name)
		}
		names.Add(key)

		if i > 0 && sorted[i-1].End() > r.Offset {
			return nil, fmt.Errorf("%w: %s and %s", ErrRegionOverlap, sorted[i-1], r)
		}
	}

	return &Table{
		size:    size,
		regions: sorted,
	}, nil
}

// MustNewTable is like NewTable but panics if the table is invalid.
// It is meant for package level tables that are defined at compile time.
func MustNewTable(size int, regions ...Region) *Table {
	t, err := NewTable(size, regions...)
	if err != nil {
		panic(fmt.Sprintf("invalid region table: %s", err))
	}
	return t
}

// Size returns the size of the address space that the table describes.
func (t *Table) Size() int {
	return t.size
}

// Regions returns a copy of all regions in offset order.
func (t *Table) Regions() []Region {
	return slices.Clone(t.regions)
}

// Lookup returns the region that contains the offset. The boolean is false
// if the offset falls into a gap of the table or outside the address space.
func (t *Table) Lookup(offset int) (Region, bool, error) {
	var (
		found   Region
		matches int
	)

	for _, r := range t.regions {
		if !r.Contains(offset) {
			continue
		}
		matches++
		if matches > 1 {
			return Region{}, false, fmt.Errorf("%w: offset 0x%04X is in %s and %s",
				ErrRegionLookupAmbiguous, offset, found, r)
		}
		found = r
	}

	return found, matches == 1, nil
}

// Find returns the region with the given name, ignoring case.
func (t *Table) Find(name string) (Region, bool) {
	for _, r := range t.regions {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Region{}, false
}
