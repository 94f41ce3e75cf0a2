// Package compare finds the differences between two memory dumps.
package compare

import (
	"errors"
	"fmt"

	"github.com/retroenv/gbmemdump/internal/memory"
	"github.com/retroenv/gbmemdump/internal/region"
	"github.com/retroenv/retrogolib/log"
)

// number of individual mismatches that get logged
const maxLoggedDiffs = 10

// ErrLengthMismatch is returned when the dumps differ in size.
var ErrLengthMismatch = errors.New("mismatched lengths")

// RegionDiff contains the number of differing bytes of a region.
type RegionDiff struct {
	Name        string
	Diffs       int
	FirstOffset int
}

// Result of a dump comparison.
type Result struct {
	Total   int
	Regions []RegionDiff // regions with differences in table order, unmapped last
}

// Equal returns whether the dumps are identical.
func (r Result) Equal() bool {
	return r.Total == 0
}

// Images compares both images byte by byte and attributes every difference
// to the region of the table that contains it.
func Images(logger *log.Logger, table *region.Table, expected, got *memory.Image) (Result, error) {
	if expected.Len() != got.Len() {
		return Result{}, fmt.Errorf("%w, %d != %d", ErrLengthMismatch, expected.Len(), got.Len())
	}

	input := expected.Bytes()
	output := got.Bytes()

	regions := table.Regions()
	diffs := make(map[string]*RegionDiff, len(regions)+1)
	var result Result

	for i := range input {
		if input[i] == output[i] {
			continue
		}

		result.Total++
		if result.Total <= maxLoggedDiffs {
			logger.Debug("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}

		name := region.Unmapped
		r, ok, err := table.Lookup(i)
		if err != nil {
			return Result{}, fmt.Errorf("looking up offset 0x%04X: %w", i, err)
		}
		if ok {
			name = r.Name
		}

		diff, ok := diffs[name]
		if !ok {
			diff = &RegionDiff{Name: name, FirstOffset: i}
			diffs[name] = diff
		}
		diff.Diffs++
	}

	for _, r := range regions {
		if diff, ok := diffs[r.Name]; ok {
			result.Regions = append(result.Regions, *diff)
		}
	}
	if diff, ok := diffs[region.Unmapped]; ok {
		result.Regions = append(result.Regions, *diff)
	}

	return result, nil
}
