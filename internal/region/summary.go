package region

import (
	"fmt"
	"strings"
)

// Unmapped is the name used in summaries for offsets that are not part of any region.
const Unmapped = "unmapped"

// Summary returns a multiline string listing every range of the address
// space, including the gaps between regions. Useful for reference.
func (t *Table) Summary() string {
	s := strings.Builder{}

	next := 0
	for _, r := range t.regions {
		if r.Offset > next {
			writeSummaryLine(&s, next, r.Offset, Unmapped)
		}
		writeSummaryLine(&s, r.Offset, r.End(), r.Name)
		next = r.End()
	}

	if next < t.size {
		writeSummaryLine(&s, next, t.size, Unmapped)
	}

	return s.String()
}

func writeSummaryLine(s *strings.Builder, start, end int, name string) {
	s.WriteString(fmt.Sprintf("%04x -> %04x  %s\n", start, end-1, name))
}
