package writer

import (
	"fmt"
	"io"

	"github.com/marcinbor85/gohex"
)

const intelHexLineLength = 16

// WriteIntelHex writes the data as Intel HEX records, starting at address 0.
func WriteIntelHex(w io.Writer, data []byte) error {
	mem := gohex.NewMemory()
	if err := mem.AddBinary(0, data); err != nil {
		return fmt.Errorf("adding data: %w", err)
	}
	if err := mem.DumpIntelHex(w, intelHexLineLength); err != nil {
		return fmt.Errorf("writing intel hex: %w", err)
	}
	return nil
}
