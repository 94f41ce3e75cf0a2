// Package loader handles memory dump file loading operations.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcinbor85/gohex"
	"github.com/retroenv/gbmemdump/internal/region"
)

// Format of a memory dump file.
type Format string

// Supported input formats.
const (
	FormatAuto     Format = "auto"
	FormatBinary   Format = "bin"
	FormatIntelHex Format = "hex"
)

// unwritten bytes between Intel HEX segments read as erased memory
const hexPadding = 0xFF

var (
	// ErrEmptyIntelHex is returned for Intel HEX files that contain no data records.
	ErrEmptyIntelHex = errors.New("intel hex file contains no data")
	// ErrIntelHexAddress is returned for data records outside of the address space.
	ErrIntelHexAddress = errors.New("intel hex data outside of address space")
)

// FormatFromString returns the format for the given name.
func FormatFromString(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatBinary, FormatIntelHex:
		return f, nil
	case "ihx":
		return FormatIntelHex, nil
	default:
		return "", fmt.Errorf("unsupported format '%s'", s)
	}
}

// DetectFormat determines the format of a file based on its extension.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hex", ".ihx":
		return FormatIntelHex
	default:
		return FormatBinary
	}
}

// Loader handles loading memory dump files from disk.
type Loader struct{}

// New creates a new memory dump loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the complete file and returns its memory content. The file is
// closed before the function returns.
func (l *Loader) Load(path string, format Format) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	if format == FormatAuto {
		format = DetectFormat(path)
	}
	return l.LoadFromBytes(data, format)
}

// LoadFromBytes converts in-memory file content to the memory content.
func (l *Loader) LoadFromBytes(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatIntelHex:
		return parseIntelHex(data)
	case FormatAuto, FormatBinary:
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format '%s'", format)
	}
}

func parseIntelHex(data []byte) ([]byte, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parsing intel hex: %w", err)
	}

	var end uint64
	for _, segment := range mem.GetDataSegments() {
		segmentEnd := uint64(segment.Address) + uint64(len(segment.Data))
		if segmentEnd > region.AddressSpaceSize {
			return nil, fmt.Errorf("%w: segment 0x%X-0x%X, address space size 0x%X",
				ErrIntelHexAddress, segment.Address, segmentEnd-1, region.AddressSpaceSize)
		}
		end = max(end, segmentEnd)
	}
	if end == 0 {
		return nil, ErrEmptyIntelHex
	}

	return mem.ToBinary(0, uint32(end), hexPadding), nil
}
