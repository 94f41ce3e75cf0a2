// Package memory implements a read-only view of a raw memory dump.
package memory

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/retroenv/gbmemdump/internal/region"
)

// Layout of the vector table at the start of the address space.
const (
	VectorCount  = 8 // number of vector slots
	VectorStride = 8 // distance in bytes between two slots
	VectorSize   = 2 // bytes read per slot

	// MinimumSize is the smallest dump that covers the highest vector slot.
	MinimumSize = (VectorCount-1)*VectorStride + VectorSize
)

var (
	// ErrTruncatedImage is returned when the dump is too short to contain the vector table.
	ErrTruncatedImage = errors.New("truncated image")
	// ErrOutOfRange is returned for reads that exceed the bounds of the dump.
	ErrOutOfRange = errors.New("read out of range")
)

// Image is an immutable decoded memory dump. It is safe for concurrent use.
type Image struct {
	data         []byte
	resetVectors [VectorCount]uint16
}

// New returns an image for the given dump. The data is copied, later changes
// to the passed slice do not affect the image.
func New(data []byte) (*Image, error) {
	if len(data) < MinimumSize {
		return nil, fmt.Errorf("%w: %d bytes, at least %d bytes required",
			ErrTruncatedImage, len(data), MinimumSize)
	}

	img := &Image{
		data: slices.Clone(data),
	}
	if err := img.decodeResetVectors(); err != nil {
		return nil, err
	}
	return img, nil
}

func (img *Image) decodeResetVectors() error {
	for vector := range VectorCount {
		value, err := img.Uint16(vector * VectorStride)
		if err != nil {
			return fmt.Errorf("decoding vector %d: %w", vector, err)
		}
		img.resetVectors[vector] = value
	}
	return nil
}

// Len returns the size of the dump in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Bytes returns a copy of the complete dump.
func (img *Image) Bytes() []byte {
	return slices.Clone(img.data)
}

// Read returns a copy of length bytes starting at offset.
func (img *Image) Read(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset > len(img.data)-length {
		return nil, fmt.Errorf("%w: offset 0x%04X length %d, image size %d",
			ErrOutOfRange, offset, length, len(img.data))
	}
	return slices.Clone(img.data[offset : offset+length]), nil
}

// ReadRegion returns a copy of the bytes covered by the region.
func (img *Image) ReadRegion(r region.Region) ([]byte, error) {
	b, err := img.Read(r.Offset, r.Length)
	if err != nil {
		return nil, fmt.Errorf("reading region '%s': %w", r.Name, err)
	}
	return b, nil
}

// Uint8 returns the byte at offset.
func (img *Image) Uint8(offset int) (uint8, error) {
	b, err := img.Read(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 returns the little-endian 16 bit value at offset.
func (img *Image) Uint16(offset int) (uint16, error) {
	b, err := img.Read(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint16BigEndian returns the big-endian 16 bit value at offset.
func (img *Image) Uint16BigEndian(offset int) (uint16, error) {
	b, err := img.Read(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ResetVectors returns the raw 16 bit values of the 8 vector slots at the
// 8 byte aligned offsets 0x00 to 0x38, in slot order.
func (img *Image) ResetVectors() [VectorCount]uint16 {
	return img.resetVectors
}

// ResetVector returns the value of a single vector slot.
func (img *Image) ResetVector(index int) (uint16, error) {
	if index < 0 || index >= VectorCount {
		return 0, fmt.Errorf("%w: vector index %d", ErrOutOfRange, index)
	}
	return img.resetVectors[index], nil
}
