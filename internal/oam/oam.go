// Package oam decodes the object attribute memory of a memory dump.
package oam

import (
	"fmt"

	"github.com/retroenv/gbmemdump/internal/memory"
)

// Layout of the object attribute memory.
const (
	Address     = 0xFE00
	ObjectCount = 40
	ObjectSize  = 4
)

// Flag bits of an object.
const (
	FlagPalette  = 1 << 4
	FlagFlipX    = 1 << 5
	FlagFlipY    = 1 << 6
	FlagPriority = 1 << 7
)

// Screen positions are offset so that objects can be partially scrolled in.
const (
	yOffset = 16
	xOffset = 8

	screenHeight = 144
	screenWidth  = 160
)

// Object is a single sprite entry.
type Object struct {
	Y     uint8
	X     uint8
	Tile  uint8
	Flags uint8
}

// Palette returns the index of the object palette register, 0 or 1.
func (o Object) Palette() int {
	if o.Flags&FlagPalette != 0 {
		return 1
	}
	return 0
}

// FlipX returns whether the object is mirrored horizontally.
func (o Object) FlipX() bool { return o.Flags&FlagFlipX != 0 }

// FlipY returns whether the object is mirrored vertically.
func (o Object) FlipY() bool { return o.Flags&FlagFlipY != 0 }

// BehindBackground returns whether background colors 1-3 are drawn over the object.
func (o Object) BehindBackground() bool { return o.Flags&FlagPriority != 0 }

// Visible returns whether any part of an 8x8 object is on screen.
func (o Object) Visible() bool {
	return o.Y > 0 && int(o.Y) < screenHeight+yOffset &&
		o.X > 0 && int(o.X) < screenWidth+xOffset
}

// Decode reads all object entries of the image.
func Decode(img *memory.Image) ([ObjectCount]Object, error) {
	var objects [ObjectCount]Object

	raw, err := img.Read(Address, ObjectCount*ObjectSize)
	if err != nil {
		return objects, fmt.Errorf("reading object attribute memory: %w", err)
	}

	for i := range objects {
		entry := raw[i*ObjectSize : (i+1)*ObjectSize]
		objects[i] = Object{
			Y:     entry[0],
			X:     entry[1],
			Tile:  entry[2],
			Flags: entry[3],
		}
	}
	return objects, nil
}
