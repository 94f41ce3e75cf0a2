// Package header decodes the cartridge header that is mapped into ROM bank 00.
package header

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/retroenv/gbmemdump/internal/memory"
)

// Offsets of the cartridge header fields.
const (
	EntryPointAddress     = 0x0100
	LogoAddress           = 0x0104
	TitleAddress          = 0x0134
	CGBFlagAddress        = 0x0143
	NewLicenseeAddress    = 0x0144
	SGBFlagAddress        = 0x0146
	CartridgeTypeAddress  = 0x0147
	ROMSizeAddress        = 0x0148
	RAMSizeAddress        = 0x0149
	DestinationAddress    = 0x014A
	OldLicenseeAddress    = 0x014B
	VersionAddress        = 0x014C
	HeaderChecksumAddress = 0x014D
	GlobalChecksumAddress = 0x014E
	EndAddress            = 0x0150 // first address after the header
)

const (
	titleMaxLength         = 16
	titleLengthWithCGBFlag = 15
	useNewLicenseeCode     = 0x33
	cgbFlagSupported       = 0x80
	cgbFlagOnly            = 0xC0
	sgbFlagSupported       = 0x03
	destinationNonJapanese = 0x01
	romSizeBase            = 32 << 10
	maxROMSizeCode         = 0x08
)

// Logo is the bitmap that the boot ROM compares against before starting a cartridge.
var Logo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Header contains the decoded cartridge header.
type Header struct {
	EntryPoint [4]byte
	Logo       [48]byte
	LogoValid  bool

	Title         string
	CGBFlag       byte
	NewLicensee   string
	SGBFlag       byte
	CartridgeType byte
	ROMSizeCode   byte
	RAMSizeCode   byte
	Destination   byte
	OldLicensee   byte
	Version       byte

	HeaderChecksum         byte
	ComputedHeaderChecksum byte
	HeaderChecksumValid    bool
	GlobalChecksum         uint16
}

// Decode decodes the cartridge header of the image. The image has to
// cover the complete header area up to 0x014F.
func Decode(img *memory.Image) (Header, error) {
	raw, err := img.Read(0, EndAddress)
	if err != nil {
		return Header{}, fmt.Errorf("reading cartridge header: %w", err)
	}

	h := Header{
		CGBFlag:        raw[CGBFlagAddress],
		SGBFlag:        raw[SGBFlagAddress],
		CartridgeType:  raw[CartridgeTypeAddress],
		ROMSizeCode:    raw[ROMSizeAddress],
		RAMSizeCode:    raw[RAMSizeAddress],
		Destination:    raw[DestinationAddress],
		OldLicensee:    raw[OldLicenseeAddress],
		Version:        raw[VersionAddress],
		HeaderChecksum: raw[HeaderChecksumAddress],
		GlobalChecksum: uint16(raw[GlobalChecksumAddress])<<8 | uint16(raw[GlobalChecksumAddress+1]),
	}
	copy(h.EntryPoint[:], raw[EntryPointAddress:])
	copy(h.Logo[:], raw[LogoAddress:])
	h.LogoValid = h.Logo == Logo

	titleLength := titleMaxLength
	if h.CGBFlag == cgbFlagSupported || h.CGBFlag == cgbFlagOnly {
		titleLength = titleLengthWithCGBFlag
	}
	h.Title = decodeTitle(raw[TitleAddress : TitleAddress+titleLength])
	h.NewLicensee = string(raw[NewLicenseeAddress : NewLicenseeAddress+2])

	h.ComputedHeaderChecksum = Checksum(raw)
	h.HeaderChecksumValid = h.ComputedHeaderChecksum == h.HeaderChecksum

	return h, nil
}

// Checksum calculates the header checksum over the bytes 0x0134-0x014C
// the same way the boot ROM does. The passed data has to start at
// address 0 and cover at least the header checksum range.
func Checksum(data []byte) byte {
	var x byte
	for _, b := range data[TitleAddress:HeaderChecksumAddress] {
		x = x - b - 1
	}
	return x
}

func decodeTitle(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimRight(string(b), " ")
}

// CGB returns whether the cartridge supports Game Boy Color functions.
func (h Header) CGB() bool {
	return h.CGBFlag == cgbFlagSupported || h.CGBFlag == cgbFlagOnly
}

// CGBOnly returns whether the cartridge only runs on a Game Boy Color.
func (h Header) CGBOnly() bool {
	return h.CGBFlag == cgbFlagOnly
}

// SGB returns whether the cartridge supports Super Game Boy functions.
func (h Header) SGB() bool {
	return h.SGBFlag == sgbFlagSupported
}

// Japanese returns whether the cartridge is meant to be sold in Japan.
func (h Header) Japanese() bool {
	return h.Destination != destinationNonJapanese
}

// Licensee returns the licensee code, using the new two character code
// if the old licensee code signals it.
func (h Header) Licensee() string {
	if h.OldLicensee == useNewLicenseeCode {
		return h.NewLicensee
	}
	return fmt.Sprintf("%02X", h.OldLicensee)
}

// ROMSize returns the ROM size in bytes, 0 for unknown size codes.
func (h Header) ROMSize() int {
	if h.ROMSizeCode > maxROMSizeCode {
		return 0
	}
	return romSizeBase << h.ROMSizeCode
}

// ROMBanks returns the number of 16 KiB ROM banks.
func (h Header) ROMBanks() int {
	return h.ROMSize() / (16 << 10)
}

// RAMSize returns the external RAM size in bytes, 0 for no RAM or unknown size codes.
func (h Header) RAMSize() int {
	return ramSizes[h.RAMSizeCode]
}

// CartridgeTypeName returns a description of the cartridge hardware.
func (h Header) CartridgeTypeName() string {
	name, ok := cartridgeTypes[h.CartridgeType]
	if !ok {
		return fmt.Sprintf("unknown (0x%02X)", h.CartridgeType)
	}
	return name
}
