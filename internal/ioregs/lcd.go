package ioregs

// LCDControl is the LCDC register.
type LCDControl uint8

// BackgroundWindowEnable is bit 0.
func (c LCDControl) BackgroundWindowEnable() bool { return c&0x01 != 0 }

// ObjectEnable is bit 1.
func (c LCDControl) ObjectEnable() bool { return c&0x02 != 0 }

// ObjectHeight returns 8 or 16 pixels depending on bit 2.
func (c LCDControl) ObjectHeight() int {
	if c&0x04 != 0 {
		return 16
	}
	return 8
}

// BackgroundTileMap returns the start address of the background tile map.
func (c LCDControl) BackgroundTileMap() uint16 {
	if c&0x08 != 0 {
		return 0x9C00
	}
	return 0x9800
}

// TileData returns the start address of the background and window tile data.
func (c LCDControl) TileData() uint16 {
	if c&0x10 != 0 {
		return 0x8000
	}
	return 0x8800
}

// WindowEnable is bit 5.
func (c LCDControl) WindowEnable() bool { return c&0x20 != 0 }

// WindowTileMap returns the start address of the window tile map.
func (c LCDControl) WindowTileMap() uint16 {
	if c&0x40 != 0 {
		return 0x9C00
	}
	return 0x9800
}

// Enabled is bit 7.
func (c LCDControl) Enabled() bool { return c&0x80 != 0 }

// Mode is the PPU mode stored in the lower two bits of STAT.
type Mode uint8

// PPU modes.
const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMSearch
	ModeTransfer
)

func (m Mode) String() string {
	switch m {
	case ModeHBlank:
		return "H-Blank"
	case ModeVBlank:
		return "V-Blank"
	case ModeOAMSearch:
		return "OAM search"
	case ModeTransfer:
		return "transferring to LCD"
	}
	return "undefined"
}

// LCDStatus is the STAT register.
type LCDStatus uint8

// Mode returns the current PPU mode.
func (s LCDStatus) Mode() Mode { return Mode(s & 0x03) }

// LYCEqualsLY is bit 2.
func (s LCDStatus) LYCEqualsLY() bool { return s&0x04 != 0 }

// HBlankInterrupt is bit 3.
func (s LCDStatus) HBlankInterrupt() bool { return s&0x08 != 0 }

// VBlankInterrupt is bit 4.
func (s LCDStatus) VBlankInterrupt() bool { return s&0x10 != 0 }

// OAMInterrupt is bit 5.
func (s LCDStatus) OAMInterrupt() bool { return s&0x20 != 0 }

// LYCInterrupt is bit 6.
func (s LCDStatus) LYCInterrupt() bool { return s&0x40 != 0 }
