package ioregs

import (
	"errors"
	"testing"

	"github.com/retroenv/gbmemdump/internal/memory"
	"github.com/retroenv/gbmemdump/internal/region"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	data := make([]byte, region.AddressSpaceSize)
	data[TAC] = 0x05
	data[TIMA] = 0x42
	data[IF] = InterruptVBlank | InterruptTimer
	data[IE] = InterruptVBlank | InterruptSerial
	data[LCDC] = 0x91
	data[STAT] = 0x45
	data[LY] = 0x90
	data[LYC] = 0x90
	data[BGP] = 0xFC
	data[BOOT] = 0x01

	img, err := memory.New(data)
	assert.NoError(t, err)

	regs, err := Decode(img)
	assert.NoError(t, err)

	assert.True(t, regs.Timer.Enabled())
	assert.Equal(t, uint8(1), regs.Timer.ClockSelect())
	assert.Equal(t, 262144, regs.Timer.Frequency())
	assert.Equal(t, uint8(0x42), regs.Timer.Counter)
	assert.Equal(t, uint8(InterruptVBlank), regs.PendingInterrupts())

	assert.True(t, regs.LCDControl.Enabled())
	assert.True(t, regs.LCDControl.BackgroundWindowEnable())
	assert.False(t, regs.LCDControl.ObjectEnable())
	assert.Equal(t, 8, regs.LCDControl.ObjectHeight())
	assert.Equal(t, uint16(0x8000), regs.LCDControl.TileData())
	assert.Equal(t, uint16(0x9800), regs.LCDControl.BackgroundTileMap())
	assert.False(t, regs.LCDControl.WindowEnable())

	assert.Equal(t, ModeVBlank, regs.LCDStatus.Mode())
	assert.Equal(t, "V-Blank", regs.LCDStatus.Mode().String())
	assert.True(t, regs.LCDStatus.LYCEqualsLY())
	assert.True(t, regs.LCDStatus.LYCInterrupt())
	assert.False(t, regs.LCDStatus.OAMInterrupt())

	assert.Equal(t, uint8(0xFC), regs.BGPalette)
	assert.Equal(t, uint8(0x01), regs.BootROMDisable)
}

func TestFieldsInAddressOrder(t *testing.T) {
	fields := Registers{InterruptEnable: 0x1F}.Fields()
	assert.Len(t, fields, 22)
	for i := 1; i < len(fields); i++ {
		assert.True(t, fields[i-1].Address < fields[i].Address)
	}

	last := fields[len(fields)-1]
	assert.Equal(t, "IE", last.Name)
	assert.Equal(t, uint8(0x1F), last.Value)
}

func TestDecodeTruncated(t *testing.T) {
	img, err := memory.New(make([]byte, 0xFF80))
	assert.NoError(t, err)

	_, err = Decode(img)
	assert.True(t, errors.Is(err, memory.ErrOutOfRange))
	assert.ErrorContains(t, err, "0xFFFF")
}
