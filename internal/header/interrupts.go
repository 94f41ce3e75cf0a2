package header

import (
	"fmt"

	"github.com/retroenv/gbmemdump/internal/memory"
)

// Interrupt handler slots that follow the vector table in ROM bank 00.
const (
	VBlankAddress  = 0x0040
	LCDStatAddress = 0x0048
	TimerAddress   = 0x0050
	SerialAddress  = 0x0058
	JoypadAddress  = 0x0060
)

// Interrupt is a single interrupt handler slot.
type Interrupt struct {
	Name    string
	Address int
	Value   uint16 // raw little-endian value of the first two bytes of the slot
}

// Interrupts contains the slots in priority order.
type Interrupts [5]Interrupt

var interruptSlots = [5]struct {
	name    string
	address int
}{
	{"V-Blank", VBlankAddress},
	{"LCD STAT", LCDStatAddress},
	{"Timer", TimerAddress},
	{"Serial", SerialAddress},
	{"Joypad", JoypadAddress},
}

// DecodeInterrupts reads the interrupt handler slots of the image.
func DecodeInterrupts(img *memory.Image) (Interrupts, error) {
	var interrupts Interrupts
	for i, slot := range interruptSlots {
		value, err := img.Uint16(slot.address)
		if err != nil {
			return Interrupts{}, fmt.Errorf("reading %s interrupt slot: %w", slot.name, err)
		}
		interrupts[i] = Interrupt{
			Name:    slot.name,
			Address: slot.address,
			Value:   value,
		}
	}
	return interrupts, nil
}
