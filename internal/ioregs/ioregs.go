// Package ioregs decodes the hardware I/O registers of a memory dump.
package ioregs

import (
	"fmt"

	"github.com/retroenv/gbmemdump/internal/memory"
)

// Register addresses.
const (
	P1   = 0xFF00 // joypad
	SB   = 0xFF01 // serial transfer data
	SC   = 0xFF02 // serial transfer control
	DIV  = 0xFF04 // divider
	TIMA = 0xFF05 // timer counter
	TMA  = 0xFF06 // timer modulo
	TAC  = 0xFF07 // timer control
	IF   = 0xFF0F // interrupt flag
	LCDC = 0xFF40
	STAT = 0xFF41
	SCY  = 0xFF42
	SCX  = 0xFF43
	LY   = 0xFF44
	LYC  = 0xFF45
	DMA  = 0xFF46
	BGP  = 0xFF47
	OBP0 = 0xFF48
	OBP1 = 0xFF49
	WY   = 0xFF4A
	WX   = 0xFF4B
	BOOT = 0xFF50 // boot ROM disable
	IE   = 0xFFFF // interrupt enable
)

// Interrupt bits of the IF and IE registers.
const (
	InterruptVBlank  = 1 << 0
	InterruptLCDStat = 1 << 1
	InterruptTimer   = 1 << 2
	InterruptSerial  = 1 << 3
	InterruptJoypad  = 1 << 4
)

// Field is a named register value.
type Field struct {
	Name    string
	Address int
	Value   uint8
}

// Registers contains a snapshot of the I/O registers.
type Registers struct {
	Joypad         uint8
	SerialData     uint8
	SerialControl  uint8
	Timer          Timer
	InterruptFlag  uint8
	LCDControl     LCDControl
	LCDStatus      LCDStatus
	ScrollY        uint8
	ScrollX        uint8
	LY             uint8
	LYCompare      uint8
	DMA            uint8
	BGPalette      uint8
	ObjPalette0    uint8
	ObjPalette1    uint8
	WindowY        uint8
	WindowX        uint8
	BootROMDisable uint8

	InterruptEnable uint8
}

// Timer contains the timer registers.
type Timer struct {
	Divider uint8
	Counter uint8
	Modulo  uint8
	Control uint8
}

// Enabled returns whether the timer is running.
func (t Timer) Enabled() bool {
	return t.Control&0x04 != 0
}

// ClockSelect returns the input clock select bits.
func (t Timer) ClockSelect() uint8 {
	return t.Control & 0x03
}

// Frequency returns the timer increment frequency in Hz.
func (t Timer) Frequency() int {
	return timerFrequencies[t.ClockSelect()]
}

var timerFrequencies = [4]int{4096, 262144, 65536, 16384}

type decoder struct {
	img *memory.Image
	err error
}

func (d *decoder) read(address int) uint8 {
	if d.err != nil {
		return 0
	}
	value, err := d.img.Uint8(address)
	if err != nil {
		d.err = fmt.Errorf("reading register 0x%04X: %w", address, err)
	}
	return value
}

// Decode reads the I/O registers of the image. The image has to cover the
// full address space including the interrupt enable register.
func Decode(img *memory.Image) (Registers, error) {
	d := &decoder{img: img}

	regs := Registers{
		Joypad:        d.read(P1),
		SerialData:    d.read(SB),
		SerialControl: d.read(SC),
		Timer: Timer{
			Divider: d.read(DIV),
			Counter: d.read(TIMA),
			Modulo:  d.read(TMA),
			Control: d.read(TAC),
		},
		InterruptFlag:   d.read(IF),
		LCDControl:      LCDControl(d.read(LCDC)),
		LCDStatus:       LCDStatus(d.read(STAT)),
		ScrollY:         d.read(SCY),
		ScrollX:         d.read(SCX),
		LY:              d.read(LY),
		LYCompare:       d.read(LYC),
		DMA:             d.read(DMA),
		BGPalette:       d.read(BGP),
		ObjPalette0:     d.read(OBP0),
		ObjPalette1:     d.read(OBP1),
		WindowY:         d.read(WY),
		WindowX:         d.read(WX),
		BootROMDisable:  d.read(BOOT),
		InterruptEnable: d.read(IE),
	}
	if d.err != nil {
		return Registers{}, d.err
	}
	return regs, nil
}

// Fields returns all register values in address order.
func (r Registers) Fields() []Field {
	return []Field{
		{"P1", P1, r.Joypad},
		{"SB", SB, r.SerialData},
		{"SC", SC, r.SerialControl},
		{"DIV", DIV, r.Timer.Divider},
		{"TIMA", TIMA, r.Timer.Counter},
		{"TMA", TMA, r.Timer.Modulo},
		{"TAC", TAC, r.Timer.Control},
		{"IF", IF, r.InterruptFlag},
		{"LCDC", LCDC, uint8(r.LCDControl)},
		{"STAT", STAT, uint8(r.LCDStatus)},
		{"SCY", SCY, r.ScrollY},
		{"SCX", SCX, r.ScrollX},
		{"LY", LY, r.LY},
		{"LYC", LYC, r.LYCompare},
		{"DMA", DMA, r.DMA},
		{"BGP", BGP, r.BGPalette},
		{"OBP0", OBP0, r.ObjPalette0},
		{"OBP1", OBP1, r.ObjPalette1},
		{"WY", WY, r.WindowY},
		{"WX", WX, r.WindowX},
		{"BOOT", BOOT, r.BootROMDisable},
		{"IE", IE, r.InterruptEnable},
	}
}

// PendingInterrupts returns the interrupt bits that are both requested and enabled.
func (r Registers) PendingInterrupts() uint8 {
	return r.InterruptFlag & r.InterruptEnable & 0x1F
}
