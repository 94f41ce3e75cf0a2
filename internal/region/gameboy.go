package region

// AddressSpaceSize is the size of the 16 bit Game Boy address space.
const AddressSpaceSize = 0x10000

// Names of the Game Boy memory regions.
const (
	ROMBank00               = "ROM Bank 00"
	ROMBank01               = "ROM Bank 01"
	VideoRAM                = "Video RAM"
	ExternalRAM             = "External RAM"
	WorkRAM00               = "Work RAM 00"
	WorkRAM01               = "Work RAM 01"
	EchoRAM                 = "Echo RAM"
	ObjectAttributeMemory   = "Object Attribute Memory"
	IORegisters             = "I/O Registers"
	HighRAM                 = "High RAM"
	InterruptEnableRegister = "Interrupt Enable"
)

// 0xFEA0-0xFEFF is not usable on hardware and stays unmapped.
var gameBoy = MustNewTable(AddressSpaceSize,
	Region{Name: ROMBank00, Offset: 0x0000, Length: 0x4000},
	Region{Name: ROMBank01, Offset: 0x4000, Length: 0x4000},
	Region{Name: VideoRAM, Offset: 0x8000, Length: 0x2000},
	Region{Name: ExternalRAM, Offset: 0xA000, Length: 0x2000},
	Region{Name: WorkRAM00, Offset: 0xC000, Length: 0x1000},
	Region{Name: WorkRAM01, Offset: 0xD000, Length: 0x1000},
	Region{Name: EchoRAM, Offset: 0xE000, Length: 0x1E00},
	Region{Name: ObjectAttributeMemory, Offset: 0xFE00, Length: 0x00A0},
	Region{Name: IORegisters, Offset: 0xFF00, Length: 0x0080},
	Region{Name: HighRAM, Offset: 0xFF80, Length: 0x007F},
	Region{Name: InterruptEnableRegister, Offset: 0xFFFF, Length: 0x0001},
)

// GameBoy returns the region table of the Game Boy (DMG) address space.
func GameBoy() *Table {
	return gameBoy
}
