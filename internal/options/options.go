// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input     string `flag:"i" usage:"input memory dump file"`
	Output    string `flag:"o" usage:"output file (default: stdout)"`
	Batch     string `flag:"batch" usage:"batch process files matching pattern (e.g. memory_*.bin)"`
	Compare   string `flag:"compare" usage:"second memory dump to compare against"`
	ExportHex string `flag:"export-hex" usage:"export the dump as Intel HEX file"`
}

// Flags contains behavior options.
type Flags struct {
	Format  string `flag:"f" usage:"input format: auto, bin, hex" default:"auto"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
	NoColor bool   `flag:"nocolor" usage:"disable colored output"`
}

// OutputFlags contains options selecting the decoded sections to output.
type OutputFlags struct {
	All        bool   `flag:"all" usage:"output all sections available for the dump"`
	Header     bool   `flag:"header" usage:"output the cartridge header"`
	Interrupts bool   `flag:"interrupts" usage:"output the interrupt handler slots"`
	Registers  bool   `flag:"registers" usage:"output the I/O registers"`
	Objects    bool   `flag:"objects" usage:"output the object attribute memory"`
	Regions    bool   `flag:"regions" usage:"output the memory region map"`
	Region     string `flag:"region" usage:"hex dump the named memory region"`
	Dump       string `flag:"dump" usage:"hex dump a range given as offset:length"`
}

// Program options of the decoder.
type Program struct {
	Parameters
	Flags
	OutputFlags

	// DumpRange is the parsed Dump flag, only valid if HasDumpRange is set.
	DumpRange    Range
	HasDumpRange bool
}

// Range is a byte range of a memory dump.
type Range struct {
	Offset int
	Length int
}
