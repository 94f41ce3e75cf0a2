package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/gbmemdump/internal/options"
	"github.com/retroenv/gbmemdump/internal/region"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "positional input",
			args: []string{"prog", "memory.bin"},
			want: options.Program{
				Parameters: options.Parameters{Input: "memory.bin"},
				Flags:      options.Flags{Format: "auto"},
			},
		},
		{
			name: "input flag and format",
			args: []string{"prog", "-i", "memory.hex", "-f", "HEX"},
			want: options.Program{
				Parameters: options.Parameters{Input: "memory.hex"},
				Flags:      options.Flags{Format: "hex"},
			},
		},
		{
			name: "section flags",
			args: []string{"prog", "-header", "-registers", "-nocolor", "memory.bin"},
			want: options.Program{
				Parameters:  options.Parameters{Input: "memory.bin"},
				Flags:       options.Flags{Format: "auto", NoColor: true},
				OutputFlags: options.OutputFlags{Header: true, Registers: true},
			},
		},
		{
			name: "region name is normalized",
			args: []string{"prog", "-region", "high ram", "memory.bin"},
			want: options.Program{
				Parameters:  options.Parameters{Input: "memory.bin"},
				Flags:       options.Flags{Format: "auto"},
				OutputFlags: options.OutputFlags{Region: region.HighRAM},
			},
		},
		{
			name: "dump range",
			args: []string{"prog", "-dump", "0x100:80", "memory.bin"},
			want: options.Program{
				Parameters:   options.Parameters{Input: "memory.bin"},
				Flags:        options.Flags{Format: "auto"},
				OutputFlags:  options.OutputFlags{Dump: "0x100:80"},
				DumpRange:    options.Range{Offset: 0x100, Length: 80},
				HasDumpRange: true,
			},
		},
		{
			name: "batch without positional",
			args: []string{"prog", "-batch", "bin/memory_*.bin"},
			want: options.Program{
				Parameters: options.Parameters{Batch: "bin/memory_*.bin"},
				Flags:      options.Flags{Format: "auto"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args)

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
	}{
		{name: "no input", args: []string{"prog"}, wantUsage: true},
		{name: "flag after file", args: []string{"prog", "memory.bin", "-header"}, wantUsage: true},
		{name: "unknown format", args: []string{"prog", "-f", "elf", "memory.bin"}},
		{name: "unknown region", args: []string{"prog", "-region", "cartridge", "memory.bin"}},
		{name: "invalid dump range", args: []string{"prog", "-dump", "0x100", "memory.bin"}},
		{name: "invalid dump offset", args: []string{"prog", "-dump", "zz:1", "memory.bin"}},
		{name: "export in batch mode", args: []string{"prog", "-batch", "*.bin", "-export-hex", "out.hex"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args)

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.wantUsage, errors.As(err, &usageErr))
		})
	}
}

func TestParseRange(t *testing.T) {
	rng, err := parseRange("0xFF80:0x7F")
	assert.NoError(t, err)
	assert.Equal(t, options.Range{Offset: 0xFF80, Length: 0x7F}, rng)

	_, err = parseRange("1:-1")
	assert.Error(t, err)
}

func setArgs(t *testing.T, args []string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = args
}
