package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/gbmemdump/internal/loader"
	"github.com/retroenv/gbmemdump/internal/memory"
	"github.com/retroenv/gbmemdump/internal/options"
	"github.com/retroenv/gbmemdump/internal/region"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.loader)
	assert.NotNil(t, p.table)
}

//nolint:funlen // test functions can be long
func TestExecute(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	dir := t.TempDir()
	full := createDumpFile(t, dir, "full.bin", region.AddressSpaceSize)
	short := createDumpFile(t, dir, "short.bin", 0x100)

	tests := []struct {
		name     string
		opts     options.Program
		wantErr  error
		contains []string
		excludes []string
	}{
		{
			name:     "vectors only",
			opts:     newOptions(full),
			contains: []string{"[20480, 0, 0, 0, 0, 0, 0, 0]\n"},
			excludes: []string{"Cartridge header", "Memory regions"},
		},
		{
			name: "all sections of full dump",
			opts: func() options.Program {
				opts := newOptions(full)
				opts.All = true
				return opts
			}(),
			contains: []string{
				"Memory regions",
				"Cartridge header",
				"Interrupt handlers",
				"Objects",
				"I/O registers",
			},
		},
		{
			name: "all sections skip uncovered areas",
			opts: func() options.Program {
				opts := newOptions(short)
				opts.All = true
				return opts
			}(),
			contains: []string{"Memory regions", "Interrupt handlers"},
			excludes: []string{"Cartridge header", "I/O registers", "Objects"},
		},
		{
			name: "explicit section not covered",
			opts: func() options.Program {
				opts := newOptions(short)
				opts.Header = true
				return opts
			}(),
			wantErr: memory.ErrOutOfRange,
		},
		{
			name: "region hex dump",
			opts: func() options.Program {
				opts := newOptions(full)
				opts.Region = region.HighRAM
				return opts
			}(),
			contains: []string{"High RAM [0xFF80-0xFFFE]", "0xff80: "},
		},
		{
			name: "range hex dump",
			opts: func() options.Program {
				opts := newOptions(full)
				opts.DumpRange = options.Range{Offset: 0, Length: 2}
				opts.HasDumpRange = true
				return opts
			}(),
			contains: []string{"Dump [0x0000-0x0001]", "0x0000: 00 50\n"},
		},
		{
			name: "range hex dump out of range",
			opts: func() options.Program {
				opts := newOptions(short)
				opts.DumpRange = options.Range{Offset: 0xF0, Length: 0x20}
				opts.HasDumpRange = true
				return opts
			}(),
			wantErr: memory.ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := p.Execute(context.Background(), tt.opts, &buf)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			assert.NoError(t, err)
			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.False(t, strings.Contains(out, s), "unexpected output "+s)
			}
		})
	}
}

func TestExecuteLoadErrors(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	dir := t.TempDir()
	truncated := createDumpFile(t, dir, "truncated.bin", memory.MinimumSize-1)

	var buf bytes.Buffer
	_, err := p.Execute(context.Background(), newOptions(truncated), &buf)
	assert.True(t, errors.Is(err, memory.ErrTruncatedImage))
	assert.Equal(t, 0, buf.Len())

	_, err = p.Execute(context.Background(), newOptions(filepath.Join(dir, "missing.bin")), &buf)
	assert.Error(t, err)
}

func TestExecuteCancelled(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	file := createDumpFile(t, t.TempDir(), "dump.bin", region.AddressSpaceSize)
	opts := newOptions(file)
	opts.All = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := p.Execute(ctx, opts, &buf)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestExecuteCompare(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	dir := t.TempDir()
	first := createDumpFile(t, dir, "first.bin", region.AddressSpaceSize)

	data := createDump(region.AddressSpaceSize)
	data[0xC000] = 0xAA
	second := filepath.Join(dir, "second.bin")
	assert.NoError(t, os.WriteFile(second, data, 0o600))

	opts := newOptions(first)
	opts.Compare = second

	var buf bytes.Buffer
	_, err := p.Execute(context.Background(), opts, &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Comparison with "+second)
	assert.Contains(t, buf.String(), region.WorkRAM00)
	assert.Contains(t, buf.String(), "1 bytes differ")

	opts.Compare = createDumpFile(t, dir, "short.bin", 0x100)
	_, err = p.Execute(context.Background(), opts, &buf)
	assert.ErrorContains(t, err, "comparing with")
}

func TestExecuteExportIntelHex(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	dir := t.TempDir()
	input := createDumpFile(t, dir, "dump.bin", 0x200)
	output := filepath.Join(dir, "dump.hex")

	opts := newOptions(input)
	opts.ExportHex = output

	var buf bytes.Buffer
	img, err := p.Execute(context.Background(), opts, &buf)
	assert.NoError(t, err)

	data, err := loader.New().Load(output, loader.FormatAuto)
	assert.NoError(t, err)
	assert.Equal(t, img.Bytes(), data)
}

func newOptions(input string) options.Program {
	opts := options.Program{}
	opts.Input = input
	opts.Format = string(loader.FormatAuto)
	opts.Quiet = true
	return opts
}

func createDump(size int) []byte {
	data := make([]byte, size)
	if size > 1 {
		data[1] = 0x50
	}
	return data
}

func createDumpFile(t *testing.T, dir, name string, size int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := os.WriteFile(path, createDump(size), 0o600)
	assert.NoError(t, err)
	return path
}
