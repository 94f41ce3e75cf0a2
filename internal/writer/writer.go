// Package writer renders decoded memory dump information.
package writer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/gbmemdump/internal/compare"
	"github.com/retroenv/gbmemdump/internal/header"
	"github.com/retroenv/gbmemdump/internal/ioregs"
	"github.com/retroenv/gbmemdump/internal/memory"
	"github.com/retroenv/gbmemdump/internal/oam"
	"github.com/retroenv/gbmemdump/internal/region"
)

const dataBytesPerLine = 16

// Writer writes the decoded sections of a memory dump.
type Writer struct {
	options Options
	styles  styles
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	Color bool // style section titles and values if the output supports it
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		styles:  newStyles(writer, options.Color),
		writer:  writer,
	}
}

func (w *Writer) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(w.writer, format, args...); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func (w *Writer) title(s string) error {
	return w.printf("\n%s\n", w.styles.title.Render(s))
}

// WriteVectors writes the vector table as ordered list of decimal values.
func (w *Writer) WriteVectors(vectors [memory.VectorCount]uint16) error {
	values := make([]string, len(vectors))
	for i, v := range vectors {
		values[i] = strconv.FormatUint(uint64(v), 10)
	}
	return w.printf("[%s]\n", strings.Join(values, ", "))
}

// WriteRegions writes the map of all regions and gaps of the table.
func (w *Writer) WriteRegions(table *region.Table) error {
	if err := w.title("Memory regions"); err != nil {
		return err
	}
	return w.printf("%s", table.Summary())
}

// WriteHeader writes the cartridge header fields.
func (w *Writer) WriteHeader(h header.Header) error {
	if err := w.title("Cartridge header"); err != nil {
		return err
	}

	checksum := w.styles.valid.Render("valid")
	if !h.HeaderChecksumValid {
		checksum = w.styles.invalid.Render(fmt.Sprintf("invalid, computed 0x%02X", h.ComputedHeaderChecksum))
	}
	logo := w.styles.valid.Render("valid")
	if !h.LogoValid {
		logo = w.styles.invalid.Render("invalid")
	}

	lines := []struct {
		name  string
		value string
	}{
		{"Title", h.Title},
		{"Entry point", fmt.Sprintf("% X", h.EntryPoint)},
		{"Logo", logo},
		{"Cartridge type", fmt.Sprintf("0x%02X %s", h.CartridgeType, h.CartridgeTypeName())},
		{"ROM size", fmt.Sprintf("0x%02X %d KiB, %d banks", h.ROMSizeCode, h.ROMSize()>>10, h.ROMBanks())},
		{"RAM size", fmt.Sprintf("0x%02X %d KiB", h.RAMSizeCode, h.RAMSize()>>10)},
		{"CGB support", fmt.Sprintf("0x%02X %s", h.CGBFlag, cgbDescription(h))},
		{"SGB support", strconv.FormatBool(h.SGB())},
		{"Japanese", strconv.FormatBool(h.Japanese())},
		{"Licensee", h.Licensee()},
		{"Version", strconv.Itoa(int(h.Version))},
		{"Header checksum", fmt.Sprintf("0x%02X %s", h.HeaderChecksum, checksum)},
		{"Global checksum", fmt.Sprintf("0x%04X", h.GlobalChecksum)},
	}

	for _, line := range lines {
		if err := w.printf("%-16s %s\n", line.name+":", line.value); err != nil {
			return err
		}
	}
	return nil
}

func cgbDescription(h header.Header) string {
	switch {
	case h.CGBOnly():
		return "CGB only"
	case h.CGB():
		return "CGB enhanced"
	default:
		return "DMG"
	}
}

// WriteInterrupts writes the interrupt handler slots.
func (w *Writer) WriteInterrupts(interrupts header.Interrupts) error {
	if err := w.title("Interrupt handlers"); err != nil {
		return err
	}
	for _, interrupt := range interrupts {
		if err := w.printf("0x%04X %-9s 0x%04X\n", interrupt.Address, interrupt.Name, interrupt.Value); err != nil {
			return err
		}
	}
	return nil
}

// WriteRegisters writes the I/O register values in address order.
func (w *Writer) WriteRegisters(regs ioregs.Registers) error {
	if err := w.title("I/O registers"); err != nil {
		return err
	}
	for _, field := range regs.Fields() {
		if err := w.printf("0x%04X %-5s 0x%02X\n", field.Address, field.Name,
			field.Value); err != nil {
			return err
		}
	}

	timer := "stopped"
	if regs.Timer.Enabled() {
		timer = fmt.Sprintf("running at %d Hz", regs.Timer.Frequency())
	}
	lcd := "off"
	if regs.LCDControl.Enabled() {
		lcd = "on, " + regs.LCDStatus.Mode().String()
	}
	return w.printf("timer %s, LCD %s, pending interrupts 0x%02X\n", timer, lcd, regs.PendingInterrupts())
}

// WriteObjects writes all object entries that are visible on screen.
func (w *Writer) WriteObjects(objects [oam.ObjectCount]oam.Object) error {
	if err := w.title("Objects"); err != nil {
		return err
	}

	var visible int
	for i, obj := range objects {
		if !obj.Visible() {
			continue
		}
		visible++
		if err := w.printf("%2d: y %3d x %3d tile 0x%02X palette %d flip x %t y %t behind bg %t\n",
			i, obj.Y, obj.X, obj.Tile, obj.Palette(), obj.FlipX(), obj.FlipY(), obj.BehindBackground()); err != nil {
			return err
		}
	}
	return w.printf("%d of %d objects visible\n", visible, len(objects))
}

// WriteHexDump writes the data as hex dump, the offsets start at the given base offset.
func (w *Writer) WriteHexDump(name string, offset int, data []byte) error {
	if err := w.title(fmt.Sprintf("%s [0x%04X-0x%04X]", name, offset, offset+len(data)-1)); err != nil {
		return err
	}

	columns := make([]string, dataBytesPerLine)
	for i := range columns {
		columns[i] = fmt.Sprintf("%02X", i)
	}
	if err := w.printf("        %s\n", w.styles.column.Render(strings.Join(columns, " "))); err != nil {
		return err
	}

	for row := 0; row < len(data); row += dataBytesPerLine {
		end := min(row+dataBytesPerLine, len(data))
		values := make([]string, 0, dataBytesPerLine)
		for _, b := range data[row:end] {
			values = append(values, fmt.Sprintf("%02x", b))
		}

		address := w.styles.address.Render(fmt.Sprintf("0x%04x:", offset+row))
		if err := w.printf("%s %s\n", address, strings.Join(values, " ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteComparison writes the result of a dump comparison.
func (w *Writer) WriteComparison(name string, result compare.Result) error {
	if err := w.title("Comparison with " + name); err != nil {
		return err
	}
	if result.Equal() {
		return w.printf("%s\n", w.styles.valid.Render("identical"))
	}

	for _, diff := range result.Regions {
		if err := w.printf("%-24s %6d bytes differ, first at 0x%04X\n", diff.Name, diff.Diffs, diff.FirstOffset); err != nil {
			return err
		}
	}
	return w.printf("%s\n", w.styles.invalid.Render(fmt.Sprintf("%d bytes differ", result.Total)))
}
