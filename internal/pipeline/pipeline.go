// Package pipeline orchestrates the memory dump decoding stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/gbmemdump/internal/compare"
	"github.com/retroenv/gbmemdump/internal/config"
	"github.com/retroenv/gbmemdump/internal/header"
	"github.com/retroenv/gbmemdump/internal/ioregs"
	"github.com/retroenv/gbmemdump/internal/loader"
	"github.com/retroenv/gbmemdump/internal/memory"
	"github.com/retroenv/gbmemdump/internal/oam"
	"github.com/retroenv/gbmemdump/internal/options"
	"github.com/retroenv/gbmemdump/internal/region"
	"github.com/retroenv/gbmemdump/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete decoding workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
	table  *region.Table
}

// section is an optional output block of the decoded dump.
type section struct {
	name     string
	selected bool // explicitly requested by its own flag
	write    func(w *writer.Writer, img *memory.Image) error
}

// New creates a new decoding pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
		table:  region.GameBoy(),
	}
}

// Execute runs the complete decoding pipeline for the input file of the
// options and writes the result to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, out io.Writer) (*memory.Image, error) {
	img, err := p.Load(opts.Input, opts.Format)
	if err != nil {
		return nil, err
	}

	if err := p.ExecuteWithImage(ctx, img, opts, out); err != nil {
		return nil, err
	}
	return img, nil
}

// ExecuteWithImage runs the pipeline with an already constructed image.
func (p *Pipeline) ExecuteWithImage(ctx context.Context, img *memory.Image, opts options.Program, out io.Writer) error {
	p.printInfo(opts, img)

	w := writer.New(out, writer.Options{Color: config.ColorEnabled(opts)})
	if err := w.WriteVectors(img.ResetVectors()); err != nil {
		return fmt.Errorf("writing vectors: %w", err)
	}

	for _, s := range p.sections(opts) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("writing %s: %w", s.name, err)
		}
		if err := p.writeSection(w, img, s); err != nil {
			return err
		}
	}

	if opts.Compare != "" {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("comparing: %w", err)
		}
		if err := p.compare(w, img, opts); err != nil {
			return err
		}
	}

	if opts.ExportHex != "" {
		if err := exportIntelHex(opts.ExportHex, img); err != nil {
			return err
		}
		p.logger.Info("Exported Intel HEX file", log.String("file", opts.ExportHex))
	}

	return nil
}

// Load reads the file and constructs the memory image from its content.
func (p *Pipeline) Load(path, format string) (*memory.Image, error) {
	f := loader.Format(format)
	if f == loader.FormatAuto {
		f = loader.DetectFormat(path)
		p.logger.Debug("Auto-detected input format",
			log.String("format", string(f)),
			log.String("file", path))
	}

	data, err := p.loader.Load(path, f)
	if err != nil {
		return nil, fmt.Errorf("loading memory dump: %w", err)
	}

	img, err := memory.New(data)
	if err != nil {
		return nil, fmt.Errorf("decoding memory dump %s: %w", path, err)
	}
	return img, nil
}

// sections returns the optional sections in output order. Sections that are
// only enabled through the all flag are skipped if the dump is too short.
func (p *Pipeline) sections(opts options.Program) []section {
	all := []section{
		{
			name:     "regions",
			selected: opts.Regions,
			write: func(w *writer.Writer, _ *memory.Image) error {
				return w.WriteRegions(p.table)
			},
		},
		{
			name:     "header",
			selected: opts.Header,
			write: func(w *writer.Writer, img *memory.Image) error {
				h, err := header.Decode(img)
				if err != nil {
					return err
				}
				return w.WriteHeader(h)
			},
		},
		{
			name:     "interrupts",
			selected: opts.Interrupts,
			write: func(w *writer.Writer, img *memory.Image) error {
				interrupts, err := header.DecodeInterrupts(img)
				if err != nil {
					return err
				}
				return w.WriteInterrupts(interrupts)
			},
		},
		{
			name:     "objects",
			selected: opts.Objects,
			write: func(w *writer.Writer, img *memory.Image) error {
				objects, err := oam.Decode(img)
				if err != nil {
					return err
				}
				return w.WriteObjects(objects)
			},
		},
		{
			name:     "registers",
			selected: opts.Registers,
			write: func(w *writer.Writer, img *memory.Image) error {
				regs, err := ioregs.Decode(img)
				if err != nil {
					return err
				}
				return w.WriteRegisters(regs)
			},
		},
	}

	var sections []section
	for _, s := range all {
		if s.selected || opts.All {
			sections = append(sections, s)
		}
	}

	if opts.Region != "" {
		sections = append(sections, section{
			name:     "region",
			selected: true,
			write: func(w *writer.Writer, img *memory.Image) error {
				return p.writeRegion(w, img, opts.Region)
			},
		})
	}

	if opts.HasDumpRange {
		rng := opts.DumpRange
		sections = append(sections, section{
			name:     "dump",
			selected: true,
			write: func(w *writer.Writer, img *memory.Image) error {
				data, err := img.Read(rng.Offset, rng.Length)
				if err != nil {
					return err
				}
				return w.WriteHexDump("Dump", rng.Offset, data)
			},
		})
	}

	return sections
}

func (p *Pipeline) writeSection(w *writer.Writer, img *memory.Image, s section) error {
	err := s.write(w, img)
	if err == nil {
		return nil
	}

	if !s.selected && errors.Is(err, memory.ErrOutOfRange) {
		p.logger.Debug("Skipping section not covered by memory dump",
			log.String("section", s.name),
			log.Int("size", img.Len()),
		)
		return nil
	}
	return fmt.Errorf("writing %s: %w", s.name, err)
}

func (p *Pipeline) writeRegion(w *writer.Writer, img *memory.Image, name string) error {
	r, ok := p.table.Find(name)
	if !ok {
		return fmt.Errorf("unknown region '%s'", name)
	}

	data, err := img.ReadRegion(r)
	if err != nil {
		return err
	}
	return w.WriteHexDump(r.Name, r.Offset, data)
}

func (p *Pipeline) compare(w *writer.Writer, img *memory.Image, opts options.Program) error {
	other, err := p.Load(opts.Compare, opts.Format)
	if err != nil {
		return fmt.Errorf("loading comparison dump: %w", err)
	}

	result, err := compare.Images(p.logger, p.table, img, other)
	if err != nil {
		return fmt.Errorf("comparing with %s: %w", opts.Compare, err)
	}
	if err := w.WriteComparison(opts.Compare, result); err != nil {
		return fmt.Errorf("writing comparison: %w", err)
	}
	return nil
}

func exportIntelHex(path string, img *memory.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}

	if err := writer.WriteIntelHex(file, img.Bytes()); err != nil {
		_ = file.Close()
		return fmt.Errorf("exporting intel hex: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", path, err)
	}
	return nil
}

// printInfo prints information about the memory dump being processed.
func (p *Pipeline) printInfo(opts options.Program, img *memory.Image) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing memory dump",
		log.String("file", opts.Input),
		log.Int("size", img.Len()),
	)
	if img.Len() != region.AddressSpaceSize {
		p.logger.Warn("Memory dump does not cover the full address space",
			log.Hex("size", img.Len()),
		)
	}
}
