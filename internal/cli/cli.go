// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/gbmemdump/internal/loader"
	"github.com/retroenv/gbmemdump/internal/options"
	"github.com/retroenv/gbmemdump/internal/region"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" && opts.Batch == "" {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: gbmemdump [options] <memory dump file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after memory dump file, please pass the file to decode as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	format, err := loader.FormatFromString(opts.Format)
	if err != nil {
		return fmt.Errorf("%w. Valid options: auto, bin, hex", err)
	}
	opts.Format = string(format)

	if opts.Region != "" {
		r, ok := region.GameBoy().Find(opts.Region)
		if !ok {
			return fmt.Errorf("unknown region '%s'. Valid options: %s", opts.Region, regionNames())
		}
		opts.Region = r.Name
	}

	if opts.Dump != "" {
		rng, err := parseRange(opts.Dump)
		if err != nil {
			return err
		}
		opts.DumpRange = rng
		opts.HasDumpRange = true
	}

	if opts.Batch != "" && opts.ExportHex != "" {
		return errors.New("intel hex export is not supported in batch mode")
	}

	return nil
}

// parseRange parses a range given as offset:length, both values accept
// a 0x prefix for hexadecimal notation.
func parseRange(s string) (options.Range, error) {
	offsetPart, lengthPart, ok := strings.Cut(s, ":")
	if !ok {
		return options.Range{}, fmt.Errorf("invalid dump range '%s', expected offset:length", s)
	}

	offset, err := strconv.ParseUint(offsetPart, 0, 32)
	if err != nil {
		return options.Range{}, fmt.Errorf("invalid dump offset '%s': %w", offsetPart, err)
	}
	length, err := strconv.ParseUint(lengthPart, 0, 32)
	if err != nil {
		return options.Range{}, fmt.Errorf("invalid dump length '%s': %w", lengthPart, err)
	}

	return options.Range{
		Offset: int(offset),
		Length: int(length),
	}, nil
}

func regionNames() string {
	regions := region.GameBoy().Regions()
	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input memory dump file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask, for example bin/memory_*.bin")
	flags.StringVar(&opts.Compare, "compare", "", "name of a second memory dump to compare the input against")
	flags.StringVar(&opts.ExportHex, "export-hex", "", "name of an Intel HEX file to export the memory dump to")
	flags.StringVar(&opts.Format, "f", "auto", "input file format (auto/bin/hex)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.NoColor, "nocolor", false, "disable colored output")

	flags.BoolVar(&opts.All, "all", false, "output all sections that the memory dump covers")
	flags.BoolVar(&opts.Header, "header", false, "output the cartridge header")
	flags.BoolVar(&opts.Interrupts, "interrupts", false, "output the interrupt handler slots")
	flags.BoolVar(&opts.Registers, "registers", false, "output the I/O registers")
	flags.BoolVar(&opts.Objects, "objects", false, "output the object attribute memory")
	flags.BoolVar(&opts.Regions, "regions", false, "output the memory region map")
	flags.StringVar(&opts.Region, "region", "", "hex dump the memory region with the given name, for example \"High RAM\"")
	flags.StringVar(&opts.Dump, "dump", "", "hex dump a range given as offset:length, for example 0x100:0x50")
}
