// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/gbmemdump/internal/options"
	"github.com/retroenv/gbmemdump/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

const outputExtension = ".txt"

// ErrOutputIsInput is returned when an output file would overwrite the input file.
var ErrOutputIsInput = errors.New("output file is the input file")

// ProcessFile decodes the input file of the options and writes the result
// to the output file or stdout. The output file is only created after the
// input has been decoded successfully.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	if err := checkOutputPaths(opts); err != nil {
		return err
	}

	pipe := pipeline.New(logger)
	img, err := pipe.Load(opts.Input, opts.Format)
	if err != nil {
		return err
	}

	if opts.Output == "" {
		return pipe.ExecuteWithImage(ctx, img, opts, os.Stdout)
	}

	var buf bytes.Buffer
	if err := pipe.ExecuteWithImage(ctx, img, opts, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing output file %s: %w", opts.Output, err)
	}
	return nil
}

// checkOutputPaths rejects output and export files that resolve to the input file.
func checkOutputPaths(opts options.Program) error {
	for _, output := range []string{opts.Output, opts.ExportHex} {
		if output == "" {
			continue
		}
		same, err := samePath(opts.Input, output)
		if err != nil {
			return err
		}
		if same {
			return fmt.Errorf("%w: %s", ErrOutputIsInput, output)
		}
	}
	return nil
}

func samePath(input, output string) (bool, error) {
	inputPath, err := filepath.Abs(input)
	if err != nil {
		return false, fmt.Errorf("resolving path %s: %w", input, err)
	}
	outputPath, err := filepath.Abs(output)
	if err != nil {
		return false, fmt.Errorf("resolving path %s: %w", output, err)
	}
	if inputPath == outputPath {
		return true, nil
	}

	// links or differently spelled paths to an existing file
	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		return false, nil //nolint:nilerr // a missing input is reported by the loader
	}
	outputInfo, err := os.Stat(outputPath)
	if err != nil {
		return false, nil //nolint:nilerr // output does not exist yet
	}
	return os.SameFile(inputInfo, outputInfo), nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match batch pattern '%s'", opts.Batch)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + outputExtension
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("gbmemdump - Game Boy memory dump decoder",
		log.String("version", buildinfo.Version(version, commit, date)))
}
