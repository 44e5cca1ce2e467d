// Package batch converts every iCompta export of a directory, one ledger file
// per export.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/icompta-ledger/internal/converter"
	"fjacquet/icompta-ledger/internal/icompta"
	"fjacquet/icompta-ledger/internal/logging"
	"fjacquet/icompta-ledger/internal/models"
)

// FileResult is the outcome of converting one export.
type FileResult struct {
	Input   string
	Output  string
	Entries int
	Skipped int
	Err     error
}

// Summary collects the results of a directory run, in file name order.
type Summary struct {
	Files     []FileResult
	Converted int
	Failed    int
	Ignored   int
}

// Processor converts the exports of a directory with one Converter.
type Processor struct {
	converter *converter.Converter
	logger    logging.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(conv *converter.Converter, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{converter: conv, logger: logger}
}

// FindExports returns the .csv files of dir sorted by name.
func FindExports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ConvertDirectory converts each export of inputDir into outputDir. template
// supplies every option except Input and Output. Files that do not look like
// iCompta exports are ignored; a failing file is recorded and the run
// continues with the next one.
func (p *Processor) ConvertDirectory(inputDir, outputDir string, template converter.Options) (Summary, error) {
	files, err := FindExports(inputDir)
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(outputDir, models.PermissionDirectory); err != nil {
		return Summary{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	var summary Summary
	if len(files) == 0 {
		p.logger.Warn("No CSV files found in input directory",
			logging.F("input_dir", inputDir))
		return summary, nil
	}

	p.logger.Info("Found files for processing", logging.F(logging.FieldCount, len(files)))

	readerOpts := icompta.Options{
		Encoding:   template.Encoding,
		SkipHeader: template.SkipHeader,
		Delimiter:  template.Delimiter,
	}

	for _, file := range files {
		valid, err := icompta.ValidateFormat(file, readerOpts)
		if err != nil || !valid {
			log := p.logger
			if err != nil {
				log = log.WithError(err)
			}
			log.Warn("Skipping file that is not an iCompta export",
				logging.F(logging.FieldInputFile, filepath.Base(file)))
			summary.Ignored++
			continue
		}

		opts := template
		opts.Input = file
		opts.Output = filepath.Join(outputDir, filepath.Base(converter.DefaultOutputPath(file)))

		res, err := p.converter.Convert(opts)
		result := FileResult{Input: file, Output: opts.Output, Entries: res.Entries, Skipped: res.Skipped, Err: err}
		summary.Files = append(summary.Files, result)
		if err != nil {
			p.logger.WithError(err).Error("Failed to convert file",
				logging.F(logging.FieldInputFile, file))
			summary.Failed++
			continue
		}
		summary.Converted++
	}

	p.logger.Info("Batch conversion finished",
		logging.F("converted", summary.Converted),
		logging.F("failed", summary.Failed),
		logging.F("ignored", summary.Ignored))
	return summary, nil
}
