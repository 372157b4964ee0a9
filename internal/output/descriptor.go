package output

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSuffix is the extension the engine uses for every output file.
const FileSuffix = ".OUT"

// FormatDescriptor describes the layout of an engine output file. The
// zero value is not valid; use DefaultFormat or load one from YAML.
type FormatDescriptor struct {
	// Version identifies the descriptor revision. Only version 1 is defined.
	Version int `yaml:"version"`

	// HeaderLines is the number of banner lines preceding the column header.
	HeaderLines int `yaml:"header_lines"`

	// YearColumn and DayColumn name the two-digit-year and day-of-year
	// columns. When both are present in a table, a calendar date index is
	// reconstructed from them.
	YearColumn string `yaml:"year_column"`
	DayColumn  string `yaml:"day_column"`
}

// DefaultFormat returns the version 1 descriptor matching the engine's
// current output layout: five banner lines, then an @-prefixed column
// header, then whitespace-delimited rows.
func DefaultFormat() FormatDescriptor {
	return FormatDescriptor{
		Version:     1,
		HeaderLines: 5,
		YearColumn:  "@YEAR",
		DayColumn:   "DOY",
	}
}

// Validate checks that the descriptor is internally consistent.
func (d FormatDescriptor) Validate() error {
	if d.Version != 1 {
		return fmt.Errorf("output format: unsupported descriptor version %d", d.Version)
	}
	if d.HeaderLines < 0 {
		return fmt.Errorf("output format: header_lines must not be negative, got %d", d.HeaderLines)
	}
	if (d.YearColumn == "") != (d.DayColumn == "") {
		return fmt.Errorf("output format: year_column and day_column must be set together")
	}
	return nil
}

// ParseFormatYAML decodes and validates a format descriptor payload.
func ParseFormatYAML(data []byte) (FormatDescriptor, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return FormatDescriptor{}, fmt.Errorf("output format: descriptor payload is empty")
	}
	var d FormatDescriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return FormatDescriptor{}, fmt.Errorf("output format: decode descriptor: %w", err)
	}
	if err := d.Validate(); err != nil {
		return FormatDescriptor{}, err
	}
	return d, nil
}

// LoadFormatFile reads a YAML descriptor from disk. A missing path is not an
// error: the built-in default format is returned so deployments only carry a
// descriptor file when the engine's layout has drifted.
func LoadFormatFile(path string) (FormatDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFormat(), nil
		}
		return FormatDescriptor{}, fmt.Errorf("output format: read %s: %w", path, err)
	}
	d, err := ParseFormatYAML(data)
	if err != nil {
		return FormatDescriptor{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
