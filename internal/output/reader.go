package output

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mishagrol/dscsm/internal/ctxlog"
	"github.com/mishagrol/dscsm/internal/fsutil"
)

// dateLayout parses a concatenated two-digit-year + zero-padded day-of-year
// token, e.g. "23045" for the 45th day of 2023.
const dateLayout = "06002"

// Reader parses requested engine output files out of a workspace.
type Reader struct {
	Workspace string
	Format    FormatDescriptor
}

// NewReader returns a Reader for the given workspace using the provided
// format descriptor.
func NewReader(workspace string, format FormatDescriptor) *Reader {
	return &Reader{Workspace: workspace, Format: format}
}

// Read parses each requested output category into a Table. Every requested
// name must have a matching file in the workspace; a missing file fails the
// whole read with a MissingOutputError.
func (r *Reader) Read(ctx context.Context, names []string) (map[string]*Table, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ListByExtension(r.Workspace, FileSuffix)
	if err != nil {
		return nil, fmt.Errorf("discovering output files: %w", err)
	}
	present := make(map[string]struct{}, len(files))
	for _, f := range files {
		present[filepath.Base(f)] = struct{}{}
	}
	logger.Debug("Discovered engine output files.", "count", len(files))

	tables := make(map[string]*Table, len(names))
	for _, name := range names {
		fileName := name + FileSuffix
		if _, ok := present[fileName]; !ok {
			return nil, &MissingOutputError{Name: name, Workspace: r.Workspace}
		}
		table, err := r.parseFile(filepath.Join(r.Workspace, fileName), name)
		if err != nil {
			return nil, err
		}
		logger.Debug("Parsed output table.", "name", name, "rows", table.NumRows())
		tables[name] = table
	}
	return tables, nil
}

// parseFile reads one output file per the format descriptor: skip the banner
// lines, take the next non-empty line as the column header, then split every
// remaining non-empty line on whitespace.
func (r *Reader) parseFile(path, name string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening output %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for i := 0; i < r.Format.HeaderLines; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("output %s: fewer than %d header lines", path, r.Format.HeaderLines)
		}
	}

	var columns []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		columns = strings.Fields(line)
		break
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("output %s: no column header after %d header lines", path, r.Format.HeaderLines)
	}

	table := &Table{Name: name, Columns: columns}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != len(columns) {
			return nil, fmt.Errorf("output %s: row %d has %d fields, header has %d columns",
				path, len(table.Rows)+1, len(fields), len(columns))
		}
		table.Rows = append(table.Rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading output %s: %w", path, err)
	}

	if err := r.reconstructDates(table); err != nil {
		return nil, fmt.Errorf("output %s: %w", path, err)
	}
	return table, nil
}

// reconstructDates builds the calendar date index when the table carries both
// the year and day-of-year columns named by the descriptor.
func (r *Reader) reconstructDates(t *Table) error {
	if r.Format.YearColumn == "" || r.Format.DayColumn == "" {
		return nil
	}
	yearIdx := t.ColumnIndex(r.Format.YearColumn)
	dayIdx := t.ColumnIndex(r.Format.DayColumn)
	if yearIdx < 0 || dayIdx < 0 {
		return nil
	}

	dates := make([]time.Time, len(t.Rows))
	for i, row := range t.Rows {
		year, err := strconv.Atoi(row[yearIdx])
		if err != nil {
			return fmt.Errorf("row %d: year %q: %w", i+1, row[yearIdx], err)
		}
		day, err := strconv.Atoi(row[dayIdx])
		if err != nil {
			return fmt.Errorf("row %d: day of year %q: %w", i+1, row[dayIdx], err)
		}
		token := fmt.Sprintf("%02d%03d", year%100, day)
		date, err := time.Parse(dateLayout, token)
		if err != nil {
			return fmt.Errorf("row %d: date token %q: %w", i+1, token, err)
		}
		dates[i] = date
	}
	t.Dates = dates
	return nil
}
