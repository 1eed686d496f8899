// Package loader reads whitespace-delimited chlorophyll record sources into
// Time-Indexed Tables.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
	"github.com/madHatter106/state-of-the-climate/internal/timeconv"
)

// fieldCount is the number of fields per record: time nbins mean median stdv
const fieldCount = 5

// Options holds options for table loading
type Options struct {
	// Minimal keeps only the mean column (exposed as chl_a_mean)
	Minimal bool
	// Name labels the resulting table; LoadFile defaults it to the file stem
	Name string
}

// DefaultOptions returns default options for table loading
func DefaultOptions() Options {
	return Options{Minimal: true}
}

// LoadFile loads a record source file
func LoadFile(path string, opts Options) (*contracts.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record source: %w", err)
	}
	defer file.Close()

	if opts.Name == "" {
		opts.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	t, err := Load(file, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Load reads every line of r into a table indexed by calendar timestamp.
// Blank lines are skipped; any other line that is not five numbers fails the
// whole load with a *contracts.MalformedRecordError.
func Load(r io.Reader, opts Options) (*contracts.Table, error) {
	t := contracts.NewTable(opts.Name, contracts.ColumnMean, opts.Minimal, 0)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := ParseRecord(line)
		if err != nil {
			if mre, ok := err.(*contracts.MalformedRecordError); ok {
				mre.Line = lineNo
			}
			return nil, err
		}

		if opts.Minimal {
			rec = contracts.RawRecord{Time: rec.Time, Mean: rec.Mean}
		}

		t.Rows = append(t.Rows, contracts.Row{
			Timestamp: timeconv.ToTimestamp(rec.Time),
			Record:    rec,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read record source: %w", err)
	}

	return t, nil
}

// ParseRecord parses a single "time nbins mean median stdv" line
func ParseRecord(line string) (contracts.RawRecord, error) {
	fields := strings.Fields(line)
	if len(fields) != fieldCount {
		return contracts.RawRecord{}, &contracts.MalformedRecordError{
			Text:   line,
			Reason: fmt.Sprintf("expected %d fields, got %d", fieldCount, len(fields)),
		}
	}

	var values [fieldCount]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return contracts.RawRecord{}, &contracts.MalformedRecordError{
				Text:   line,
				Reason: fmt.Sprintf("field %d is not a number", i+1),
				Err:    err,
			}
		}
		values[i] = v
	}

	if math.IsNaN(values[0]) || math.IsInf(values[0], 0) {
		return contracts.RawRecord{}, &contracts.MalformedRecordError{
			Text:   line,
			Reason: "time is not finite",
		}
	}

	return contracts.RawRecord{
		Time:   values[0],
		NBins:  values[1],
		Mean:   values[2],
		Median: values[3],
		Stdv:   values[4],
	}, nil
}
