// Package discovery finds sensor record files and pairs them by the period
// encoded in their names (yyyyddd date codes, e.g. A20170012017031).
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
)

// ErrNoDateCode is returned when a file name carries no yyyyddd code
var ErrNoDateCode = errors.New("no yyyyddd date code in file name")

// LabelLayout formats each end of a period label
const LabelLayout = "Jan-02-2006"

var (
	aquaDateRe  = regexp.MustCompile(`A?(\d{7})`)
	viirsDateRe = regexp.MustCompile(`V?(\d{7})`)
)

// ParseDateCode parses a yyyyddd code (day of year is 1-based)
func ParseDateCode(code string) (time.Time, error) {
	if len(code) != 7 {
		return time.Time{}, fmt.Errorf("date code %q: want 7 digits", code)
	}
	year, err := strconv.Atoi(code[:4])
	if err != nil {
		return time.Time{}, fmt.Errorf("date code %q: %w", code, err)
	}
	doy, err := strconv.Atoi(code[4:])
	if err != nil {
		return time.Time{}, fmt.Errorf("date code %q: %w", code, err)
	}

	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	daysInYear := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
	if doy < 1 || doy > daysInYear {
		return time.Time{}, fmt.Errorf("date code %q: day %d out of range", code, doy)
	}
	return jan1.AddDate(0, 0, doy-1), nil
}

// ParseAquaRange extracts the period of a MODIS-Aqua file name
func ParseAquaRange(path string) (time.Time, time.Time, error) {
	return parseRange(aquaDateRe, path)
}

// ParseVIIRSRange extracts the period of a VIIRS file name
func ParseVIIRSRange(path string) (time.Time, time.Time, error) {
	return parseRange(viirsDateRe, path)
}

// parseRange uses the first two codes of the base name; a single code is a
// one-day period
func parseRange(re *regexp.Regexp, path string) (time.Time, time.Time, error) {
	matches := re.FindAllStringSubmatch(filepath.Base(path), 2)
	if len(matches) == 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%s: %w", path, ErrNoDateCode)
	}

	start, err := ParseDateCode(matches[0][1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%s: %w", path, err)
	}
	end := start
	if len(matches) > 1 {
		if end, err = ParseDateCode(matches[1][1]); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	return start, end, nil
}

// RangeLabel formats a period as "Jan-01-2017 - Jan-31-2017"
func RangeLabel(start, end time.Time) string {
	return start.Format(LabelLayout) + " - " + end.Format(LabelLayout)
}

// Pair sorts both lists and matches the i-th Aqua file with the i-th VIIRS
// file. Extra files on the longer side are ignored. The period and key come
// from the Aqua name.
func Pair(aqua, viirs []string) ([]contracts.FilePair, error) {
	aqua = sortedCopy(aqua)
	viirs = sortedCopy(viirs)

	n := len(aqua)
	if len(viirs) < n {
		n = len(viirs)
	}

	pairs := make([]contracts.FilePair, 0, n)
	for i := 0; i < n; i++ {
		start, end, err := ParseAquaRange(aqua[i])
		if err != nil {
			return nil, err
		}
		if _, _, err := ParseVIIRSRange(viirs[i]); err != nil {
			return nil, err
		}

		label := RangeLabel(start, end)
		pairs = append(pairs, contracts.FilePair{
			Key:   label[:3],
			Label: label,
			Aqua:  aqua[i],
			VIIRS: viirs[i],
			Start: start,
			End:   end,
		})
	}
	return pairs, nil
}

// Scan lists the regular files of dir whose names carry a date code, sorted
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !viirsDateRe.MatchString(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// PairDirs scans both directories and pairs their files
func PairDirs(aquaDir, viirsDir string) ([]contracts.FilePair, error) {
	aqua, err := Scan(aquaDir)
	if err != nil {
		return nil, err
	}
	viirs, err := Scan(viirsDir)
	if err != nil {
		return nil, err
	}
	return Pair(aqua, viirs)
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
