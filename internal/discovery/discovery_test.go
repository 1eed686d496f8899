package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateCode(t *testing.T) {
	tests := []struct {
		code    string
		want    time.Time
		wantErr bool
	}{
		{"2017001", time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"2017031", time.Date(2017, 1, 31, 0, 0, 0, 0, time.UTC), false},
		{"2016366", time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"2017366", time.Time{}, true},
		{"2017000", time.Time{}, true},
		{"201701", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseDateCode(tt.code)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRanges(t *testing.T) {
	start, end, err := ParseAquaRange("/data/aqua/A20170322017059.L3m_MO_CHL.txt")
	require.NoError(t, err)
	assert.Equal(t, "Feb-01-2017 - Feb-28-2017", RangeLabel(start, end))

	start, end, err = ParseVIIRSRange("V2017001.L3m_DAY_CHL.txt")
	require.NoError(t, err)
	assert.Equal(t, start, end)

	_, _, err = ParseAquaRange("/data/2017001/readme.txt")
	assert.True(t, errors.Is(err, ErrNoDateCode), "directory codes are ignored")
}

func TestPair(t *testing.T) {
	aqua := []string{"A20170322017059.txt", "A20170012017031.txt"}
	viirs := []string{"V20170012017031.txt", "V20170322017059.txt", "V20170602017090.txt"}

	pairs, err := Pair(aqua, viirs)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, "Jan", pairs[0].Key)
	assert.Equal(t, "Jan-01-2017 - Jan-31-2017", pairs[0].Label)
	assert.Equal(t, "A20170012017031.txt", pairs[0].Aqua)
	assert.Equal(t, "V20170012017031.txt", pairs[0].VIIRS)

	assert.Equal(t, "Feb", pairs[1].Key)
	assert.Equal(t, time.February, pairs[1].Start.Month())

	// input order is left untouched
	assert.Equal(t, "A20170322017059.txt", aqua[0])
}

func TestPair_BadName(t *testing.T) {
	_, err := Pair([]string{"aqua.txt"}, []string{"V2017001.txt"})
	assert.Error(t, err)
}

func TestPairDirs(t *testing.T) {
	aquaDir := t.TempDir()
	viirsDir := t.TempDir()

	for _, name := range []string{"A20170012017031.txt", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(aquaDir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(aquaDir, "2017001"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(viirsDir, "V20170012017031.txt"), nil, 0o644))

	files, err := Scan(aquaDir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(aquaDir, "A20170012017031.txt")}, files)

	pairs, err := PairDirs(aquaDir, viirsDir)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "Jan", pairs[0].Key)

	_, err = PairDirs(filepath.Join(aquaDir, "missing"), viirsDir)
	assert.Error(t, err)
}
