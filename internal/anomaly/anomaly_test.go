package anomaly

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madHatter106/state-of-the-climate/internal/climatology"
	"github.com/madHatter106/state-of-the-climate/internal/contracts"
)

func newTable(values map[time.Month][]float64) *contracts.Table {
	t := contracts.NewTable("test", contracts.ColumnMean, true, 0)
	for m := time.January; m <= time.December; m++ {
		for i, v := range values[m] {
			t.Rows = append(t.Rows, contracts.Row{
				Timestamp: time.Date(2010+i, m, 10, 0, 0, 0, 0, time.UTC),
				Record:    contracts.RawRecord{Mean: v},
			})
		}
	}
	return t
}

func climWith(means map[time.Month]float64) *contracts.Climatology {
	c := &contracts.Climatology{Column: contracts.ColumnMean}
	for i := range c.Months {
		m := time.Month(i + 1)
		c.Months[i] = contracts.MonthlyMean{Month: m, Mean: math.NaN()}
		if v, ok := means[m]; ok {
			c.Months[i] = contracts.MonthlyMean{Month: m, Mean: v, Count: 1}
		}
	}
	return c
}

func TestCompute_PercentageScaling(t *testing.T) {
	a := Compute(12, 10)
	assert.InDelta(t, 2.0, a.Value, 1e-12)
	assert.InDelta(t, 20.0, a.Percent, 1e-12)

	a = Compute(5, 10)
	assert.InDelta(t, -5.0, a.Value, 1e-12)
	assert.InDelta(t, -50.0, a.Percent, 1e-12)
}

func TestCompute_Undefined(t *testing.T) {
	a := Compute(3, 0)
	assert.Equal(t, 3.0, a.Value)
	assert.True(t, math.IsNaN(a.Percent))

	a = Compute(3, math.NaN())
	assert.True(t, math.IsNaN(a.Value))
	assert.True(t, math.IsNaN(a.Percent))
}

func TestApply_InPlace(t *testing.T) {
	tbl := newTable(map[time.Month][]float64{
		time.January: {12, 8},
		time.March:   {1},
	})
	c := climWith(map[time.Month]float64{time.January: 10})

	same := tbl
	require.NoError(t, Apply(tbl, c, contracts.ColumnMean))
	assert.Same(t, same, tbl)

	assert.Equal(t, []string{"chl_a_mean", "chl_a_mean_anomaly", "perc_chl_a_mean_anomaly"}, tbl.Labels())

	jan := tbl.Rows[0].Anomalies[contracts.ColumnMean]
	assert.InDelta(t, 2.0, jan.Value, 1e-12)
	assert.InDelta(t, 20.0, jan.Percent, 1e-12)

	jan2 := tbl.Rows[1].Anomalies[contracts.ColumnMean]
	assert.InDelta(t, -2.0, jan2.Value, 1e-12)
	assert.InDelta(t, -20.0, jan2.Percent, 1e-12)

	// March has no climatology: undefined propagates
	mar := tbl.Rows[2].Anomalies[contracts.ColumnMean]
	assert.True(t, math.IsNaN(mar.Value))
	assert.True(t, math.IsNaN(mar.Percent))
}

func TestApply_Identity(t *testing.T) {
	values := map[time.Month][]float64{}
	for m := time.January; m <= time.December; m++ {
		values[m] = []float64{0.1 * float64(m), 0.37 * float64(m), 1.9 + float64(m)}
	}
	tbl := newTable(values)

	c, err := climatology.MonthlyMeans(tbl, contracts.ColumnMean, climatology.Window{})
	require.NoError(t, err)
	require.NoError(t, Apply(tbl, c, contracts.ColumnMean))

	for i, row := range tbl.Rows {
		v, err := tbl.Value(i, contracts.ColumnMean)
		require.NoError(t, err)

		a, err := tbl.Lookup(i, contracts.ColumnMean.AnomalyLabel())
		require.NoError(t, err)

		assert.InDelta(t, v, c.Mean(row.Timestamp.Month())+a, 1e-12)
	}
}

func TestApply_Overwrites(t *testing.T) {
	tbl := newTable(map[time.Month][]float64{time.July: {4}})

	require.NoError(t, Apply(tbl, climWith(map[time.Month]float64{time.July: 2}), contracts.ColumnMean))
	require.NoError(t, Apply(tbl, climWith(map[time.Month]float64{time.July: 4}), contracts.ColumnMean))

	assert.Equal(t, 0.0, tbl.Rows[0].Anomalies[contracts.ColumnMean].Value)
	assert.Len(t, tbl.Labels(), 3)
}

func TestApplyWithPolicy_Strict(t *testing.T) {
	tbl := newTable(map[time.Month][]float64{
		time.January: {1},
		time.April:   {2},
	})
	c := climWith(map[time.Month]float64{time.January: 1, time.April: 0})

	err := ApplyWithPolicy(tbl, c, contracts.ColumnMean, PolicyStrict)
	assert.True(t, errors.Is(err, contracts.ErrDivisionUndefined))
	assert.Nil(t, tbl.Rows[0].Anomalies, "strict policy must not partially mutate")

	require.NoError(t, ApplyWithPolicy(tbl, c, contracts.ColumnMean, PolicyUndefined))
	assert.True(t, math.IsNaN(tbl.Rows[1].Anomalies[contracts.ColumnMean].Percent))
	assert.Equal(t, 2.0, tbl.Rows[1].Anomalies[contracts.ColumnMean].Value)
}

func TestApply_UnknownColumn(t *testing.T) {
	tbl := newTable(map[time.Month][]float64{time.July: {4}})
	err := Apply(tbl, climWith(nil), contracts.ColumnMedian)
	assert.True(t, errors.Is(err, contracts.ErrUnknownColumn))

	full := contracts.NewTable("full", contracts.ColumnMean, false, 1)
	full.Rows = append(full.Rows, contracts.Row{
		Timestamp: time.Date(2010, time.July, 10, 0, 0, 0, 0, time.UTC),
		Record:    contracts.RawRecord{Mean: 10, Median: 100},
	})
	medianClim, err := climatology.MonthlyMeans(full, contracts.ColumnMedian, climatology.Window{})
	require.NoError(t, err)

	err = Apply(full, medianClim, contracts.ColumnMean)
	assert.True(t, errors.Is(err, contracts.ErrUnknownColumn))
	assert.Empty(t, full.Rows[0].Anomalies)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("strict")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyUndefined, p)

	_, err = ParsePolicy("infinite")
	assert.Error(t, err)
}
