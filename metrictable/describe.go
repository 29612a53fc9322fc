package metrictable

import (
	"github.com/montanaflynn/stats"
)

// MetricSummary describes the numeric values of one metric across samples.
type MetricSummary struct {
	Metric string
	N      int
	Mean   float64
	Median float64
	SD     float64 // population standard deviation
	Min    float64
	Max    float64
}

// Describe summarizes every column of a sample-by-metric table that has at
// least one numeric value. Non-numeric cells are skipped.
func (t *Table) Describe() ([]MetricSummary, error) {
	out := make([]MetricSummary, 0, len(t.Columns))

	for j, metric := range t.Columns {
		data := make(stats.Float64Data, 0, len(t.Rows))
		for i := range t.Rows {
			if v := ParseNumeric(t.Values[i][j]); v.Valid {
				data = append(data, v.Float64)
			}
		}

		if data.Len() < 1 {
			continue
		}

		summary := MetricSummary{Metric: metric, N: data.Len()}
		var err error
		if summary.Mean, err = data.Mean(); err != nil {
			return nil, err
		}
		if summary.Median, err = data.Median(); err != nil {
			return nil, err
		}
		if summary.SD, err = data.StandardDeviation(); err != nil {
			return nil, err
		}
		if summary.Min, err = data.Min(); err != nil {
			return nil, err
		}
		if summary.Max, err = data.Max(); err != nil {
			return nil, err
		}

		out = append(out, summary)
	}

	return out, nil
}
