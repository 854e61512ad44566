package pollination

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jengzang/pollinator-abundance/internal/models"
)

// metricRule computes one metric from a zone's samples. ok is false when the
// zone has no valid cells for the metric.
type metricRule func(s *zoneSamples) (v float64, ok bool)

// metricRules is indexed by models.Metric; both zones are summarized with this table
var metricRules = [models.NumMetrics]metricRule{
	models.MetricPAMean:   meanOf(func(s *zoneSamples) []float64 { return s.pa }),
	models.MetricPAMedian: quantileOf(0.5),
	models.MetricPAP90:    quantileOf(0.9),
	models.MetricPAStd: func(s *zoneSamples) (float64, bool) {
		if len(s.pa) < 2 {
			return 0, false
		}
		return stat.StdDev(s.pa, nil), true
	},
	models.MetricPATotal: func(s *zoneSamples) (float64, bool) {
		if len(s.pa) == 0 {
			return 0, false
		}
		return floats.Sum(s.pa) * s.cellAreaKm2, true
	},
	// Absent rather than 0 when no PA cell is valid
	models.MetricPACoverage: func(s *zoneSamples) (float64, bool) {
		if s.zoneCells == 0 || len(s.pa) == 0 {
			return 0, false
		}
		return float64(len(s.pa)) / float64(s.zoneCells), true
	},
	models.MetricHNMean: meanOf(func(s *zoneSamples) []float64 { return s.hn }),
	models.MetricFRMean: meanOf(func(s *zoneSamples) []float64 { return s.fr }),
	models.MetricHQI:    meanOf(func(s *zoneSamples) []float64 { return s.hqi }),
}

func meanOf(values func(s *zoneSamples) []float64) metricRule {
	return func(s *zoneSamples) (float64, bool) {
		x := values(s)
		if len(x) == 0 {
			return 0, false
		}
		return stat.Mean(x, nil), true
	}
}

// quantileOf uses the empirical distribution of the valid PA cells
func quantileOf(p float64) metricRule {
	return func(s *zoneSamples) (float64, bool) {
		if len(s.pa) == 0 {
			return 0, false
		}
		sorted := append([]float64(nil), s.pa...)
		sort.Float64s(sorted)
		return stat.Quantile(p, stat.Empirical, sorted, nil), true
	}
}

func summarize(zone string, s *zoneSamples) (models.Summary, error) {
	var out models.Summary
	for _, m := range models.Metrics() {
		v, ok := metricRules[m](s)
		if !ok {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.Summary{}, fmt.Errorf("%s %s evaluated to %g: %w", zone, m, v, ErrComputation)
		}
		out.Set(m, models.Some(v))
	}
	return out, nil
}
