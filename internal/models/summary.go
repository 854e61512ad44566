package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Metric identifies one zonal statistic. The set is closed: every summary carries all of them.
type Metric int

const (
	MetricPAMean Metric = iota
	MetricPAMedian
	MetricPAP90
	MetricPAStd
	MetricPATotal
	MetricPACoverage
	MetricHNMean
	MetricFRMean
	MetricHQI

	NumMetrics
)

var metricKeys = [NumMetrics]string{
	MetricPAMean:     "PA_mean",
	MetricPAMedian:   "PA_median",
	MetricPAP90:      "PA_p90",
	MetricPAStd:      "PA_std",
	MetricPATotal:    "PA_total",
	MetricPACoverage: "PA_coverage",
	MetricHNMean:     "HN_mean",
	MetricFRMean:     "FR_mean",
	MetricHQI:        "HQI",
}

// Metrics returns every metric in output order
func Metrics() []Metric {
	out := make([]Metric, NumMetrics)
	for i := range out {
		out[i] = Metric(i)
	}
	return out
}

// Key returns the wire name of the metric
func (m Metric) Key() string {
	if m < 0 || m >= NumMetrics {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricKeys[m]
}

func (m Metric) String() string { return m.Key() }

// ParseMetric maps a wire name back to its Metric
func ParseMetric(key string) (Metric, error) {
	for i, k := range metricKeys {
		if k == key {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("unknown metric key %q", key)
}

// Value is an optional metric value. The zero Value is absent.
type Value struct {
	Float float64
	Valid bool
}

// Some returns a present value
func Some(v float64) Value { return Value{Float: v, Valid: true} }

// None returns an absent value
func None() Value { return Value{} }

// Ptr returns nil for an absent value
func (v Value) Ptr() *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float
	return &f
}

// MarshalJSON encodes an absent value as null
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

// UnmarshalJSON accepts a number or null
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = None()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// Summary holds one value per metric for a zone (or the delta between zones)
type Summary [NumMetrics]Value

// Get returns the value of metric m
func (s Summary) Get(m Metric) Value { return s[m] }

// Set stores the value of metric m
func (s *Summary) Set(m Metric, v Value) { s[m] = v }

// Map returns the summary keyed by wire name, nil for absent values
func (s Summary) Map() map[string]*float64 {
	out := make(map[string]*float64, NumMetrics)
	for i, v := range s {
		out[metricKeys[i]] = v.Ptr()
	}
	return out
}

// SummaryFromMap builds a summary from wire names, rejecting unknown keys.
// Keys that are not present are absent.
func SummaryFromMap(values map[string]*float64) (Summary, error) {
	var s Summary
	for key, v := range values {
		m, err := ParseMetric(key)
		if err != nil {
			return Summary{}, err
		}
		if v != nil {
			s[m] = Some(*v)
		}
	}
	return s, nil
}

// MarshalJSON writes every metric key in declaration order
func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(metricKeys[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := v.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", metricKeys[i], err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of metric keys, rejecting unknown keys
func (s *Summary) UnmarshalJSON(data []byte) error {
	var raw map[string]*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out, err := SummaryFromMap(raw)
	if err != nil {
		return err
	}
	*s = out
	return nil
}
