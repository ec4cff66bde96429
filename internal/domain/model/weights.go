package model

import (
	"fmt"
	"strings"
)

// Metric identifies one of the tracked, weightable team metrics.
type Metric int

// Tracked metrics in their fixed priority order. The order drives label
// extraction and export columns, so append only.
const (
	MetricOPR Metric = iota
	MetricDPR
	MetricCCWM
	MetricAutoScore
	MetricTeleopScore
	MetricEndgameScore
	MetricReliability
	MetricDriverSkill
	MetricDefenseRating
	MetricSpeedRating

	metricCount
)

// MetricCount is the number of tracked metrics.
const MetricCount = int(metricCount)

var metricNames = [MetricCount]string{
	"opr",
	"dpr",
	"ccwm",
	"auto_score",
	"teleop_score",
	"endgame_score",
	"reliability",
	"driver_skill",
	"defense_rating",
	"speed_rating",
}

// Metrics returns all tracked metrics in priority order.
func Metrics() []Metric {
	out := make([]Metric, MetricCount)
	for i := range out {
		out[i] = Metric(i)
	}
	return out
}

// String returns the metric's wire name.
func (m Metric) String() string {
	if m < 0 || int(m) >= MetricCount {
		return fmt.Sprintf("metric(%d)", int(m))
	}
	return metricNames[m]
}

// ParseMetric resolves a wire name to a Metric.
func ParseMetric(name string) (Metric, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range metricNames {
		if n == key {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown metric %q", ErrInvalidWeight, name)
}

// WeightConfiguration holds one non-negative coefficient per tracked metric.
// Weights need not sum to 1; the composite scorer divides by the sum.
type WeightConfiguration struct {
	OPR           float64 `json:"opr" koanf:"opr"`
	DPR           float64 `json:"dpr" koanf:"dpr"`
	CCWM          float64 `json:"ccwm" koanf:"ccwm"`
	AutoScore     float64 `json:"auto_score" koanf:"auto_score"`
	TeleopScore   float64 `json:"teleop_score" koanf:"teleop_score"`
	EndgameScore  float64 `json:"endgame_score" koanf:"endgame_score"`
	Reliability   float64 `json:"reliability" koanf:"reliability"`
	DriverSkill   float64 `json:"driver_skill" koanf:"driver_skill"`
	DefenseRating float64 `json:"defense_rating" koanf:"defense_rating"`
	SpeedRating   float64 `json:"speed_rating" koanf:"speed_rating"`
}

// Get returns the weight for m.
func (w WeightConfiguration) Get(m Metric) float64 {
	switch m {
	case MetricOPR:
		return w.OPR
	case MetricDPR:
		return w.DPR
	case MetricCCWM:
		return w.CCWM
	case MetricAutoScore:
		return w.AutoScore
	case MetricTeleopScore:
		return w.TeleopScore
	case MetricEndgameScore:
		return w.EndgameScore
	case MetricReliability:
		return w.Reliability
	case MetricDriverSkill:
		return w.DriverSkill
	case MetricDefenseRating:
		return w.DefenseRating
	case MetricSpeedRating:
		return w.SpeedRating
	default:
		return 0
	}
}

// Set assigns the weight for m.
func (w *WeightConfiguration) Set(m Metric, v float64) {
	switch m {
	case MetricOPR:
		w.OPR = v
	case MetricDPR:
		w.DPR = v
	case MetricCCWM:
		w.CCWM = v
	case MetricAutoScore:
		w.AutoScore = v
	case MetricTeleopScore:
		w.TeleopScore = v
	case MetricEndgameScore:
		w.EndgameScore = v
	case MetricReliability:
		w.Reliability = v
	case MetricDriverSkill:
		w.DriverSkill = v
	case MetricDefenseRating:
		w.DefenseRating = v
	case MetricSpeedRating:
		w.SpeedRating = v
	}
}

// Sum returns the total of all weights.
func (w WeightConfiguration) Sum() float64 {
	var sum float64
	for _, m := range Metrics() {
		sum += w.Get(m)
	}
	return sum
}

// WeightsFromMap builds a configuration from metric-name keys. Metrics not
// present in the map get weight 0.
func WeightsFromMap(in map[string]float64) (WeightConfiguration, error) {
	var w WeightConfiguration
	for name, v := range in {
		m, err := ParseMetric(name)
		if err != nil {
			return WeightConfiguration{}, err
		}
		w.Set(m, v)
	}
	return w, nil
}
