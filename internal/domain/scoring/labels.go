package scoring

import "github.com/okian/scoutrank/internal/domain/model"

// Default label thresholds on the normalized scale.
const (
	DefaultStrengthThreshold = 0.7
	DefaultWeaknessThreshold = 0.3

	reliabilityStrengthThreshold = 0.9
	reliabilityWeaknessThreshold = 0.7
)

type labelRule struct {
	metric model.Metric
	label  string
	// fixed rules ignore the caller's threshold.
	fixed     bool
	threshold float64
}

// strengthRules and weaknessRules are evaluated in order; the order is the
// order labels appear in output.
var strengthRules = []labelRule{
	{metric: model.MetricOPR, label: "High offensive output (OPR)"},
	{metric: model.MetricDPR, label: "Strong defensive impact (low DPR)"},
	{metric: model.MetricCCWM, label: "Strong contribution to winning margin (CCWM)"},
	{metric: model.MetricAutoScore, label: "Strong autonomous scoring"},
	{metric: model.MetricTeleopScore, label: "Strong teleop scoring"},
	{metric: model.MetricEndgameScore, label: "Consistent endgame points"},
	{metric: model.MetricReliability, label: "Extremely reliable", fixed: true, threshold: reliabilityStrengthThreshold},
	{metric: model.MetricDriverSkill, label: "Skilled driver"},
	{metric: model.MetricDefenseRating, label: "Effective defender"},
	{metric: model.MetricSpeedRating, label: "Fast and agile"},
}

var weaknessRules = []labelRule{
	{metric: model.MetricOPR, label: "Low offensive output (OPR)"},
	{metric: model.MetricDPR, label: "Allows opponents to score (high DPR)"},
	{metric: model.MetricCCWM, label: "Weak contribution to winning margin (CCWM)"},
	{metric: model.MetricAutoScore, label: "Weak autonomous scoring"},
	{metric: model.MetricTeleopScore, label: "Weak teleop scoring"},
	{metric: model.MetricEndgameScore, label: "Unreliable endgame"},
	{metric: model.MetricReliability, label: "Reliability concerns", fixed: true, threshold: reliabilityWeaknessThreshold},
	{metric: model.MetricDriverSkill, label: "Driver skill concerns"},
	{metric: model.MetricDefenseRating, label: "Limited defensive ability"},
	{metric: model.MetricSpeedRating, label: "Slow on the field"},
}

// ExtractStrengths returns labels for metrics at or above the threshold.
// Metrics with no spread across the pool are skipped.
func ExtractStrengths(team *NormalizedTeam, threshold float64) []string {
	out := make([]string, 0, len(strengthRules))
	for _, r := range strengthRules {
		nm := team.Get(r.metric)
		if nm.Range == 0 {
			continue
		}
		t := threshold
		if r.fixed {
			t = r.threshold
		}
		if nm.Normalized >= t {
			out = append(out, r.label)
		}
	}
	return out
}

// ExtractWeaknesses returns labels for metrics at or below the threshold.
// Metrics with no spread across the pool are skipped.
func ExtractWeaknesses(team *NormalizedTeam, threshold float64) []string {
	out := make([]string, 0, len(weaknessRules))
	for _, r := range weaknessRules {
		nm := team.Get(r.metric)
		if nm.Range == 0 {
			continue
		}
		t := threshold
		if r.fixed {
			t = r.threshold
		}
		if nm.Normalized <= t {
			out = append(out, r.label)
		}
	}
	return out
}
