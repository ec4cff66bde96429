package opr

import (
	"github.com/okian/scoutrank/internal/domain/model"
)

// Extractor pulls one scoring component out of an alliance breakdown. The
// bool is false when the breakdown did not report the component.
type Extractor func(b *model.ScoreBreakdown) (float64, bool)

// Component is a named, extractable slice of an alliance score.
type Component struct {
	Name    string
	Extract Extractor
}

// Component names.
const (
	Auto      = "auto"
	TeleopHub = "teleop_hub"
	Endgame   = "endgame"
	TotalHub  = "total_hub"
)

func optionalPoints(get func(b *model.ScoreBreakdown) *float64) Extractor {
	return func(b *model.ScoreBreakdown) (float64, bool) {
		if v := get(b); v != nil {
			return *v, true
		}
		return 0, false
	}
}

var defaultComponents = []Component{
	{Name: Auto, Extract: optionalPoints(func(b *model.ScoreBreakdown) *float64 { return b.AutoPoints })},
	{Name: TeleopHub, Extract: optionalPoints(func(b *model.ScoreBreakdown) *float64 { return b.TeleopHubPoints })},
	{Name: Endgame, Extract: optionalPoints(func(b *model.ScoreBreakdown) *float64 { return b.EndgamePoints })},
	{Name: TotalHub, Extract: optionalPoints(func(b *model.ScoreBreakdown) *float64 { return b.TotalHubPoints })},
}

// DefaultComponents returns the four phase components in a fresh slice.
func DefaultComponents() []Component {
	return append([]Component(nil), defaultComponents...)
}

// ComponentByName looks up one of the default components.
func ComponentByName(name string) (Component, bool) {
	for _, c := range defaultComponents {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}
