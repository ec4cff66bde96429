package opr

import (
	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/numeric"
)

// enrichPlaces is the precision kept for derived phase averages.
const enrichPlaces = 2

// Enrich returns a copy of teams with absent phase averages filled from the
// report. Values the caller supplied are kept. Components that failed leave
// the field absent.
func Enrich(teams []model.RawTeamMetrics, report *Report) []model.RawTeamMetrics {
	targets := []struct {
		component string
		field     func(t *model.RawTeamMetrics) **float64
	}{
		{Auto, func(t *model.RawTeamMetrics) **float64 { return &t.AvgAutoScore }},
		{TeleopHub, func(t *model.RawTeamMetrics) **float64 { return &t.AvgTeleopScore }},
		{Endgame, func(t *model.RawTeamMetrics) **float64 { return &t.AvgEndgameScore }},
		{TotalHub, func(t *model.RawTeamMetrics) **float64 { return &t.AvgHubScore }},
	}

	out := make([]model.RawTeamMetrics, len(teams))
	copy(out, teams)
	for i := range out {
		for _, tg := range targets {
			field := tg.field(&out[i])
			if *field != nil {
				continue
			}
			if v, ok := report.Contribution(tg.component, out[i].TeamNumber); ok {
				*field = model.Float(numeric.Round(v, enrichPlaces))
			}
		}
	}
	return out
}
