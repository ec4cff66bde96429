package model

import "time"

// PickListTeam is one ranked row of a pick list.
type PickListTeam struct {
	RawTeamMetrics

	CompositeScore float64  `json:"composite_score"`
	Rank           int      `json:"rank"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`

	// Picked is flipped by callers during alliance selection. It never
	// affects rank or score.
	Picked bool `json:"picked"`

	AggregatedNotes string `json:"aggregated_notes,omitempty"`
}

// Statistics summarizes a ranked set.
type Statistics struct {
	AvgCompositeScore    float64 `json:"avg_composite_score"`
	MedianCompositeScore float64 `json:"median_composite_score"`
	StdDevCompositeScore float64 `json:"std_dev_composite_score"`
	AvgOPR               float64 `json:"avg_opr"`
	AvgDPR               float64 `json:"avg_dpr"`
	AvgCCWM              float64 `json:"avg_ccwm"`
}

// Metadata accompanies a generated pick list.
type Metadata struct {
	Statistics

	TeamsFiltered int      `json:"teams_filtered"`
	Warnings      []string `json:"warnings"`
}

// PickListResult is the full output of one ranking run.
type PickListResult struct {
	ID              string              `json:"id"`
	EventKey        string              `json:"event_key"`
	Teams           []PickListTeam      `json:"teams"`
	Strategy        string              `json:"strategy"`
	Weights         WeightConfiguration `json:"weights"`
	GeneratedAt     time.Time           `json:"generated_at"`
	TotalCandidates int                 `json:"total_candidates"`
	MinMatches      int                 `json:"min_matches"`
	Metadata        Metadata            `json:"metadata"`
}

// Clone returns a deep copy so stored results can't be mutated through
// returned values.
func (r *PickListResult) Clone() PickListResult {
	out := *r
	out.Teams = make([]PickListTeam, len(r.Teams))
	for i, t := range r.Teams {
		t.Strengths = append([]string(nil), t.Strengths...)
		t.Weaknesses = append([]string(nil), t.Weaknesses...)
		t.Notes = append([]string(nil), t.Notes...)
		out.Teams[i] = t
	}
	out.Metadata.Warnings = append([]string(nil), r.Metadata.Warnings...)
	return out
}
