package picklist

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/okian/scoutrank/internal/domain/model"
)

// CSVHeader is the column layout written by WriteCSV.
var CSVHeader = []string{
	"rank", "team_number", "name", "composite_score", "matches_played",
	"opr", "dpr", "ccwm",
	"avg_auto_score", "avg_teleop_score", "avg_endgame_score", "reliability_score",
	"strengths", "weaknesses", "picked", "notes",
}

// metaLine keeps each metadata value on its own '#' line.
var metaLine = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// WriteCSV writes result as CSV: '#'-prefixed metadata lines, a header row,
// then one row per team in rank order.
func WriteCSV(w io.Writer, result *model.PickListResult) error {
	meta := []string{
		"event: " + result.EventKey,
		"strategy: " + result.Strategy,
		"generated: " + result.GeneratedAt.UTC().Format(time.RFC3339),
		fmt.Sprintf("candidates: %d", result.TotalCandidates),
		fmt.Sprintf("min matches: %d", result.MinMatches),
		fmt.Sprintf("filtered: %d", result.Metadata.TeamsFiltered),
		fmt.Sprintf("avg score: %s", formatFloat(result.Metadata.AvgCompositeScore)),
		fmt.Sprintf("median score: %s", formatFloat(result.Metadata.MedianCompositeScore)),
		fmt.Sprintf("std dev: %s", formatFloat(result.Metadata.StdDevCompositeScore)),
	}
	for _, warn := range result.Metadata.Warnings {
		meta = append(meta, "warning: "+warn)
	}
	for _, line := range meta {
		if _, err := io.WriteString(w, "# "+metaLine.Replace(line)+"\n"); err != nil {
			return fmt.Errorf("write csv metadata: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range result.Teams {
		if err := cw.Write(csvRow(&result.Teams[i])); err != nil {
			return fmt.Errorf("write csv row for team %d: %w", result.Teams[i].TeamNumber, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func csvRow(t *model.PickListTeam) []string {
	return []string{
		strconv.Itoa(t.Rank),
		strconv.Itoa(t.TeamNumber),
		t.DisplayName(),
		formatFloat(t.CompositeScore),
		strconv.Itoa(t.MatchesPlayed),
		formatFloat(t.OPR),
		formatFloat(t.DPR),
		formatFloat(t.CCWM),
		formatOptional(t.AvgAutoScore),
		formatOptional(t.AvgTeleopScore),
		formatOptional(t.AvgEndgameScore),
		formatOptional(t.ReliabilityScore),
		strings.Join(t.Strengths, "; "),
		strings.Join(t.Weaknesses, "; "),
		strconv.FormatBool(t.Picked),
		t.AggregatedNotes,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
