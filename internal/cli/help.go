package cli

import "io"

// ShowHelp prints usage information for the pick-list tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Pick-list Tool
==============

Ranks alliance candidates offline from a JSON document shaped like the
POST /picklists request body.

Usage:
  go run ./cmd/picklist [options]

Options:
  -in string
        Input JSON file, "-" for stdin (default "-")
  -out string
        Output file, "-" for stdout (default "-")
  -format string
        csv or json (default "csv")
  -strategy string
        Override the input strategy (balanced, offensive, defensive, reliable)
  -min-matches int
        Override the input min_matches (default: use input)
  -tie-break string
        Order of equal scores: input, opr, team_number (default "input")
  -log-level string
        debug, info, warn, error (default "warn")
  -verbose
        Log a summary of the ranked list
  -help
        Show this help message

Examples:
  # Rank an export from the scouting app with the defensive preset
  go run ./cmd/picklist -in 2026casj.json -strategy defensive -out 2026casj.csv
`)
}
