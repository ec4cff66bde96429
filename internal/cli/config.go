// Package cli implements the offline pick-list tool: JSON in, CSV or JSON out.
package cli

import (
	"errors"
	"strings"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Error constants.
var (
	ErrInvalidFormat = errors.New("invalid output format")
	ErrReadInput     = errors.New("read input failed")
	ErrWriteOutput   = errors.New("write output failed")
)

// Config holds the tool's flags.
type Config struct {
	// Input is a JSON file path; empty or "-" reads stdin.
	Input string
	// Output is a file path; empty or "-" writes stdout.
	Output string
	// Format is csv or json.
	Format string
	// Strategy overrides the input's strategy when set.
	Strategy string
	// MinMatches overrides the input's min_matches when non-negative.
	MinMatches int
	// TieBreak orders equal scores: input, opr or team_number.
	TieBreak string
	Verbose  bool
}

// Normalize fills defaults and validates the format.
func (c *Config) Normalize() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = FormatCSV
	}
	if c.Format != FormatCSV && c.Format != FormatJSON {
		return ErrInvalidFormat
	}
	return nil
}
