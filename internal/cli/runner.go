package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/okian/scoutrank/internal/app"
	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/picklist"
	"github.com/okian/scoutrank/pkg/logger"
)

// outputPermission is used for files written by the tool.
const outputPermission = 0o644

// Input is the document read by the tool. It matches the POST /picklists body.
type Input struct {
	EventKey   string                 `json:"event_key"`
	Strategy   string                 `json:"strategy"`
	Weights    map[string]float64     `json:"weights"`
	MinMatches *int                   `json:"min_matches"`
	Teams      []model.RawTeamMetrics `json:"teams"`
	Matches    []model.MatchRecord    `json:"matches"`
}

// Run reads the input, ranks it and writes the pick list.
func Run(ctx context.Context, cfg *Config, stdin io.Reader, stdout io.Writer) error {
	if err := cfg.Normalize(); err != nil {
		return fmt.Errorf("%w: %q", err, cfg.Format)
	}

	in, err := readInput(cfg.Input, stdin)
	if err != nil {
		return err
	}

	req, err := buildRequest(cfg, in)
	if err != nil {
		return err
	}

	tieBreak, err := picklist.ParseTieBreak(cfg.TieBreak)
	if err != nil {
		return err
	}

	log := logger.Named("picklist")
	svc := app.New(
		app.WithLogger(log),
		app.WithEngineOptions(picklist.WithTieBreak(tieBreak)),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	result, err := svc.GeneratePickList(ctx, req)
	if err != nil {
		return err
	}
	for _, w := range result.Metadata.Warnings {
		log.Warn(ctx, w)
	}
	if cfg.Verbose {
		log.Info(ctx, "pick list ranked",
			logger.String("event", result.EventKey),
			logger.String("strategy", result.Strategy),
			logger.Int("ranked", len(result.Teams)),
			logger.Int("filtered", result.Metadata.TeamsFiltered))
	}

	return writeOutput(cfg, stdout, func(w io.Writer) error {
		if cfg.Format == FormatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		return picklist.WriteCSV(w, &result)
	})
}

func buildRequest(cfg *Config, in Input) (app.GenerateRequest, error) {
	req := app.GenerateRequest{
		EventKey:   in.EventKey,
		Teams:      in.Teams,
		Strategy:   in.Strategy,
		MinMatches: in.MinMatches,
		Matches:    in.Matches,
	}
	if cfg.Strategy != "" {
		req.Strategy = cfg.Strategy
		in.Weights = nil
	}
	if cfg.MinMatches >= 0 {
		n := cfg.MinMatches
		req.MinMatches = &n
	}
	if in.Weights != nil {
		w, err := model.WeightsFromMap(in.Weights)
		if err != nil {
			return app.GenerateRequest{}, err
		}
		req.Weights = &w
	}
	return req, nil
}

func readInput(path string, stdin io.Reader) (Input, error) {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return Input{}, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		defer f.Close()
		r = f
	}

	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return in, nil
}

func writeOutput(cfg *Config, stdout io.Writer, write func(io.Writer) error) error {
	if cfg.Output == "" || cfg.Output == "-" {
		if err := write(stdout); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputPermission)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
