package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/scoutrank/internal/cli"
	"github.com/okian/scoutrank/pkg/logger"
)

func main() {
	var (
		input      = flag.String("in", "-", "Input JSON file, - for stdin")
		output     = flag.String("out", "-", "Output file, - for stdout")
		format     = flag.String("format", cli.FormatCSV, "Output format: csv or json")
		strategy   = flag.String("strategy", "", "Override the input strategy")
		minMatches = flag.Int("min-matches", -1, "Override the input min_matches")
		tieBreak   = flag.String("tie-break", "input", "Order of equal scores: input, opr, team_number")
		logLevel   = flag.String("log-level", "warn", "Log level")
		verbose    = flag.Bool("verbose", false, "Log a summary of the ranked list")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		cli.ShowHelp(os.Stdout)
		return
	}

	// Logs go to stderr so stdout stays a clean CSV/JSON stream.
	if err := logger.Init(logger.WithLevel(*logLevel), logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &cli.Config{
		Input:      *input,
		Output:     *output,
		Format:     *format,
		Strategy:   *strategy,
		MinMatches: *minMatches,
		TieBreak:   *tieBreak,
		Verbose:    *verbose,
	}
	if err := cli.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		os.Stderr.WriteString("picklist: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
