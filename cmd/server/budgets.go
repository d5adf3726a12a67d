package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/budget"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/perf"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/synthesis"
)

// Sample grid synthesized by the budgets command.
var (
	sampleDays = []int{1, 60, 121, 182, 244, 305, 366}
	sampleAges = []int{6, 12, 18, 30, 45, 65}
)

var errBudgetsExceeded = errors.New("performance budgets exceeded")

func newBudgetsCmd(c *cli) *cobra.Command {
	var (
		rounds int
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Synthesize a sample grid and report performance budgets",
		Long: "budgets synthesizes every sample day, age and tone, repeating the grid so " +
			"later rounds are served from the cache, then prints the monitor's budget checks, " +
			"statistics and generation spend.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rounds < 1 {
				return fmt.Errorf("--rounds must be at least 1, got %d", rounds)
			}
			app, err := newApplication(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer app.cleanup(cmd.Context())

			if err := runSampleGrid(cmd.Context(), app.engine, rounds); err != nil {
				return err
			}

			report := app.monitor.Report()
			now := time.Now()
			printBudgetReport(cmd.OutOrStdout(), report, app.tracker.Summary(now, 1), app.tracker.Alerts(now))
			if strict && !report.Budgets.Compliant {
				return errBudgetsExceeded
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 2, "times to repeat the sample grid")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when a budget is exceeded")
	return cmd
}

func runSampleGrid(ctx context.Context, engine *synthesis.Engine, rounds int) error {
	for range rounds {
		for _, day := range sampleDays {
			for _, age := range sampleAges {
				for _, t := range domain.Tones {
					req := domain.SynthesisRequest{Day: day, Age: age, Tone: t, Language: domain.LanguageEnglish}
					if _, err := engine.Synthesize(ctx, req); err != nil {
						return fmt.Errorf("synthesize %s: %w", req.CacheKey(), err)
					}
				}
			}
		}
	}
	return nil
}

func printBudgetReport(w io.Writer, report perf.Report, spend budget.Summary, alerts []budget.Alert) {
	heading := color.New(color.FgCyan, color.Bold)
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()

	heading.Fprintln(w, "Performance budgets")
	for _, check := range report.Budgets.Checks {
		status := pass("PASS")
		if !check.Compliant {
			status = fail("FAIL")
		}
		fmt.Fprintf(w, "  %s  %-24s avg %8.3fms  budget %6.1fms  samples %d\n",
			status, check.Name, check.AverageMs, check.ThresholdMs, check.Samples)
	}
	if report.Budgets.Compliant {
		fmt.Fprintf(w, "  %s\n\n", pass("all budgets met"))
	} else {
		fmt.Fprintf(w, "  %s\n\n", fail("budgets exceeded"))
	}

	s := report.Stats
	heading.Fprintln(w, "Statistics")
	fmt.Fprintf(w, "  requests %d  syntheses %d  cache hits %d  errors %d\n",
		s.TotalRequests, s.Syntheses, s.CacheHits, s.Errors)
	fmt.Fprintf(w, "  cache hit rate %.1f%%  avg synthesis %.3fms  avg cache hit %.3fms\n\n",
		s.CacheHitRate*100, s.AverageSynthesisMs, s.AverageCacheHitMs)

	heading.Fprintln(w, "Generation spend")
	fmt.Fprintf(w, "  today $%.4f of $%.2f daily budget\n", spend.Total, spend.Limits.Daily)
	for _, a := range alerts {
		fmt.Fprintf(w, "  %s %s spend at %.0f%% ($%.2f of $%.2f)\n",
			warn("ALERT"), a.Period, a.Ratio*100, a.Spent, a.Limit)
	}
	fmt.Fprintln(w)

	if len(report.Recommendations) > 0 {
		heading.Fprintln(w, "Recommendations")
		for _, r := range report.Recommendations {
			fmt.Fprintf(w, "  - %s\n", warn(r))
		}
	}
}
