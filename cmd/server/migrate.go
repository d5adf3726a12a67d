package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/platform/postgres"
)

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down|status|version",
		Short:     "Manage the curriculum database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateVersion},
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Database.URL == "" {
				return errDatabaseNotConfigured
			}
			db, err := postgres.Open(cmd.Context(), c.cfg.Database.URL, c.logger)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			report, err := postgres.Migrate(cmd.Context(), db, args[0], c.logger)
			if err != nil {
				return err
			}
			printMigrationReport(cmd, report)
			return nil
		},
	}
}

func printMigrationReport(cmd *cobra.Command, report *postgres.MigrationReport) {
	w := cmd.OutOrStdout()
	ok := color.New(color.FgGreen).SprintFunc()
	pending := color.New(color.FgYellow).SprintFunc()

	for _, res := range report.Applied {
		if res == nil || res.Source == nil {
			continue
		}
		fmt.Fprintf(w, "%s %s %s (%s)\n", ok(res.Direction), res.Source.Path, res.Duration.Round(time.Millisecond), ok("OK"))
	}
	for _, st := range report.Status {
		if st == nil || st.Source == nil {
			continue
		}
		state := pending(string(st.State))
		if !st.AppliedAt.IsZero() {
			state = ok(string(st.State)) + " " + st.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%-40s %s\n", st.Source.Path, state)
	}
	fmt.Fprintf(w, "schema version %d\n", report.Version)
}
