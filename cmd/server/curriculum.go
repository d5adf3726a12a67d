package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/curriculum"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/perf"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/platform/postgres"
)

func newCurriculumCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curriculum",
		Short: "Inspect and load curriculum data",
	}

	var dir string
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Copy curriculum shards into Postgres",
		Long:  "seed upserts every day of the embedded curriculum, or of --dir, into the curriculum_days table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.Database.URL == "" {
				return errDatabaseNotConfigured
			}
			db, err := postgres.Open(cmd.Context(), c.cfg.Database.URL, c.logger)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			var src curriculum.ShardSource = curriculum.NewEmbeddedSource()
			if dir != "" {
				src = curriculum.NewDirSource(dir)
			}
			n, err := postgres.Seed(cmd.Context(), db, src, c.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d curriculum days\n", n)
			return nil
		},
	}
	seed.Flags().StringVar(&dir, "dir", "", "read shards from this directory instead of the embedded set")

	check := &cobra.Command{
		Use:   "check",
		Short: "Load every shard from the configured source and report missing days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := &application{config: c.cfg, logger: c.logger}
			defer app.cleanup(cmd.Context())

			src, err := app.shardSource(cmd.Context())
			if err != nil {
				return err
			}
			monitor := perf.NewMonitor(c.logger)
			defer monitor.Shutdown()
			store, err := curriculum.NewStore(src, c.logger, curriculum.WithStageRecorder(monitor))
			if err != nil {
				return err
			}
			if err := store.LoadAll(cmd.Context()); err != nil {
				return fmt.Errorf("curriculum incomplete: %w", err)
			}

			load := monitor.Stats().Metrics[string(perf.StageDNALoad)]
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d shards loaded from %s source (avg %.2fms, max %.2fms)\n",
				store.ShardsLoaded(), curriculum.ShardCount, c.cfg.Curriculum.Source, load.AverageMs, load.MaxMs)
			return nil
		},
	}

	cmd.AddCommand(seed, check)
	return cmd
}
