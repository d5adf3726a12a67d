package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/config"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/platform/logger"
)

// cli holds state shared by every subcommand.
type cli struct {
	configPath string
	envFile    string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "lessond",
		Short:         "Personalized lesson synthesis service",
		Long:          "lessond synthesizes daily lessons adapted to a learner's age, a narrator tone and a language.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: ./config.yaml if present)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded before the configuration")

	root.AddCommand(
		newServeCmd(c),
		newSynthesizeCmd(c),
		newBudgetsCmd(c),
		newMigrateCmd(c),
		newCurriculumCmd(c),
	)
	return root
}

// init loads the environment file, the configuration and the logger.
// Logs go to stderr so command output on stdout stays machine readable.
func (c *cli) init(cmd *cobra.Command) error {
	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", c.envFile, err)
		}
	}

	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c.logger, err = logger.SetupWithWriter(c.cfg.Server, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	c.logger.Debug("configuration loaded",
		"port", c.cfg.Server.Port,
		"log_level", c.cfg.Server.LogLevel,
		"curriculum_source", c.cfg.Curriculum.Source,
		"redis_enabled", c.cfg.Redis.URL != "",
		"llm_enabled", c.cfg.LLM.Enabled())
	return nil
}
