package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joegoldin/voxtral-voice/internal/config"
	"github.com/joegoldin/voxtral-voice/internal/deps"
	"github.com/joegoldin/voxtral-voice/internal/record"
	"github.com/joegoldin/voxtral-voice/internal/skill"
	"github.com/joegoldin/voxtral-voice/internal/transcribe"
	"github.com/joegoldin/voxtral-voice/internal/ui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "voxtral [command...]",
	Short: "Voice input: record from the microphone and transcribe with voxtral",
	Long: `Turns short voice commands into a recording (sox) and a transcription (voxtral.c).

The command is taken from the arguments, or read from stdin when none are given.
The response is printed to stdout; progress and diagnostics go to stderr.

Examples:
  voxtral record my message
  voxtral quick record
  echo "long record" | voxtral
  voxtral --config ~/voxtral.yaml record my message
  voxtral help

Only a leading --config <path> is read as a flag. Every other word, including
-h and --help, is part of the command.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runRoot,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	configPath, args, err := splitConfigFlag(args)
	if err != nil {
		return err
	}
	command, err := commandText(args, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read command: %w", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := record.EnsureOutputDir(cfg.Record.OutputDir); err != nil {
		return fmt.Errorf("failed to create recordings dir: %w", err)
	}

	if command == "" {
		fmt.Fprintln(cmd.OutOrStdout(), skill.Help())
		return nil
	}

	status := ui.NewStatus(cmd.ErrOrStderr())
	s := skill.New(
		cfg.Record,
		deps.NewChecker(cfg),
		record.NewSox(cfg.Record, status),
		transcribe.NewVoxtral(cfg),
		status,
	)
	fmt.Fprintln(cmd.OutOrStdout(), s.Process(cmd.Context(), command))
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if dir := config.Dir(); dir != "" {
		if err := config.LoadEnvFile(filepath.Join(dir, ".env")); err != nil {
			return nil, err
		}
	}

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	cfg.ExpandPaths()
	return cfg, nil
}
