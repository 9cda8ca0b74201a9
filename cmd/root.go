package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/ui"
)

var logLevel string
var snapshotsDir string

var rootCmd = &cobra.Command{
	Use:   "gosweep",
	Short: "Play Minesweeper in the terminal, locally or against a remote authority",
	Long: `gosweep is a Minesweeper game played from the terminal. Boards are
resolved in-process, or by a remote authority started with "gosweep serve".

Run with no arguments to play a small board
	gosweep

Play a bigger board against an authority
	gosweep --preset large --remote http://localhost:8080/

Let the computer play a hundred games
	gosweep autoplay --director constraint --games 100
`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runPlay,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	// A missing .env is fine
	_ = godotenv.Load()

	if !cmd.Flags().Changed("log-level") {
		if level := os.Getenv("LOG_LEVEL"); level != "" {
			logLevel = level
		}
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(level)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	engine, err := engineFlags.newEngine(cmd.Flags())
	if err != nil {
		return err
	}

	shell := ui.NewShell(engine, cmd.OutOrStdout(), logrus.StandardLogger())
	if local, isLocal := engine.(*game.LocalEngine); isLocal && snapshotsDir != "" {
		shell.Controller().OnGameEnd = func(view *game.View) {
			saveSnapshot(local, view.State())
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return shell.Run(ctx, cmd.InOrStdin(), engineFlags.config.Preset)
}

func saveSnapshot(engine *game.LocalEngine, state game.GameState) {
	snapshot := engine.Session().Snapshot(engineFlags.config.Seed)
	if snapshot == nil {
		return
	}

	path, err := game.SaveSnapshot(snapshotsDir, snapshot, state, time.Now())
	if err != nil {
		logrus.WithError(err).Warn("could not save snapshot")
		return
	}
	logrus.WithField("path", path).Info("saved snapshot")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error); defaults to $LOG_LEVEL")

	engineFlags.register(rootCmd.Flags())
	rootCmd.Flags().StringVar(&snapshotsDir, "snapshots", "", "Directory to save the layout of every finished local game to")
}
