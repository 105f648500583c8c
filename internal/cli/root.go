// Package cli implements the pulse command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/pulse/internal/app"
	"github.com/dshills/pulse/internal/backend"
	"github.com/dshills/pulse/internal/script"
)

var (
	configPath string
	scriptPath string
	frameRate  int
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Interactive arc-ball camera demo",
	Long: "pulse runs an interactive terminal demo of the typed event graph:\n" +
		"mouse drags rotate an arc-ball camera, the scroll wheel zooms, and\n" +
		"optional Lua scripts observe frames, view and config changes.",
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "Lua observer script to load")
	rootCmd.Flags().IntVar(&frameRate, "frame-rate", 0, "override configured frame rate")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}

	a := app.New(
		app.WithLogger(log),
		app.WithConfigPath(configPath),
		app.WithTerminal(term),
		app.WithFrameRate(frameRate),
	)
	defer a.Close()

	h := newHUD(term, a.Camera())
	a.ConnectFrames(h.frames)
	a.Camera().Connect(h.views)

	if scriptPath != "" {
		obs, err := script.Open(scriptPath, log)
		if err != nil {
			return fmt.Errorf("loading observer script: %w", err)
		}
		defer obs.Close()
		a.ConnectFrames(obs.FrameReceiver())
		a.Camera().Connect(obs.ViewReceiver())
		a.Config().Connect(obs.ConfigReceiver())
		a.Animations().Connect(obs.AnimationReceiver())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Run(ctx)
}
