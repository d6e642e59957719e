package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/HamletTheHamster/waveplot/internal/app"
	"github.com/HamletTheHamster/waveplot/internal/config"
	"github.com/HamletTheHamster/waveplot/internal/display"
)

const version = "v0.1.0"

// NewRootCommand returns the plot command with generate as a subcommand.
func NewRootCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waveplot [file]",
		Short: "Plot a 1 kHz waveform sample file (default " + config.DefaultInput + ")",
		Long: "waveplot reads one floating-point sample per line, places the samples on a\n" +
			"1 kHz time axis and shows them as a line plot.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}

			cfg, err := config.Load(cmd.Flags(), input)
			if err != nil {
				return err
			}
			if err := setLogLevel(cmd, cfg.LogLevel); err != nil {
				return err
			}

			d, err := display.New(cfg.Display)
			if err != nil {
				return err
			}
			_, err = app.PlotWave(ctx, cfg, d)
			return err
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.AddCommand(newGenerateCommand())

	return cmd
}

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a sine, square, triangle or sawtooth sample file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadGenerate(cmd.Flags())
			if err != nil {
				return err
			}
			if err := setLogLevel(cmd, cfg.LogLevel); err != nil {
				return err
			}

			_, err = app.Generate(cfg)
			return err
		},
	}

	config.RegisterGenerateFlags(cmd.Flags())

	return cmd
}

func setLogLevel(cmd *cobra.Command, level string) error {
	l, err := config.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(l)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		log.Debug().Msgf("FLAG: --%s=%q", f.Name, f.Value)
	})
	return nil
}
