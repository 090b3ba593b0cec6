package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"goldgauge/internal/config"
	"goldgauge/internal/engine"
	"goldgauge/internal/report"
)

var (
	configPath string
	scorePath  string
	logFormat  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "goldgauge",
	Short: "Score gold market bias from news sentiment and macro indicators",
	Long: `goldgauge runs one scoring pass: it collects recent gold-relevant news
headlines, scores their sentiment against a gold-aware lexicon, folds in
dollar index, treasury yield, and volatility signals, and writes the
blended bias score for downstream consumers.`,
	RunE:         run,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("goldgauge version %s\n", config.GetVersion())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")
	rootCmd.Flags().StringVarP(&scorePath, "output", "o", "", "Score file path (overrides output.score_path)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "console", "Log output format (console or json)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(versionCmd)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		publishFallback(report.NewReporter(fallbackOutput()))
		return err
	}

	config.InitLogger(cfg.App.LogLevel, logFormat)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if scorePath != "" {
		cfg.Output.ScorePath = scorePath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := report.NewReporter(&cfg.Output)

	eng, err := engine.New(cfg)
	if err != nil {
		publishFallback(reporter)
		return err
	}

	mc, err := eng.Run(ctx)
	if err != nil {
		publishFallback(reporter)
		return err
	}

	return reporter.Publish(mc, cfg.Weights)
}

// publishFallback writes the neutral score so consumers always find a
// parseable value, even when the run itself failed.
func publishFallback(reporter *report.Reporter) {
	if err := reporter.PublishFallback(); err != nil {
		log.Error().Err(err).Msg("Failed to write fallback score")
	}
}

// fallbackOutput names the best-known score sink for runs where the
// configuration itself is unreadable: the --output flag when set, the
// default path otherwise.
func fallbackOutput() *config.OutputConfig {
	if scorePath != "" {
		return &config.OutputConfig{ScorePath: scorePath}
	}
	return &config.OutputConfig{ScorePath: config.DefaultScorePath}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
