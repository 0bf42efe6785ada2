package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sabbir-hossain/flight-scraper/artifacts"
	"github.com/sabbir-hossain/flight-scraper/config"
	"github.com/sabbir-hossain/flight-scraper/logger"
	"github.com/sabbir-hossain/flight-scraper/scraper"
	"github.com/sabbir-hossain/flight-scraper/services"
)

var (
	configPath string
	headless   bool
	topN       int
)

var rootCmd = &cobra.Command{
	Use:   "flight-scraper",
	Short: "Scrape a flight search site and report the cheapest fares per route",
	Long: "Drives a headless Chrome session against the configured flight search\n" +
		"site, fills the search form for every configured route, extracts the\n" +
		"rendered listings and prints the cheapest fares as a table. Failed\n" +
		"routes are logged and skipped; only browser bootstrap failure is fatal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if configPath != "" {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		if cmd.Flags().Changed("headless") {
			cfg.Browser.Headless = headless
		}
		if cmd.Flags().Changed("top") {
			cfg.Report.TopN = topN
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := logger.New(cfg.Logging)
		defer func() { _ = log.Sync() }()

		browser, err := scraper.Launch(cfg.Browser)
		if err != nil {
			log.Error("browser bootstrap failed", zap.Error(err))

			return err
		}
		defer browser.Close()

		pipeline := services.NewPipeline(
			cfg,
			scraper.New(cfg, log),
			services.NewTableReporter(os.Stdout),
			artifacts.NewStore(cfg.Artifacts.Dir, log),
			log,
		)

		return pipeline.Run(browser.Context())
	},
}

func main() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config (built-in defaults when omitted)")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "run the browser headless")
	rootCmd.Flags().IntVar(&topN, "top", 5, "flights to report per route")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
