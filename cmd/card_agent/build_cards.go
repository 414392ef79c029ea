package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nextlevelcleaning/cards/internal/build"
)

var (
	buildConcurrency int
	buildSkipQR      bool
	buildDomain      string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Regenerate every card folder from the template",
	Long: `Copies the template files into id/<category>/<slug>/ for every roster entry, writes
contact.vcf and qr.png, creates placeholder images and warns about missing or invalid
profile documents in data/.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().IntVar(&buildConcurrency, "concurrency", 0, "Cards generated in parallel (default build_concurrency)")
	buildCmd.Flags().BoolVar(&buildSkipQR, "skip-qr", false, "Do not write qr.png")
	buildCmd.Flags().StringVar(&buildDomain, "domain", "", "Production domain for card URLs (default production_domain)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := build.Options{
		SiteDir:     cfg.SiteDir,
		Domain:      cfg.ProductionDomain,
		Roster:      cfg.Roster,
		Concurrency: cfg.BuildConcurrency,
		SkipQR:      buildSkipQR,
		Logger:      logger,
	}
	if buildConcurrency > 0 {
		opts.Concurrency = buildConcurrency
	}
	if buildDomain != "" {
		opts.Domain = buildDomain
	}

	summary, err := build.Run(cmdContext(cmd), opts)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	printer(cmd).PrintBuildSummary(summary)
	//nolint:errcheck // writing to stdout; errors are not recoverable
	fmt.Fprintf(out(cmd), "\n✅ %d cards updated, %d warnings\n", len(summary.Cards), summary.Warnings())
	return nil
}
