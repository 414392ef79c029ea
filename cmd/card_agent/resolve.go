package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/nextlevelcleaning/cards/internal/identity"
	"github.com/nextlevelcleaning/cards/internal/profile"
	"github.com/nextlevelcleaning/cards/internal/qr"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <page-url>",
	Short: "Show the identity and data locations for a card URL",
	Long: `Resolves the employee identity from a card page URL and lists, in order, the locations
the page tries when loading its profile document.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pageURL, err := url.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid page URL: %w", err)
	}

	id, rule, err := identity.Resolve(pageURL)
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", pageURL, err)
	}
	canonical, err := qr.CanonicalURL(cfg.ProductionDomain, id)
	if err != nil {
		return err
	}

	p := printer(cmd)
	p.PrintIdentity(id, rule, canonical)
	p.PrintCandidates(id.Slug, profile.Candidates(pageURL, profile.SiteFromConfig(*cfg), id.Slug))
	return nil
}
