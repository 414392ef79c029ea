package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nextlevelcleaning/cards/internal/build"
	"github.com/nextlevelcleaning/cards/internal/fetch"
	"github.com/nextlevelcleaning/cards/internal/page"
	"github.com/nextlevelcleaning/cards/internal/profile"
	"github.com/nextlevelcleaning/cards/internal/qr"
	"github.com/nextlevelcleaning/cards/internal/session"
	"github.com/nextlevelcleaning/cards/internal/share"
)

var (
	previewOut      string
	previewBaseURL  string
	previewShowQR   bool
	previewQRMode   string
	previewFallback bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <card-path-or-url>",
	Short: "Render a card page headlessly",
	Long: `Loads the card template, resolves the identity from the given path or URL, loads the
profile document and populates the page exactly as a browser visit would. The populated
HTML is written to --out or stdout.

Paths such as /id/director/lauren-moore/ are read from the site directory. With --base-url,
or when a full http(s) URL is given, documents are fetched over HTTP instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "Write the populated HTML to this file")
	previewCmd.Flags().StringVar(&previewBaseURL, "base-url", "", "Fetch documents from this site URL instead of the site directory")
	previewCmd.Flags().BoolVar(&previewShowQR, "show-qr", false, "Open the QR view after populating")
	previewCmd.Flags().StringVar(&previewQRMode, "qr-mode", "", "QR presenter: client or static (default qr_mode)")
	previewCmd.Flags().BoolVar(&previewFallback, "allow-fallback", false, "Use the built-in records when no document is found")
	rootCmd.AddCommand(previewCmd)
}

// immediate runs scheduled modal work synchronously so the rendered page reflects it.
func immediate(_ time.Duration, f func()) { f() }

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pageURL, cardDir, err := previewTarget(args[0], cfg.SiteDir)
	if err != nil {
		return err
	}

	doc, err := loadTemplate(cfg.SiteDir, cardDir)
	if err != nil {
		return err
	}

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.Timeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second
	if pageURL.Scheme == "file" {
		fetchOpts.SiteRoot = cfg.SiteDir
	}
	client := fetch.NewClient(fetchOpts)

	loader := profile.NewLoader(client, profile.Options{
		Site:          profile.SiteFromConfig(*cfg),
		AllowFallback: cfg.AllowFallback || previewFallback,
		StrictContent: cfg.StrictContent,
		Logger:        logger,
	})

	mode := cfg.QRMode
	if previewQRMode != "" {
		mode = previewQRMode
	}
	var assets share.AssetChecker = &share.HTTPAssets{Client: client, PageURL: pageURL}
	if cardDir != "" {
		assets = share.DirAssets{Dir: cardDir}
	}

	var qrErr error
	sess := session.New(pageURL, doc, session.Options{
		Loader:  loader,
		Domain:  cfg.ProductionDomain,
		QRMode:  mode,
		Encoder: qr.GoQR{},
		Assets:  assets,
		Share: share.Options{
			Scheduler: immediate,
			OnQR:      func(err error) { qrErr = err },
		},
		Logger: logger,
	})

	outcome, loadErr := sess.OnReady(cmdContext(cmd))

	if cfg.Verbose {
		p := printer(cmd)
		if id, err := sess.Identity(); err == nil && outcome != nil {
			canonical, _ := qr.CanonicalURL(cfg.ProductionDomain, id)
			p.PrintIdentity(id, outcome.Rule, canonical)
			p.PrintCandidates(id.Slug, profile.Candidates(pageURL, profile.SiteFromConfig(*cfg), id.Slug))
		}
		if outcome != nil {
			p.PrintLoadReport(outcome.Report)
			p.PrintPopulateResult(outcome.Populate)
		}
	}

	if previewShowQR {
		sess.Modal().ShowQR(cmdContext(cmd))
		if qrErr != nil {
			logger.Warn(fmt.Sprintf("QR view: %v", qrErr))
		}
	}

	if err := writeDocument(cmd, doc); err != nil {
		return err
	}
	if loadErr != nil {
		return fmt.Errorf("card rendered in error state: %w", loadErr)
	}
	return nil
}

// previewTarget turns the argument into a page URL. Site-relative paths become file:// URLs
// and also return the card directory on disk.
func previewTarget(arg, site string) (*url.URL, string, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		u, err := url.Parse(arg)
		return u, "", err
	}

	p := "/" + strings.TrimPrefix(arg, "/")
	if !strings.HasSuffix(p, "/") && path.Ext(p) == "" {
		p += "/"
	}
	if previewBaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(previewBaseURL, "/") + "/")
		if err != nil {
			return nil, "", fmt.Errorf("invalid --base-url: %w", err)
		}
		return base.ResolveReference(&url.URL{Path: strings.TrimPrefix(p, "/")}), "", nil
	}

	dir := p
	if path.Ext(dir) != "" {
		dir = path.Dir(dir)
	}
	return &url.URL{Scheme: "file", Path: p}, filepath.Join(site, filepath.FromSlash(dir)), nil
}

// loadTemplate prefers the card's own index.html, then the shared template, then the
// embedded default.
func loadTemplate(site, cardDir string) (*page.Document, error) {
	candidates := []string{filepath.Join(site, filepath.FromSlash(build.TemplateDir), build.IndexFile)}
	if cardDir != "" {
		candidates = append([]string{filepath.Join(cardDir, build.IndexFile)}, candidates...)
	}
	for _, c := range candidates {
		f, err := os.Open(c)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open template: %w", err)
		}
		doc, err := page.Parse(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", c, err)
		}
		return doc, nil
	}
	return page.NewDefault()
}

func writeDocument(cmd *cobra.Command, doc *page.Document) error {
	if previewOut == "" {
		return doc.Render(out(cmd))
	}
	f, err := os.Create(previewOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", previewOut, err)
	}
	if err := doc.Render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
