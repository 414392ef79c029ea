// Package build generates the per-employee card folders under id/<category>/<slug>/ from
// the shared template and the configured roster.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nextlevelcleaning/cards/internal/config"
	"github.com/nextlevelcleaning/cards/internal/identity"
	"github.com/nextlevelcleaning/cards/internal/page"
	"github.com/nextlevelcleaning/cards/internal/profile"
	"github.com/nextlevelcleaning/cards/internal/qr"
	"github.com/nextlevelcleaning/cards/internal/schemas"
	"github.com/nextlevelcleaning/cards/internal/types"
	"github.com/nextlevelcleaning/cards/internal/vcard"
)

// Template layout inside the site directory.
const (
	TemplateDir  = "id/template"
	IndexFile    = "index.html"
	VCardFile    = "contact.vcf"
	QRFile       = "qr.png"
	ProfileImage = "profile.jpg"
	LogoImage    = "logo.png"
)

// TemplateFiles are copied from the template folder when present. index.html falls back to
// the embedded default template.
var TemplateFiles = []string{IndexFile, "style.css", "script.js"}

// Placeholders are created empty when a card folder does not have them yet.
var Placeholders = []string{ProfileImage, LogoImage}

// DataStatus describes the profile document backing a card.
type DataStatus string

// Data statuses.
const (
	DataOK      DataStatus = "ok"
	DataMissing DataStatus = "missing"
	DataInvalid DataStatus = "invalid"
)

// Options configures a build.
type Options struct {
	SiteDir     string
	Domain      string
	Roster      []config.RosterEntry
	Concurrency int
	SkipQR      bool
	Logger      *zap.Logger
}

// CardResult records what the build did for one roster entry.
type CardResult struct {
	Identity     types.Identity
	Name         string
	Dir          string
	URL          string
	Copied       []string
	Placeholders []string
	VCard        bool
	QR           bool
	Data         DataStatus
	DataErr      error
}

// Summary collects the results of a build in roster order.
type Summary struct {
	Cards []CardResult
}

// Warnings counts cards whose profile document is missing or invalid.
func (s *Summary) Warnings() int {
	n := 0
	for _, c := range s.Cards {
		if c.Data != DataOK {
			n++
		}
	}
	return n
}

// Run builds every roster entry, at most Concurrency at a time. The first I/O failure
// cancels the remaining cards.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.SiteDir == "" {
		return nil, errors.New("site directory is required")
	}
	if opts.Domain == "" {
		opts.Domain = config.DefaultProductionDomain
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := loadTemplate(opts.SiteDir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Cards: make([]CardResult, len(opts.Roster))}
	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, entry := range opts.Roster {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := buildCard(opts, tmpl, entry, logger)
			if err != nil {
				return fmt.Errorf("card %s: %w", entry.Identity(), err)
			}
			summary.Cards[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

type template struct {
	files map[string][]byte
	order []string
}

func loadTemplate(siteDir string) (*template, error) {
	t := &template{files: make(map[string][]byte)}
	for _, name := range TemplateFiles {
		data, err := os.ReadFile(filepath.Join(siteDir, TemplateDir, name))
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist) && name == IndexFile:
			data = []byte(page.DefaultTemplate)
		case errors.Is(err, os.ErrNotExist):
			continue
		default:
			return nil, fmt.Errorf("failed to read template %s: %w", name, err)
		}
		t.files[name] = data
		t.order = append(t.order, name)
	}
	return t, nil
}

func buildCard(opts Options, tmpl *template, entry config.RosterEntry, logger *zap.Logger) (*CardResult, error) {
	id := entry.Identity()
	dir := filepath.Join(opts.SiteDir, filepath.FromSlash(identity.CanonicalPath(id)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	cardURL, err := qr.CanonicalURL(opts.Domain, id)
	if err != nil {
		return nil, err
	}
	res := &CardResult{Identity: id, Name: entry.Name, Dir: dir, URL: cardURL}

	for _, name := range tmpl.order {
		if err := os.WriteFile(filepath.Join(dir, name), tmpl.files[name], 0o644); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", name, err)
		}
		res.Copied = append(res.Copied, name)
	}

	rec, status, dataErr := checkData(opts.SiteDir, entry.Slug)
	res.Data, res.DataErr = status, dataErr
	switch status {
	case DataMissing:
		logger.Warn("profile document not found", zap.String("card", id.String()),
			zap.String("path", profile.DataPath(entry.Slug)))
	case DataInvalid:
		logger.Warn("profile document is invalid", zap.String("card", id.String()), zap.Error(dataErr))
	}

	if err := vcard.WriteFile(filepath.Join(dir, VCardFile), contactFor(entry, rec, cardURL)); err != nil {
		return nil, err
	}
	res.VCard = true

	if !opts.SkipQR {
		if err := qr.WriteFile(filepath.Join(dir, QRFile), cardURL, qr.Size); err != nil {
			return nil, err
		}
		res.QR = true
	}

	for _, name := range Placeholders {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, fmt.Errorf("failed to create placeholder %s: %w", name, err)
		}
		res.Placeholders = append(res.Placeholders, name)
	}

	logger.Info("card updated", zap.String("card", id.String()), zap.String("dir", dir))
	return res, nil
}

// checkData reads and validates data/<slug>.json.
func checkData(siteDir, slug string) (*types.ProfileRecord, DataStatus, error) {
	path := filepath.Join(siteDir, filepath.FromSlash(profile.DataPath(slug)))
	doc, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, DataMissing, err
		}
		return nil, DataInvalid, err
	}
	if err := schemas.ValidateProfile(doc); err != nil {
		return nil, DataInvalid, err
	}
	rec, err := profile.Decode(doc)
	if err != nil {
		return nil, DataInvalid, err
	}
	return rec, DataOK, nil
}

// contactFor prefers roster values and fills gaps from the profile document.
func contactFor(entry config.RosterEntry, rec *types.ProfileRecord, cardURL string) vcard.Contact {
	c := vcard.FromRecord(rec, cardURL)
	c.Name = entry.Name
	if entry.Role != "" {
		c.Role = entry.Role
	}
	if entry.Email != "" {
		c.Email = entry.Email
	}
	if entry.Phone != "" {
		c.Phone = entry.Phone
	}
	return c
}
