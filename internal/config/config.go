// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nextlevelcleaning/cards/internal/types"
)

// Deployment defaults for the card site.
const (
	DefaultProductionDomain = "nextlevelcleaningltd.co.uk"
	DefaultHostingBaseURL   = "https://lay162.github.io/Next-Level-Cleaning"
	DefaultRepoPath         = "/Next-Level-Cleaning"
	DefaultSiteDir          = "."
	DefaultQRMode           = QRModeClient
	DefaultFetchTimeoutSecs = 10
	DefaultBuildConcurrency = 4
)

// QR presenter modes.
const (
	QRModeClient = "client"
	QRModeStatic = "static"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Site layout
	SiteDir          string `json:"site_dir,omitempty"`                                         // Root of the static site (id/, data/, template files)
	ProductionDomain string `json:"production_domain,omitempty" validate:"omitempty,hostname"`  // Canonical domain encoded into QR codes
	HostingBaseURL   string `json:"hosting_base_url,omitempty" validate:"omitempty,url"`        // Hosting platform default URL (GitHub Pages)
	RepoPath         string `json:"repo_path,omitempty" validate:"omitempty,startswith=/"`      // Repo path prefix on the hosting platform
	QRMode           string `json:"qr_mode,omitempty" validate:"omitempty,oneof=client static"` // client: generate in page, static: pre-rendered qr.png

	// Loader behavior
	AllowFallback       bool `json:"allow_fallback,omitempty"`                         // Consult the built-in fallback table when every candidate fails
	StrictContent       bool `json:"strict_content,omitempty"`                         // Treat schema-invalid documents as failed candidates
	FetchTimeoutSeconds int  `json:"fetch_timeout_seconds,omitempty" validate:"gte=0"` // Per-candidate timeout

	// Build
	BuildConcurrency int           `json:"build_concurrency,omitempty" validate:"gte=0"` // Cards generated in parallel
	Roster           []RosterEntry `json:"roster,omitempty" validate:"dive"`             // Employees to generate card folders for

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// RosterEntry describes one employee card generated by the build command.
type RosterEntry struct {
	Slug     string         `json:"slug" validate:"required,excludes=/"`
	Category types.Category `json:"category" validate:"required,oneof=director manager cleaner"`
	Name     string         `json:"name" validate:"required"`
	Role     string         `json:"role,omitempty"`
	Email    string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string         `json:"phone,omitempty"`
}

// Identity returns the card identity of the entry.
func (r RosterEntry) Identity() types.Identity {
	return types.Identity{Slug: r.Slug, Category: r.Category}
}

// Defaults returns the configuration used when no config file is given.
func Defaults() Config {
	return Config{
		SiteDir:             DefaultSiteDir,
		ProductionDomain:    DefaultProductionDomain,
		HostingBaseURL:      DefaultHostingBaseURL,
		RepoPath:            DefaultRepoPath,
		QRMode:              DefaultQRMode,
		FetchTimeoutSeconds: DefaultFetchTimeoutSecs,
		BuildConcurrency:    DefaultBuildConcurrency,
		Roster:              DefaultRoster(),
	}
}

// DefaultRoster lists the cards published before a roster was configurable.
func DefaultRoster() []RosterEntry {
	return []RosterEntry{
		{
			Slug:     "lauren-moore",
			Category: types.CategoryDirector,
			Name:     "Lauren Moore",
			Role:     "Director",
			Email:    "lauren@nextlevelcleaningltd.co.uk",
			Phone:    "+447700900001",
		},
		{
			Slug:     "jenny-roscoe",
			Category: types.CategoryDirector,
			Name:     "Jenny Roscoe",
			Role:     "Director",
			Email:    "jenny@nextlevelcleaningltd.co.uk",
			Phone:    "+447700900002",
		},
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.ProductionDomain != "" && strings.HasSuffix(c.ProductionDomain, "github.io") {
		return fmt.Errorf("config error: 'production_domain' must not be the hosting platform domain")
	}

	seen := make(map[string]bool, len(c.Roster))
	for _, entry := range c.Roster {
		if seen[entry.Slug] {
			return fmt.Errorf("config error: duplicate roster slug %q", entry.Slug)
		}
		seen[entry.Slug] = true
	}

	if c.SiteDir != "" {
		info, err := os.Stat(c.SiteDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: site directory not found: %s", c.SiteDir)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: site_dir is not a directory: %s", c.SiteDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SiteDir == "" {
		result.SiteDir = defaults.SiteDir
	}
	if result.ProductionDomain == "" {
		result.ProductionDomain = defaults.ProductionDomain
	}
	if result.HostingBaseURL == "" {
		result.HostingBaseURL = defaults.HostingBaseURL
	}
	if result.RepoPath == "" {
		result.RepoPath = defaults.RepoPath
	}
	if result.QRMode == "" {
		result.QRMode = defaults.QRMode
	}

	// Int fields: use default if zero
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if result.BuildConcurrency == 0 {
		result.BuildConcurrency = defaults.BuildConcurrency
	}

	if len(result.Roster) == 0 {
		result.Roster = defaults.Roster
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
