// Package profile loads employee profile records from the static site.
//
// A record can be served from several places depending on where the card is hosted (custom
// domain, hosting platform under a repo path, local files), so the loader tries an ordered
// list of candidate locations and stops at the first that yields a document.
package profile

import (
	"net/url"
	"strings"

	"github.com/nextlevelcleaning/cards/internal/config"
	"github.com/nextlevelcleaning/cards/internal/fetch"
)

// Site describes the deployments a card can be served from.
type Site struct {
	ProductionDomain string // canonical custom domain, e.g. nextlevelcleaningltd.co.uk
	HostingBaseURL   string // hosting platform URL including the repo path
	RepoPath         string // repo path prefix on the hosting platform, e.g. /Next-Level-Cleaning
}

// SiteFromConfig extracts the deployment description from cfg.
func SiteFromConfig(cfg config.Config) Site {
	return Site{
		ProductionDomain: cfg.ProductionDomain,
		HostingBaseURL:   strings.TrimSuffix(cfg.HostingBaseURL, "/"),
		RepoPath:         strings.TrimSuffix(cfg.RepoPath, "/"),
	}
}

// DefaultSite is the live deployment of the card site.
func DefaultSite() Site {
	return SiteFromConfig(config.Defaults())
}

// DataPath returns the site-relative path of a profile document.
func DataPath(slug string) string {
	return "data/" + slug + ".json"
}

// Candidates returns the ordered, de-duplicated list of absolute URLs to try for slug when the
// card is viewed at pageURL. Relative forms are resolved against pageURL and dropped when
// pageURL is nil.
func Candidates(pageURL *url.URL, site Site, slug string) []string {
	file := DataPath(slug)

	var raw []string
	repoPath := ""
	if pageURL != nil {
		if fetch.DetectPlatform(pageURL, site.ProductionDomain, site.RepoPath) == fetch.PlatformGitHubPages {
			repoPath = site.RepoPath
		}
		origin := fetch.Origin(pageURL)
		raw = append(raw,
			origin+repoPath+"/"+file,
			origin+"/"+file,
			"/"+file,
			repoPath+"/"+file,
			"../../"+file,
		)
	}
	if site.HostingBaseURL != "" {
		raw = append(raw, site.HostingBaseURL+"/"+file)
	}
	if site.ProductionDomain != "" {
		raw = append(raw, "https://"+site.ProductionDomain+"/"+file)
	}
	if pageURL != nil {
		raw = append(raw, "../"+file, "./"+file, file)
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, ref := range raw {
		abs, ok := resolve(pageURL, ref)
		if !ok || seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}
	return out
}

func resolve(base *url.URL, ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if u.IsAbs() {
		return u.String(), true
	}
	if base == nil {
		return "", false
	}
	return base.ResolveReference(u).String(), true
}
