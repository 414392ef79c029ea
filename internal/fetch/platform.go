// Package fetch - platform.go detects which deployment a page URL belongs to.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a deployment target for the static site.
type Platform string

const (
	// PlatformProduction is the canonical custom domain.
	PlatformProduction Platform = "production"
	// PlatformGitHubPages is the hosting platform's default domain, served under a repo path.
	PlatformGitHubPages Platform = "github-pages"
	// PlatformNetlify is a Netlify preview or default domain.
	PlatformNetlify Platform = "netlify"
	// PlatformLocal is a file:// or localhost page.
	PlatformLocal Platform = "local"
	// PlatformUnknown is an unrecognized host.
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the deployment a page URL is served from. repoPath is the
// project path prefix used on GitHub Pages (e.g. /Next-Level-Cleaning).
func DetectPlatform(u *url.URL, productionDomain, repoPath string) Platform {
	if u == nil {
		return PlatformUnknown
	}
	host := strings.ToLower(u.Hostname())

	switch {
	case u.Scheme == "file":
		return PlatformLocal
	case host == "localhost" || host == "127.0.0.1":
		return PlatformLocal
	case productionDomain != "" && (host == productionDomain || host == "www."+productionDomain):
		return PlatformProduction
	case strings.HasSuffix(host, "github.io"):
		return PlatformGitHubPages
	case repoPath != "" && strings.Contains(u.Path, repoPath+"/"):
		return PlatformGitHubPages
	case strings.HasSuffix(host, "netlify.app"):
		return PlatformNetlify
	default:
		return PlatformUnknown
	}
}

// Origin returns scheme://host for u, or "file://" for local files.
func Origin(u *url.URL) string {
	if u.Scheme == "file" {
		return "file://"
	}
	return u.Scheme + "://" + u.Host
}
