// Package types provides type definitions for the structured data shared by the card renderer,
// the loader and the build tooling.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ProfileRecord is the JSON document describing one employee card (data/<slug>.json).
// A record is read-only once loaded; the page session holds it until navigation.
type ProfileRecord struct {
	Name          string        `json:"name"`
	Role          string        `json:"role"`
	Company       string        `json:"company,omitempty"`
	Description   string        `json:"description,omitempty"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Website       string        `json:"website,omitempty"`
	ProfileImage  string        `json:"profileImage,omitempty"`
	ContactVcf    string        `json:"contactVcf,omitempty"`
	Theme         string        `json:"theme,omitempty"`
	Social        *Social       `json:"social,omitempty"`
	ContentStream []ContentItem `json:"contentStream,omitempty"`
	QRImage       string        `json:"qrImage,omitempty"`
}

// Social holds the fixed set of social network links shown under the contact actions.
// Empty entries leave the corresponding anchor untouched.
type Social struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// Ordered returns the social links in the positional order used by the card template.
func (s *Social) Ordered() []string {
	if s == nil {
		return nil
	}
	return []string{s.Facebook, s.Instagram, s.TikTok, s.LinkedIn}
}

// KnownThemes lists the theme tokens the card stylesheet defines.
// Other values are applied as-is and simply match no rule.
var KnownThemes = []string{"pink", "purple", "blue", "green", "teal", "dark"}

// IsKnownTheme reports whether theme has a stylesheet rule.
func IsKnownTheme(theme string) bool {
	for _, t := range KnownThemes {
		if t == theme {
			return true
		}
	}
	return false
}

// DisplayCompany returns the company name used in titles and share text.
func (p *ProfileRecord) DisplayCompany() string {
	if p == nil || p.Company == "" {
		return DefaultCompany
	}
	return p.Company
}

// DefaultCompany is used when a record does not name its company.
const DefaultCompany = "Next Level Cleaning Ltd"
