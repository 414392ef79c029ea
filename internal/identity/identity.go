// Package identity derives the employee card identity (slug and category) from a page URL.
package identity

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/nextlevelcleaning/cards/internal/types"
)

var (
	// ErrIdentityUnresolved means no rule produced a slug. Callers must show a visible error
	// state and must not substitute a default employee.
	ErrIdentityUnresolved = errors.New("identity unresolved")

	// ErrTemplatePageAccessed means the development template page was opened. Callers must not
	// fetch data and should alert the operator.
	ErrTemplatePageAccessed = errors.New("template page accessed")
)

// TemplateSlug is the folder name of the development-only template card.
const TemplateSlug = "template"

// UserParam is the query parameter consulted when the path carries no slug.
const UserParam = "user"

// Rule names the resolution rule that produced an identity.
type Rule string

// Resolution rules, in the order they are tried.
const (
	RulePath      Rule = "path"
	RuleQuery     Rule = "query"
	RuleHeuristic Rule = "heuristic"
)

var (
	cardPathPattern  = regexp.MustCompile(`/id/(director|manager|cleaner)/([^/]+)`)
	categoryPattern  = regexp.MustCompile(`/id/(director|manager|cleaner)/`)
	slugShapePattern = regexp.MustCompile(`/([a-z]+-[a-z]+)/`)
)

// Resolve returns the card identity for u together with the rule that matched.
//
// The path form /id/<category>/<slug>/ wins. When it is absent or names the template,
// index.html or another .html file, the ?user= parameter is consulted, then a word-word
// path segment. Category comes from the path when present and defaults to director only
// for fallback matches.
func Resolve(u *url.URL) (types.Identity, Rule, error) {
	if u == nil {
		return types.Identity{}, "", ErrIdentityUnresolved
	}

	path := u.Path
	templateSeen := false

	if m := cardPathPattern.FindStringSubmatch(path); m != nil {
		slug := m[2]
		if acceptSlug(slug) {
			return types.Identity{Slug: slug, Category: types.Category(m[1])}, RulePath, nil
		}
		templateSeen = slug == TemplateSlug
	}

	if user := u.Query().Get(UserParam); user != "" {
		if user != TemplateSlug {
			return types.Identity{Slug: user, Category: categoryFromPath(path)}, RuleQuery, nil
		}
		templateSeen = true
	}

	if templateSeen {
		return types.Identity{}, "", fmt.Errorf("%w: %s", ErrTemplatePageAccessed, u.String())
	}

	if m := slugShapePattern.FindStringSubmatch(path); m != nil {
		return types.Identity{Slug: m[1], Category: categoryFromPath(path)}, RuleHeuristic, nil
	}

	return types.Identity{}, "", fmt.Errorf("%w: %s", ErrIdentityUnresolved, u.String())
}

// ResolveString parses raw and resolves it.
func ResolveString(raw string) (types.Identity, Rule, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return types.Identity{}, "", fmt.Errorf("%w: invalid URL %q: %v", ErrIdentityUnresolved, raw, err)
	}
	return Resolve(u)
}

// CanonicalPath returns the path segment of the canonical card URL, /id/<category>/<slug>/.
func CanonicalPath(id types.Identity) string {
	return "/id/" + string(id.Category) + "/" + id.Slug + "/"
}

func acceptSlug(slug string) bool {
	if slug == TemplateSlug || slug == "index.html" {
		return false
	}
	return !strings.HasSuffix(slug, ".html")
}

func categoryFromPath(path string) types.Category {
	if m := categoryPattern.FindStringSubmatch(path); m != nil {
		return types.Category(m[1])
	}
	return types.CategoryDirector
}
