package page

import (
	_ "embed"
)

// DefaultTemplate is the card template used when a site does not provide id/template/index.html.
//
//go:embed template.html
var DefaultTemplate string

// HiddenClass hides modal views.
const HiddenClass = "hidden"

// NewDefault parses DefaultTemplate.
func NewDefault() (*Document, error) {
	return ParseString(DefaultTemplate)
}
