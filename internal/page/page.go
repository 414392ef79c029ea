// Package page provides the page surface the card renderer writes into: a parsed HTML document
// addressed through named slots.
package page

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Slot ids present in the card template.
const (
	SlotPageTitle     = "pageTitle"
	SlotProfileImage  = "profileImage"
	SlotStaffName     = "staffName"
	SlotStaffRole     = "staffRole"
	SlotCompanyName   = "companyName"
	SlotDescription   = "description"
	SlotCallLink      = "callLink"
	SlotEmailLink     = "emailLink"
	SlotWebsiteLink   = "websiteLink"
	SlotVcard         = "vcard"
	SlotContentStream = "contentStream"
	SlotModal         = "modal"
	SlotClose         = "close"
	SlotQRView        = "qrView"
	SlotCopyView      = "copyView"
	SlotQR            = "qr"
	SlotCopyURL       = "copyURL"
	SlotShare         = "share"
	SlotShowQR        = "showQR"
)

// SocialSelector matches the social network anchors, in template order.
const SocialSelector = ".actions.secondary a"

// ThemeAttr is set on the page root to select a colour theme.
const ThemeAttr = "data-theme"

// Surface is the page a card is rendered into.
type Surface interface {
	// Slot returns the element with the given id, or nil when the template lacks it.
	Slot(id string) *Element
	// Select returns every element matching a CSS selector, in document order.
	Select(selector string) []*Element
	// Root returns the element carrying page-wide attributes such as the theme.
	Root() *Element
}

// Document is a Surface backed by a goquery document. It is not safe for concurrent use.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString parses an HTML document held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Slot implements Surface.
func (d *Document) Slot(id string) *Element {
	sel := d.doc.Find("#" + id)
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel.First()}
}

// Select implements Surface.
func (d *Document) Select(selector string) []*Element {
	return wrap(d.doc.Find(selector))
}

// Root implements Surface. It is the body element, or the document element when there is none.
func (d *Document) Root() *Element {
	body := d.doc.Find("body")
	if body.Length() > 0 {
		return &Element{sel: body.First()}
	}
	return &Element{sel: d.doc.Children().First()}
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("failed to render page: %w", err)
		}
	}
	return nil
}

// HTML returns the rendered document.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func wrap(sel *goquery.Selection) []*Element {
	out := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}
