package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is one node of a Surface.
type Element struct {
	sel *goquery.Selection
}

// Wrap returns the Element for an existing node.
func Wrap(n *html.Node) *Element {
	return &Element{sel: goquery.NewDocumentFromNode(n).Selection}
}

// Node returns the underlying node.
func (e *Element) Node() *html.Node {
	return e.sel.Get(0)
}

// Tag returns the lower-case element name.
func (e *Element) Tag() string {
	return goquery.NodeName(e.sel)
}

// ID returns the id attribute.
func (e *Element) ID() string {
	id, _ := e.sel.Attr("id")
	return id
}

// Text returns the combined text content.
func (e *Element) Text() string {
	return e.sel.Text()
}

// SetText replaces the content with a single text node.
func (e *Element) SetText(text string) {
	e.sel.SetText(text)
}

// Attr returns an attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// AttrOr returns an attribute value or def.
func (e *Element) AttrOr(name, def string) string {
	return e.sel.AttrOr(name, def)
}

// SetAttr sets an attribute.
func (e *Element) SetAttr(name, value string) {
	e.sel.SetAttr(name, value)
}

// RemoveAttr removes an attribute.
func (e *Element) RemoveAttr(name string) {
	e.sel.RemoveAttr(name)
}

// HasClass reports whether the class attribute contains class.
func (e *Element) HasClass(class string) bool {
	return e.sel.HasClass(class)
}

// AddClass adds a class.
func (e *Element) AddClass(class string) {
	e.sel.AddClass(class)
}

// RemoveClass removes a class.
func (e *Element) RemoveClass(class string) {
	e.sel.RemoveClass(class)
}

// Style returns one inline style property.
func (e *Element) Style(prop string) string {
	for _, decl := range strings.Split(e.AttrOr("style", ""), ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == prop {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// SetStyle sets one inline style property, keeping the others in order. An empty value removes
// the property.
func (e *Element) SetStyle(prop, value string) {
	var decls []string
	replaced := false
	for _, decl := range strings.Split(e.AttrOr("style", ""), ";") {
		k, _, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(k) == prop {
			if value != "" {
				decls = append(decls, prop+": "+value)
			}
			replaced = true
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	if !replaced && value != "" {
		decls = append(decls, prop+": "+value)
	}
	if len(decls) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", strings.Join(decls, "; "))
}

// Clear removes all children.
func (e *Element) Clear() {
	e.sel.Empty()
}

// Append adds nodes as the last children.
func (e *Element) Append(nodes ...*html.Node) {
	e.sel.AppendNodes(nodes...)
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	return wrap(e.sel.Children())
}

// Find returns descendants matching selector.
func (e *Element) Find(selector string) []*Element {
	return wrap(e.sel.Find(selector))
}

// HTML returns the inner HTML.
func (e *Element) HTML() string {
	s, _ := e.sel.Html()
	return s
}

// OuterHTML returns the element's own markup.
func (e *Element) OuterHTML() string {
	s, _ := goquery.OuterHtml(e.sel)
	return s
}
