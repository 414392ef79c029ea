package page

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// El builds a detached element. attrs are key/value pairs, applied in order; a trailing odd
// key is ignored.
func El(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Text builds a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Children appends kids to n and returns n.
func Children(n *html.Node, kids ...*html.Node) *html.Node {
	for _, k := range kids {
		n.AppendChild(k)
	}
	return n
}
