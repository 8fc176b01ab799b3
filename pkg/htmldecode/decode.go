// Package htmldecode reverses HTML entity escaping for text that was embedded
// as escaped markup inside an element.
package htmldecode

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Decode parses input as the inner markup of a detached <div> and returns the
// text of the first top-level node. When that node is not text (a comment or
// an element, for instance) or there is no node, the result is empty. Nodes
// after the first are ignored, so input must collapse to a single text node
// to survive intact.
func Decode(input string) string {
	if input == "" {
		return ""
	}
	nodes, err := html.ParseFragment(strings.NewReader(input), container())
	if err != nil {
		return ""
	}
	if len(nodes) == 0 || nodes[0].Type != html.TextNode {
		return ""
	}
	return nodes[0].Data
}

func container() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Div.String(),
		DataAtom: atom.Div,
	}
}
