// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup finds schema.org structured data in an HTML document and
// returns it as engine candidates. JSON-LD script blocks and microdata
// itemscopes are both supported; microdata items are rewritten into the
// same shape as JSON-LD, with @context and @type, so one set of extractors
// handles both syntaxes.
package markup

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/reservation-engine/internal/engine"
	"github.com/pdiddy/reservation-engine/internal/schemaorg"
)

const (
	jsonLDMediaType = "application/ld+json"
	schemaContext   = "https://schema.org"
)

// Parse extracts every JSON-LD and microdata item from doc in document
// order. Malformed JSON-LD blocks are skipped. Parse never fails: markup
// the HTML parser cannot recover yields no candidates.
func Parse(doc string) engine.Candidates {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return engine.Candidates{}
	}

	c := engine.Candidates{
		JSONLD:    []schemaorg.Node{},
		Microdata: []schemaorg.Node{},
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.DataAtom == atom.Script {
				if isJSONLD(n) {
					c.JSONLD = append(c.JSONLD, jsonLDItems(scriptText(n))...)
				}
				return
			}
			if hasAttr(n, "itemscope") && !hasAttr(n, "itemprop") {
				if item, err := json.Marshal(microdataItem(n)); err == nil {
					c.Microdata = append(c.Microdata, schemaorg.ParseBytes(item))
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return c
}

func isJSONLD(n *html.Node) bool {
	typ, _ := attr(n, "type")
	mediaType, _, _ := strings.Cut(typ, ";")
	return strings.EqualFold(strings.TrimSpace(mediaType), jsonLDMediaType)
}

func scriptText(n *html.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// jsonLDItems flattens one script block into items: a top-level array
// contributes each element and an @graph contributes each graph node.
func jsonLDItems(text string) []schemaorg.Node {
	return flatten(schemaorg.Parse(text))
}

func flatten(n schemaorg.Node) []schemaorg.Node {
	switch {
	case n.IsArray():
		var out []schemaorg.Node
		for _, el := range n.Elements() {
			out = append(out, flatten(el)...)
		}
		return out
	case n.IsObject():
		if graph := n.Get("@graph"); graph.IsArray() {
			return flatten(graph)
		}
		return []schemaorg.Node{n}
	}
	return nil
}
