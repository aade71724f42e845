// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// microdataItem converts an itemscope element into a JSON-LD style object.
// Properties repeated within one item become arrays.
func microdataItem(scope *html.Node) map[string]any {
	item := map[string]any{}
	if typ := itemType(scope); typ != "" {
		item["@context"] = schemaContext
		item["@type"] = typ
	}
	if id, ok := attr(scope, "itemid"); ok && id != "" {
		item["@id"] = id
	}

	for child := scope.FirstChild; child != nil; child = child.NextSibling {
		collectProperties(child, item)
	}
	return item
}

// collectProperties adds the itemprops found at or under n to item. It
// does not descend into nested itemscopes; those become property values.
func collectProperties(n *html.Node, item map[string]any) {
	if n.Type != html.ElementNode {
		return
	}

	names := strings.Fields(attrOr(n, "itemprop"))
	if len(names) > 0 {
		value := propertyValue(n)
		for _, name := range names {
			addProperty(item, name, value)
		}
	}
	if hasAttr(n, "itemscope") {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectProperties(child, item)
	}
}

func addProperty(item map[string]any, name string, value any) {
	existing, ok := item[name]
	if !ok {
		item[name] = value
		return
	}
	if list, isList := existing.([]any); isList {
		item[name] = append(list, value)
		return
	}
	item[name] = []any{existing, value}
}

// propertyValue follows the microdata value rules: nested items are
// objects, URL-bearing elements yield their URL attribute, meta yields
// content, time yields datetime, and anything else its text.
func propertyValue(n *html.Node) any {
	if hasAttr(n, "itemscope") {
		return microdataItem(n)
	}
	if content, ok := attr(n, "content"); ok {
		return content
	}

	switch n.DataAtom {
	case atom.Meta:
		return ""
	case atom.Audio, atom.Embed, atom.Iframe, atom.Img, atom.Source, atom.Track, atom.Video:
		return attrOr(n, "src")
	case atom.A, atom.Area, atom.Link:
		return attrOr(n, "href")
	case atom.Object:
		return attrOr(n, "data")
	case atom.Data, atom.Meter:
		return attrOr(n, "value")
	case atom.Time:
		if dt, ok := attr(n, "datetime"); ok {
			return dt
		}
	}
	return textContent(n)
}

// itemType returns the local name of the first itemtype URL, e.g.
// "FlightReservation" for "http://schema.org/FlightReservation".
func itemType(n *html.Node) string {
	fields := strings.Fields(attrOr(n, "itemtype"))
	if len(fields) == 0 {
		return ""
	}
	typ := strings.TrimRight(fields[0], "/")
	if i := strings.LastIndexAny(typ, "/#"); i >= 0 {
		typ = typ[i+1:]
	}
	return typ
}

// textContent joins the text under n with whitespace collapsed.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		case n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style):
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func attrOr(n *html.Node, key string) string {
	v, _ := attr(n, key)
	return v
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attr(n, key)
	return ok
}
