// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schemaorg resolves fields out of schema.org structured data.
// Source items are arbitrary nested JSON values; every accessor here is
// total and answers a missing key, a wrong shape or an out-of-range index
// with an empty Node instead of an error.
package schemaorg

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Node is a read-only view of one JSON value: null, scalar, array or object.
// The zero Node is empty and behaves like a missing value.
type Node struct {
	r gjson.Result
}

// Parse returns the Node for a JSON document. Invalid JSON yields an
// empty Node.
func Parse(data string) Node {
	if !gjson.Valid(data) {
		return Node{}
	}
	return Node{r: gjson.Parse(data)}
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(data []byte) Node {
	if !gjson.ValidBytes(data) {
		return Node{}
	}
	return Node{r: gjson.ParseBytes(data)}
}

// FromValue encodes v as JSON and returns its Node. Values that cannot be
// encoded yield an empty Node.
func FromValue(v any) Node {
	data, err := json.Marshal(v)
	if err != nil {
		return Node{}
	}
	return ParseBytes(data)
}

// Exists reports whether the node holds a non-null value.
func (n Node) Exists() bool {
	return n.r.Exists() && n.r.Type != gjson.Null
}

// IsObject reports whether the node is a JSON object.
func (n Node) IsObject() bool { return n.r.IsObject() }

// IsArray reports whether the node is a JSON array.
func (n Node) IsArray() bool { return n.r.IsArray() }

// IsNumber reports whether the node is a JSON number.
func (n Node) IsNumber() bool { return n.r.Type == gjson.Number }

// IsString reports whether the node is a JSON string.
func (n Node) IsString() bool { return n.r.Type == gjson.String }

// Get returns the member named key. Keys are matched literally, so
// "@type" and dotted keys need no escaping. A non-object yields an empty Node.
func (n Node) Get(key string) Node {
	if !n.r.IsObject() {
		return Node{}
	}
	var found gjson.Result
	n.r.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
			return false
		}
		return true
	})
	return Node{r: found}
}

// Path walks keys through nested objects. The first missing key or
// non-object along the way yields an empty Node.
func (n Node) Path(keys ...string) Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
		if !cur.Exists() {
			return Node{}
		}
	}
	return cur
}

// Index returns the i-th element of an array. Out-of-range indices and
// non-arrays yield an empty Node.
func (n Node) Index(i int) Node {
	if !n.r.IsArray() || i < 0 {
		return Node{}
	}
	items := n.r.Array()
	if i >= len(items) {
		return Node{}
	}
	return Node{r: items[i]}
}

// Len returns the number of array elements, or 0 for non-arrays.
func (n Node) Len() int {
	if !n.r.IsArray() {
		return 0
	}
	return len(n.r.Array())
}

// Elements returns the array elements. A non-array that exists is
// returned as a single element so callers can treat "one or many" alike.
func (n Node) Elements() []Node {
	if n.r.IsArray() {
		items := n.r.Array()
		out := make([]Node, len(items))
		for i, it := range items {
			out[i] = Node{r: it}
		}
		return out
	}
	if n.Exists() {
		return []Node{n}
	}
	return nil
}

// String returns the scalar text of the node. Objects, arrays and null
// yield "".
func (n Node) String() string {
	switch n.r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return n.r.String()
	}
	return ""
}

// Text is String with surrounding whitespace removed.
func (n Node) Text() string {
	return strings.TrimSpace(n.String())
}

// StringOr returns Text, or def when Text is empty.
func (n Node) StringOr(def string) string {
	if s := n.Text(); s != "" {
		return s
	}
	return def
}

// Value returns the decoded Go value (nil, bool, float64, string,
// []any or map[string]any).
func (n Node) Value() any {
	return n.r.Value()
}

// Raw returns the node's JSON text, or "" when empty.
func (n Node) Raw() string {
	return n.r.Raw
}

// MarshalJSON emits the node's JSON text unchanged.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.r.Raw == "" {
		return []byte("null"), nil
	}
	return []byte(n.r.Raw), nil
}

// UnmarshalJSON keeps a copy of data as the node's value.
func (n *Node) UnmarshalJSON(data []byte) error {
	*n = ParseBytes(append([]byte(nil), data...))
	return nil
}

// TypeOf returns the node's @type tag with any schema.org URL prefix
// removed. When @type is an array the first string entry is used.
func TypeOf(n Node) string {
	tag := n.Get("@type")
	if tag.IsArray() {
		for _, el := range tag.Elements() {
			if s := el.Text(); s != "" {
				tag = el
				break
			}
		}
	}
	return trimVocabulary(tag.Text())
}

// HasType reports whether n is tagged with want, ignoring case.
func HasType(n Node, want string) bool {
	return strings.EqualFold(TypeOf(n), want)
}

var vocabularyPrefixes = []string{
	"https://schema.org/",
	"http://schema.org/",
	"schema:",
}

func trimVocabulary(tag string) string {
	for _, p := range vocabularyPrefixes {
		if len(tag) > len(p) && strings.EqualFold(tag[:len(p)], p) {
			return tag[len(p):]
		}
	}
	return tag
}
