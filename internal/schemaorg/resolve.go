// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schemaorg

import (
	"strings"

	"github.com/spf13/cast"
)

// FirstText returns the first candidate whose Text is non-empty, or "".
// Candidates are tried in the order given.
func FirstText(candidates ...Node) string {
	for _, c := range candidates {
		if s := c.Text(); s != "" {
			return s
		}
	}
	return ""
}

// FirstString walks each dotted path ("reservedTicket.ticketNumber") from n
// and returns the first non-empty text.
func FirstString(n Node, paths ...string) string {
	for _, p := range paths {
		if s := n.Path(strings.Split(p, ".")...).Text(); s != "" {
			return s
		}
	}
	return ""
}

// FirstNode returns the first candidate that exists and is not a blank
// string, or an empty Node.
func FirstNode(candidates ...Node) Node {
	for _, c := range candidates {
		if !c.Exists() {
			continue
		}
		if c.IsString() && c.Text() == "" {
			continue
		}
		return c
	}
	return Node{}
}

// NameOf returns the text of a plain string or the "name" member of an
// object, e.g. an Organization given as "United" or {"name":"United"}.
func NameOf(n Node) string {
	if n.IsObject() {
		return n.Get("name").Text()
	}
	if n.IsArray() {
		return NameOf(n.Index(0))
	}
	return n.Text()
}

// PersonName resolves a Person or a plain name. A non-empty "name" wins;
// otherwise givenName and familyName are joined. Arrays use their first
// element.
func PersonName(n Node) string {
	switch {
	case n.IsArray():
		return PersonName(n.Index(0))
	case n.IsObject():
		if name := n.Get("name").Text(); name != "" {
			return name
		}
		given := n.Get("givenName").Text()
		family := n.Get("familyName").Text()
		return strings.TrimSpace(given + " " + family)
	}
	return n.Text()
}

// postalParts is the fixed order in which address components are joined.
var postalParts = []string{
	"streetAddress",
	"addressLocality",
	"addressRegion",
	"postalCode",
	"addressCountry",
}

// AddressText resolves a place or address to one line. A plain string is
// returned as is; a place whose "address" is a string returns that string;
// a structured PostalAddress is joined as street, locality, region, postal
// code, country with ", ".
func AddressText(n Node) string {
	if !n.IsObject() {
		return n.Text()
	}
	addr := n.Get("address")
	switch {
	case addr.IsObject():
		return postalText(addr)
	case addr.Exists():
		return addr.Text()
	case isPostalAddress(n):
		return postalText(n)
	}
	return ""
}

func postalText(addr Node) string {
	var parts []string
	for _, key := range postalParts {
		if s := NameOf(addr.Get(key)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func isPostalAddress(n Node) bool {
	if HasType(n, "PostalAddress") {
		return true
	}
	for _, key := range postalParts {
		if n.Get(key).Exists() {
			return true
		}
	}
	return false
}

// CityState returns "City, State", "City" or "" for a place (via its
// address) or a PostalAddress.
func CityState(n Node) string {
	addr := n.Get("address")
	if !addr.IsObject() {
		addr = n
	}
	city := addr.Get("addressLocality").Text()
	state := NameOf(addr.Get("addressRegion"))
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	}
	return ""
}

// Float coerces a number, numeric text, QuantitativeValue or
// PriceSpecification to a float64. ok is false when nothing numeric is found.
func Float(n Node) (float64, bool) {
	switch {
	case n.IsObject():
		return Float(FirstNode(n.Get("value"), n.Get("price")))
	case n.IsNumber():
		f, err := cast.ToFloat64E(n.Value())
		return f, err == nil
	case n.IsString():
		s := strings.ReplaceAll(n.Text(), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := cast.ToFloat64E(s)
		return f, err == nil
	}
	return 0, false
}

// Int coerces like Float but yields an integer. Fractions are truncated.
func Int(n Node) (int, bool) {
	switch {
	case n.IsObject():
		return Int(n.Get("value"))
	case n.IsNumber():
		i, err := cast.ToIntE(n.Value())
		return i, err == nil
	case n.IsString():
		s := trimLeadingZeros(n.Text())
		if s == "" {
			return 0, false
		}
		i, err := cast.ToIntE(s)
		return i, err == nil
	}
	return 0, false
}

// trimLeadingZeros keeps "08" from being read as an octal literal.
func trimLeadingZeros(s string) string {
	if len(s) < 2 || s[0] != '0' {
		return s
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return s
		}
	}
	if t := strings.TrimLeft(s, "0"); t != "" {
		return t
	}
	return "0"
}

// Price resolves a price from the first candidate that coerces, absorbing
// failures to 0.
func Price(candidates ...Node) float64 {
	for _, c := range candidates {
		if f, ok := Float(c); ok {
			return f
		}
	}
	return 0
}

// Currency resolves priceCurrency from the first candidate that has it,
// looking inside PriceSpecification objects as well.
func Currency(candidates ...Node) string {
	for _, c := range candidates {
		if s := c.Get("priceCurrency").Text(); s != "" {
			return s
		}
		for _, key := range []string{"totalPrice", "price"} {
			if s := c.Path(key, "priceCurrency").Text(); s != "" {
				return s
			}
		}
	}
	return ""
}
