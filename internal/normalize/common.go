// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps schema.org reservations onto the canonical
// reservation records, one pure extractor per reservation type, and
// dispatches source items to the extractor matching the requested type.
//
// Every extractor follows the same steps: top-level identifiers, the
// reserved subject (flight, lodging, car, trip, restaurant, event), start
// and end date-times split into date and clock fields, then fields with no
// schema.org equivalent set to their empty defaults.
package normalize

import (
	"strings"

	"github.com/pdiddy/reservation-engine/internal/schemaorg"
)

// confirmationNumber resolves the booking reference.
func confirmationNumber(item schemaorg.Node) string {
	return schemaorg.FirstText(
		item.Get("reservationNumber"),
		item.Get("confirmationNumber"),
		item.Get("reservationId"),
	)
}

// bookingDate resolves the date the reservation was made.
func bookingDate(item schemaorg.Node) string {
	return schemaorg.ParseDate(schemaorg.FirstNode(
		item.Get("bookingTime"),
		item.Get("bookingDate"),
	))
}

// subject returns the reserved thing. When reservationFor is a list the
// first entry is used.
func subject(item schemaorg.Node) schemaorg.Node {
	return first(item.Get("reservationFor"))
}

// first returns n, or its first element when n is an array.
func first(n schemaorg.Node) schemaorg.Node {
	if n.IsArray() {
		return n.Index(0)
	}
	return n
}

// provider resolves the selling party: provider, then broker.
func provider(item schemaorg.Node) string {
	return firstNonEmpty(
		schemaorg.NameOf(item.Get("provider")),
		schemaorg.NameOf(item.Get("broker")),
	)
}

// totalCost resolves the total price of the reservation.
func totalCost(item schemaorg.Node) float64 {
	return schemaorg.Price(item.Get("totalPrice"), item.Get("price"))
}

// urlOf resolves a URL given as text, an ImageObject/WebPage, or a list.
func urlOf(n schemaorg.Node) string {
	n = first(n)
	if n.IsObject() {
		return schemaorg.FirstText(n.Get("url"), n.Get("contentUrl"))
	}
	return n.Text()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
