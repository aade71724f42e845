// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"strings"

	"github.com/pdiddy/reservation-engine/internal/schemaorg"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

// Extractor converts one source item into a canonical record.
type Extractor func(schemaorg.Node) types.Reservation

// typeTags maps each reservation type to the lowercase schema.org @type
// values that may carry it. Hotel and restaurant have legacy aliases.
var typeTags = map[types.ReservationType][]string{
	types.TypeFlight:        {"flightreservation"},
	types.TypeHotel:         {"lodgingreservation", "hotelreservation"},
	types.TypeCarRental:     {"rentalcarreservation"},
	types.TypeTrain:         {"trainreservation"},
	types.TypeRestaurant:    {"foodestablishmentreservation", "restaurantreservation"},
	types.TypeEvent:         {"eventreservation"},
	types.TypeCruise:        {"boatreservation"},
	types.TypePrivateDriver: {"taxireservation"},
}

var extractors = map[types.ReservationType]Extractor{
	types.TypeFlight:     func(n schemaorg.Node) types.Reservation { return ExtractFlight(n) },
	types.TypeHotel:      func(n schemaorg.Node) types.Reservation { return ExtractHotel(n) },
	types.TypeCarRental:  func(n schemaorg.Node) types.Reservation { return ExtractCarRental(n) },
	types.TypeTrain:      func(n schemaorg.Node) types.Reservation { return ExtractTrain(n) },
	types.TypeRestaurant: func(n schemaorg.Node) types.Reservation { return ExtractRestaurant(n) },
	types.TypeEvent:      func(n schemaorg.Node) types.Reservation { return ExtractEvent(n) },
}

// Dispatcher routes source items to the extractor for a requested type.
// It holds only read-only tables and is safe for concurrent use.
type Dispatcher struct {
	tags       map[types.ReservationType][]string
	extractors map[types.ReservationType]Extractor
}

// NewDispatcher returns a Dispatcher over the built-in type tables.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{tags: typeTags, extractors: extractors}
}

// ExpectedTypes returns the schema.org @type values accepted for rt, or
// nil when rt is unknown.
func (d *Dispatcher) ExpectedTypes(rt types.ReservationType) []string {
	tags := d.tags[rt]
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// Matches reports whether item's @type is one of the tags expected for rt.
// The comparison is case-insensitive and exact.
func (d *Dispatcher) Matches(item schemaorg.Node, rt types.ReservationType) bool {
	tag := strings.ToLower(schemaorg.TypeOf(item))
	if tag == "" {
		return false
	}
	for _, want := range d.tags[rt] {
		if tag == want {
			return true
		}
	}
	return false
}

// Dispatch runs the extractor for rt when item's @type matches. ok is
// false when the type does not match, rt is unknown, or rt has no
// extractor; callers move on to the next candidate. A panic inside the
// extractor is recovered and returned as err.
func (d *Dispatcher) Dispatch(item schemaorg.Node, rt types.ReservationType) (rec types.Reservation, ok bool, err error) {
	if !d.Matches(item, rt) {
		return nil, false, nil
	}
	extract, found := d.extractors[rt]
	if !found {
		return nil, false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			rec, ok, err = nil, false, fmt.Errorf("%s extractor failed: %v", rt, r)
		}
	}()

	return extract(item), true, nil
}
