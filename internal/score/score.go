// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score measures how complete a canonical reservation is and
// decides whether it is trustworthy enough to use.
package score

import (
	"strconv"
	"strings"

	"github.com/pdiddy/reservation-engine/internal/schemaorg"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

const (
	// AcceptanceThreshold is the minimum completeness for a record to be
	// returned as a successful extraction. Lower scores are discarded so a
	// fallback extractor can try. Changing it is a policy decision.
	AcceptanceThreshold = 0.8

	// MediumThreshold is the lower bound of the medium confidence tier.
	MediumThreshold = 0.5

	// UnknownTypeScore is reported for types with no required-field list.
	UnknownTypeScore = 0.5
)

// manifest lists, per reservation type, the fields that must be non-empty.
// Paths use dots for members and [i] for array elements.
var manifest = map[types.ReservationType][]string{
	types.TypeFlight: {
		"flights[0].flightNumber",
		"flights[0].departureAirport",
		"flights[0].arrivalAirport",
		"flights[0].departureDate",
		"flights[0].departureTime",
		"flights[0].arrivalDate",
		"flights[0].arrivalTime",
	},
	types.TypeHotel: {
		"hotelName",
		"checkInDate",
		"checkOutDate",
	},
	types.TypeCarRental: {
		"company",
		"pickupLocation",
		"pickupDate",
		"returnLocation",
		"returnDate",
	},
	types.TypeTrain: {
		"trains[0].trainNumber",
		"trains[0].departureStation",
		"trains[0].arrivalStation",
		"trains[0].departureDate",
		"trains[0].departureTime",
		"trains[0].arrivalDate",
		"trains[0].arrivalTime",
	},
	types.TypeRestaurant: {
		"restaurantName",
		"reservationDate",
		"reservationTime",
	},
	types.TypeEvent: {
		"eventName",
		"venueName",
		"eventDate",
	},
}

// RequiredFields returns a copy of the required paths for rt, or nil when
// rt has none.
func RequiredFields(rt types.ReservationType) []string {
	paths, ok := manifest[rt]
	if !ok {
		return nil
	}
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}

// Report is the detailed outcome of scoring one record.
type Report struct {
	Score   float64
	Found   int
	Total   int
	Missing []string
}

// Evaluate scores record against the required fields for rt. Types with
// no required fields score UnknownTypeScore.
func Evaluate(record any, rt types.ReservationType) Report {
	paths, ok := manifest[rt]
	if !ok || len(paths) == 0 {
		return Report{Score: UnknownTypeScore}
	}

	doc := schemaorg.FromValue(record)
	report := Report{Total: len(paths)}
	for _, p := range paths {
		if present(Lookup(doc, p)) {
			report.Found++
		} else {
			report.Missing = append(report.Missing, p)
		}
	}
	report.Score = float64(report.Found) / float64(report.Total)
	return report
}

// Completeness returns the fraction of required fields present in record.
func Completeness(record any, rt types.ReservationType) float64 {
	return Evaluate(record, rt).Score
}

// Classify maps a score to its confidence tier.
func Classify(score float64) types.Confidence {
	switch {
	case score >= AcceptanceThreshold:
		return types.ConfidenceHigh
	case score >= MediumThreshold:
		return types.ConfidenceMedium
	}
	return types.ConfidenceLow
}

// Accepted reports whether score clears the acceptance gate.
func Accepted(score float64) bool {
	return score >= AcceptanceThreshold
}

// Lookup resolves a dotted path with optional [i] segments, such as
// "flights[0].flightNumber", against doc. Missing members, out-of-range
// indices and indexing into non-arrays yield an empty Node.
func Lookup(doc schemaorg.Node, path string) schemaorg.Node {
	cur := doc
	for _, seg := range strings.Split(path, ".") {
		name, indices := splitIndices(seg)
		if name != "" {
			cur = cur.Get(name)
		}
		for _, i := range indices {
			cur = cur.Index(i)
		}
		if !cur.Exists() {
			return schemaorg.Node{}
		}
	}
	return cur
}

// splitIndices splits "flights[0][1]" into "flights" and [0 1]. A
// malformed index becomes -1, which never resolves.
func splitIndices(seg string) (string, []int) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, nil
	}
	name := seg[:open]
	var indices []int
	rest := seg[open:]
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return name, append(indices, -1)
		}
		i, err := strconv.Atoi(rest[1:end])
		if err != nil {
			i = -1
		}
		indices = append(indices, i)
		rest = rest[end+1:]
	}
	return name, indices
}

// present reports whether a resolved value counts as filled in.
func present(n schemaorg.Node) bool {
	switch {
	case !n.Exists():
		return false
	case n.IsArray():
		return n.Len() > 0
	case n.IsObject():
		return n.Raw() != "{}" && strings.TrimSpace(strings.Trim(n.Raw(), "{}")) != ""
	case n.IsNumber():
		f, _ := schemaorg.Float(n)
		return f != 0
	}
	s := n.Text()
	return s != "" && s != "false"
}
