// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"github.com/pdiddy/reservation-engine/internal/schemaorg"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

const (
	defaultTicketQuantity = 1
	generalAdmission      = "General Admission"
)

// ExtractEvent maps an EventReservation onto an EventExtraction. The
// source carries one seat count for the whole booking, so exactly one
// general admission ticket line is produced.
func ExtractEvent(item schemaorg.Node) types.EventExtraction {
	event := subject(item)
	venue := first(event.Get("location"))
	ticket := item.Get("reservedTicket")
	date, clock := schemaorg.SplitDateTime(schemaorg.FirstNode(event.Get("startDate"), event.Get("startTime")))

	quantity, ok := schemaorg.Int(item.Get("numSeats"))
	if !ok {
		quantity = defaultTicketQuantity
	}

	return types.EventExtraction{
		ConfirmationNumber: confirmationNumber(item),
		GuestName:          schemaorg.PersonName(item.Get("underName")),
		EventName:          schemaorg.NameOf(event),
		VenueName:          schemaorg.NameOf(venue),
		Address:            schemaorg.AddressText(venue),
		EventDate:          date,
		EventTime:          clock,
		DoorsOpenTime:      schemaorg.ParseClockTime(event.Get("doorTime")),
		Tickets: []types.EventTicket{{
			TicketType: generalAdmission,
			Quantity:   quantity,
			Price:      schemaorg.Price(ticket.Get("totalPrice"), ticket.Get("price")),
			SeatInfo:   seatInfo(ticket.Get("ticketedSeat")),
		}},
		TotalCost:           totalCost(item),
		Currency:            schemaorg.Currency(item, ticket),
		BookingDate:         bookingDate(item),
		Platform:            provider(item),
		EventType:           eventType(event),
		SpecialInstructions: "",
	}
}

// eventType reports a specific Event subtype such as MusicEvent; the
// generic "Event" tag says nothing and yields "".
func eventType(event schemaorg.Node) string {
	tag := schemaorg.TypeOf(event)
	if strings.EqualFold(tag, "Event") {
		return ""
	}
	return tag
}

// seatInfo renders a Seat as "Section: A, Row: 3, Seat: 12" using the
// parts that are present.
func seatInfo(seat schemaorg.Node) string {
	var parts []string
	for _, p := range []struct{ label, key string }{
		{"Section", "seatSection"},
		{"Row", "seatRow"},
		{"Seat", "seatNumber"},
	} {
		if v := seat.Get(p.key).Text(); v != "" {
			parts = append(parts, p.label+": "+v)
		}
	}
	return strings.Join(parts, ", ")
}
