// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"github.com/pdiddy/reservation-engine/internal/schemaorg"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

// defaultPartySize applies when partySize is missing or not a number.
const defaultPartySize = 2

// ExtractRestaurant maps a FoodEstablishmentReservation onto a
// RestaurantExtraction.
func ExtractRestaurant(item schemaorg.Node) types.RestaurantExtraction {
	place := subject(item)
	date, clock := schemaorg.SplitDateTime(schemaorg.FirstNode(item.Get("startTime"), item.Get("startDate")))

	partySize, ok := schemaorg.Int(item.Get("partySize"))
	if !ok {
		partySize = defaultPartySize
	}

	return types.RestaurantExtraction{
		ConfirmationNumber: confirmationNumber(item),
		GuestName:          schemaorg.PersonName(item.Get("underName")),
		RestaurantName:     schemaorg.NameOf(place),
		Address:            schemaorg.AddressText(place),
		Phone:              place.Get("telephone").Text(),
		ReservationDate:    date,
		ReservationTime:    clock,
		PartySize:          partySize,
		SpecialRequests:    "",
		Cost:               totalCost(item),
		Currency:           schemaorg.Currency(item),
		BookingDate:        bookingDate(item),
		Platform:           provider(item),
		CancellationPolicy: "",
	}
}
