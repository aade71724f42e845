// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"github.com/pdiddy/reservation-engine/internal/schemaorg"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

// ExtractHotel maps a LodgingReservation onto a HotelExtraction.
func ExtractHotel(item schemaorg.Node) types.HotelExtraction {
	lodging := subject(item)

	// Providers disagree on casing: checkinTime is schema.org, checkInTime is common.
	checkIn := schemaorg.FirstNode(
		item.Get("checkinTime"),
		item.Get("checkInTime"),
		item.Get("checkinDate"),
		item.Get("checkInDate"),
	)
	checkOut := schemaorg.FirstNode(
		item.Get("checkoutTime"),
		item.Get("checkOutTime"),
		item.Get("checkoutDate"),
		item.Get("checkOutDate"),
	)
	inDate, inTime := schemaorg.SplitDateTime(checkIn)
	outDate, outTime := schemaorg.SplitDateTime(checkOut)

	rooms, _ := schemaorg.Int(item.Get("numberOfRooms"))

	return types.HotelExtraction{
		ConfirmationNumber: confirmationNumber(item),
		GuestName:          schemaorg.PersonName(item.Get("underName")),
		HotelName:          schemaorg.NameOf(lodging),
		Address:            schemaorg.AddressText(lodging),
		CheckInDate:        inDate,
		CheckInTime:        inTime,
		CheckOutDate:       outDate,
		CheckOutTime:       outTime,
		RoomType: firstNonEmpty(
			schemaorg.NameOf(item.Get("lodgingUnitType")),
			item.Get("lodgingUnitDescription").Text(),
		),
		NumberOfRooms:      rooms,
		NumberOfGuests:     guestCount(item),
		TotalCost:          totalCost(item),
		Currency:           schemaorg.Currency(item),
		BookingDate:        bookingDate(item),
		ContactPhone:       lodging.Get("telephone").Text(),
		CancellationPolicy: "",
		ImageURL:           urlOf(lodging.Get("image")),
		URL:                firstNonEmpty(item.Get("url").Text(), urlOf(lodging.Get("url"))),
	}
}

// guestCount sums numAdults and numChildren; either may be missing.
func guestCount(item schemaorg.Node) int {
	adults, _ := schemaorg.Int(item.Get("numAdults"))
	children, _ := schemaorg.Int(item.Get("numChildren"))
	return adults + children
}
