// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"github.com/pdiddy/reservation-engine/internal/schemaorg"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

// ExtractCarRental maps a RentalCarReservation onto a CarRentalExtraction.
func ExtractCarRental(item schemaorg.Node) types.CarRentalExtraction {
	car := subject(item)

	pickup := first(item.Get("pickupLocation"))
	dropoff := first(schemaorg.FirstNode(item.Get("dropoffLocation"), item.Get("returnLocation")))
	pickDate, pickTime := schemaorg.SplitDateTime(item.Get("pickupTime"))
	retDate, retTime := schemaorg.SplitDateTime(schemaorg.FirstNode(item.Get("dropoffTime"), item.Get("returnTime")))

	return types.CarRentalExtraction{
		ConfirmationNumber: confirmationNumber(item),
		GuestName:          schemaorg.PersonName(item.Get("underName")),
		Company: firstNonEmpty(
			schemaorg.NameOf(item.Get("provider")),
			schemaorg.NameOf(car.Get("rentalCompany")),
			schemaorg.NameOf(car.Get("brand")),
		),
		VehicleClass: firstNonEmpty(
			schemaorg.NameOf(car.Get("vehicleConfiguration")),
			schemaorg.NameOf(car.Get("bodyType")),
		),
		VehicleModel: firstNonEmpty(
			schemaorg.NameOf(car.Get("model")),
			schemaorg.NameOf(car),
		),
		PickupLocation:     locationName(pickup),
		PickupAddress:      schemaorg.AddressText(pickup),
		PickupDate:         pickDate,
		PickupTime:         pickTime,
		PickupFlightNumber: "",
		ReturnLocation:     locationName(dropoff),
		ReturnAddress:      schemaorg.AddressText(dropoff),
		ReturnDate:         retDate,
		ReturnTime:         retTime,
		TotalCost:          totalCost(item),
		Currency:           schemaorg.Currency(item),
		Options:            []string{},
		OneWayCharge:       0,
		BookingDate:        bookingDate(item),
	}
}

// locationName prefers the place name and falls back to its address.
func locationName(place schemaorg.Node) string {
	return firstNonEmpty(schemaorg.NameOf(place), schemaorg.AddressText(place))
}
