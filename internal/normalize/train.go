// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"github.com/pdiddy/reservation-engine/internal/schemaorg"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

// ExtractTrain maps a TrainReservation onto a TrainExtraction.
func ExtractTrain(item schemaorg.Node) types.TrainExtraction {
	ticket := item.Get("reservedTicket")

	passengers := []types.TrainPassenger{}
	if name := schemaorg.PersonName(item.Get("underName")); name != "" {
		passengers = append(passengers, types.TrainPassenger{
			Name:         name,
			TicketNumber: ticket.Get("ticketNumber").Text(),
		})
	}

	trains := []types.TrainSegment{}
	if trip := subject(item); trip.IsObject() {
		trains = append(trains, trainLeg(trip, ticket))
	}

	return types.TrainExtraction{
		ConfirmationNumber: confirmationNumber(item),
		Passengers:         passengers,
		PurchaseDate:       bookingDate(item),
		TotalCost:          schemaorg.Price(item.Get("totalPrice"), item.Get("price"), ticket.Get("totalPrice")),
		Currency:           schemaorg.Currency(item, ticket),
		Trains:             trains,
	}
}

func trainLeg(trip, ticket schemaorg.Node) types.TrainSegment {
	dep := trip.Get("departureStation")
	arr := trip.Get("arrivalStation")
	depDate, depTime := schemaorg.SplitDateTime(trip.Get("departureTime"))
	arrDate, arrTime := schemaorg.SplitDateTime(trip.Get("arrivalTime"))
	seat := ticket.Get("ticketedSeat")
	operator := trip.Get("provider")

	return types.TrainSegment{
		TrainNumber:          firstNonEmpty(trip.Get("trainNumber").Text(), trip.Get("trainName").Text()),
		Operator:             schemaorg.NameOf(operator),
		OperatorCode:         operator.Get("iataCode").Text(),
		DepartureStation:     schemaorg.NameOf(dep),
		DepartureStationCode: dep.Get("identifier").Text(),
		DepartureCity:        schemaorg.CityState(dep),
		DepartureDate:        depDate,
		DepartureTime:        depTime,
		DeparturePlatform:    trip.Get("departurePlatform").Text(),
		ArrivalStation:       schemaorg.NameOf(arr),
		ArrivalStationCode:   arr.Get("identifier").Text(),
		ArrivalCity:          schemaorg.CityState(arr),
		ArrivalDate:          arrDate,
		ArrivalTime:          arrTime,
		ArrivalPlatform:      trip.Get("arrivalPlatform").Text(),
		Class:                schemaorg.NameOf(seat.Get("seatingType")),
		Coach:                seat.Get("seatSection").Text(),
		Seat:                 seat.Get("seatNumber").Text(),
		Duration:             "",
	}
}
