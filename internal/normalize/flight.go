// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"github.com/pdiddy/reservation-engine/internal/schemaorg"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

// legType is the @type every element of a multi-leg reservationFor must carry.
const legType = "Flight"

// ExtractFlight maps a FlightReservation onto a FlightExtraction.
// reservationFor may be one Flight or a list of legs; list elements not
// tagged Flight are skipped.
func ExtractFlight(item schemaorg.Node) types.FlightExtraction {
	ticket := item.Get("reservedTicket")

	return types.FlightExtraction{
		ConfirmationNumber: confirmationNumber(item),
		PassengerName:      schemaorg.PersonName(item.Get("underName")),
		Flights:            flightLegs(item),
		ETicketNumber:      schemaorg.FirstString(item, "reservedTicket.ticketNumber", "ticketNumber"),
		PurchaseDate:       bookingDate(item),
		TotalCost:          schemaorg.Price(item.Get("totalPrice"), item.Get("price"), ticket.Get("totalPrice")),
		Currency:           schemaorg.Currency(item, ticket),
	}
}

func flightLegs(item schemaorg.Node) []types.FlightSegment {
	legs := []types.FlightSegment{}

	subject := item.Get("reservationFor")
	switch {
	case subject.IsArray():
		for _, leg := range subject.Elements() {
			if !schemaorg.HasType(leg, legType) {
				continue
			}
			legs = append(legs, flightLeg(item, leg))
		}
	case subject.IsObject():
		legs = append(legs, flightLeg(item, subject))
	}

	return legs
}

func flightLeg(item, flight schemaorg.Node) types.FlightSegment {
	dep := flight.Get("departureAirport")
	arr := flight.Get("arrivalAirport")
	depDate, depTime := schemaorg.SplitDateTime(schemaorg.FirstNode(flight.Get("departureTime"), flight.Get("departureDate")))
	arrDate, arrTime := schemaorg.SplitDateTime(schemaorg.FirstNode(flight.Get("arrivalTime"), flight.Get("arrivalDate")))

	airline := flight.Get("airline")
	carrierCode := firstNonEmpty(airline.Get("iataCode").Text(), airline.Get("icaoCode").Text())
	seat := item.Path("reservedTicket", "ticketedSeat")

	return types.FlightSegment{
		FlightNumber:     flightNumber(flight.Get("flightNumber").Text(), carrierCode),
		Carrier:          firstNonEmpty(schemaorg.NameOf(airline), schemaorg.NameOf(flight.Get("provider"))),
		CarrierCode:      carrierCode,
		DepartureAirport: airportCode(dep),
		DepartureCity:    schemaorg.CityState(dep),
		DepartureDate:    depDate,
		DepartureTime:    depTime,
		ArrivalAirport:   airportCode(arr),
		ArrivalCity:      schemaorg.CityState(arr),
		ArrivalDate:      arrDate,
		ArrivalTime:      arrTime,
		Cabin: firstNonEmpty(
			schemaorg.NameOf(item.Get("airplaneSeatClass")),
			schemaorg.NameOf(seat.Get("seatingType")),
		),
		SeatNumber: firstNonEmpty(
			item.Get("airplaneSeat").Text(),
			seat.Get("seatNumber").Text(),
		),
		OperatedBy: schemaorg.NameOf(flight.Get("operatedBy")),
	}
}

// airportCode prefers the IATA code and falls back to the airport name.
func airportCode(airport schemaorg.Node) string {
	return firstNonEmpty(airport.Get("iataCode").Text(), schemaorg.NameOf(airport))
}

// flightNumber prefixes a bare numeric flight number with the carrier code,
// so {"flightNumber":"110","airline":{"iataCode":"UA"}} becomes "UA110".
func flightNumber(number, carrierCode string) string {
	if number == "" || carrierCode == "" {
		return number
	}
	if strings.Trim(number, "0123456789") != "" {
		return number
	}
	return carrierCode + number
}
