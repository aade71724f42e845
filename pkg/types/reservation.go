// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ReservationType names the kind of booking a caller asks the engine to
// normalize. The value is the wire form used by the service and CLI.
type ReservationType string

const (
	TypeFlight     ReservationType = "flight"
	TypeHotel      ReservationType = "hotel"
	TypeCarRental  ReservationType = "car-rental"
	TypeTrain      ReservationType = "train"
	TypeRestaurant ReservationType = "restaurant"
	TypeEvent      ReservationType = "event"

	// Request-only types. The service accepts them but no canonical schema
	// exists, so they never produce a structured result.
	TypeCruise        ReservationType = "cruise"
	TypePrivateDriver ReservationType = "private-driver"
	TypeGeneric       ReservationType = "generic"
)

// requestTypes lists every value accepted on the wire, in display order.
var requestTypes = []ReservationType{
	TypeFlight,
	TypeHotel,
	TypeCarRental,
	TypeTrain,
	TypeRestaurant,
	TypeEvent,
	TypeCruise,
	TypePrivateDriver,
	TypeGeneric,
}

// RequestTypes returns the reservation types accepted by the service.
func RequestTypes() []ReservationType {
	out := make([]ReservationType, len(requestTypes))
	copy(out, requestTypes)
	return out
}

// ParseReservationType normalizes s and reports whether it is an accepted
// request type.
func ParseReservationType(s string) (ReservationType, bool) {
	rt := ReservationType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range requestTypes {
		if rt == known {
			return rt, true
		}
	}
	return rt, false
}

// Reservation is implemented by every canonical record.
type Reservation interface {
	ReservationType() ReservationType
}

// FlightSegment is one flight leg.
type FlightSegment struct {
	FlightNumber     string `json:"flightNumber" yaml:"flightNumber"`
	Carrier          string `json:"carrier" yaml:"carrier"`
	CarrierCode      string `json:"carrierCode" yaml:"carrierCode"`
	DepartureAirport string `json:"departureAirport" yaml:"departureAirport"`
	DepartureCity    string `json:"departureCity" yaml:"departureCity"`
	DepartureDate    string `json:"departureDate" yaml:"departureDate"`
	DepartureTime    string `json:"departureTime" yaml:"departureTime"`
	ArrivalAirport   string `json:"arrivalAirport" yaml:"arrivalAirport"`
	ArrivalCity      string `json:"arrivalCity" yaml:"arrivalCity"`
	ArrivalDate      string `json:"arrivalDate" yaml:"arrivalDate"`
	ArrivalTime      string `json:"arrivalTime" yaml:"arrivalTime"`
	Cabin            string `json:"cabin" yaml:"cabin"`
	SeatNumber       string `json:"seatNumber" yaml:"seatNumber"`
	OperatedBy       string `json:"operatedBy" yaml:"operatedBy"`
}

// FlightExtraction is the canonical flight reservation.
type FlightExtraction struct {
	ConfirmationNumber string          `json:"confirmationNumber" yaml:"confirmationNumber"`
	PassengerName      string          `json:"passengerName" yaml:"passengerName"`
	Flights            []FlightSegment `json:"flights" yaml:"flights"`
	ETicketNumber      string          `json:"eTicketNumber" yaml:"eTicketNumber"`
	PurchaseDate       string          `json:"purchaseDate" yaml:"purchaseDate"`
	TotalCost          float64         `json:"totalCost" yaml:"totalCost"`
	Currency           string          `json:"currency" yaml:"currency"`
}

func (FlightExtraction) ReservationType() ReservationType { return TypeFlight }

// HotelExtraction is the canonical lodging reservation.
type HotelExtraction struct {
	ConfirmationNumber string  `json:"confirmationNumber" yaml:"confirmationNumber"`
	GuestName          string  `json:"guestName" yaml:"guestName"`
	HotelName          string  `json:"hotelName" yaml:"hotelName"`
	Address            string  `json:"address" yaml:"address"`
	CheckInDate        string  `json:"checkInDate" yaml:"checkInDate"`
	CheckInTime        string  `json:"checkInTime" yaml:"checkInTime"`
	CheckOutDate       string  `json:"checkOutDate" yaml:"checkOutDate"`
	CheckOutTime       string  `json:"checkOutTime" yaml:"checkOutTime"`
	RoomType           string  `json:"roomType" yaml:"roomType"`
	NumberOfRooms      int     `json:"numberOfRooms" yaml:"numberOfRooms"`
	NumberOfGuests     int     `json:"numberOfGuests" yaml:"numberOfGuests"`
	TotalCost          float64 `json:"totalCost" yaml:"totalCost"`
	Currency           string  `json:"currency" yaml:"currency"`
	BookingDate        string  `json:"bookingDate" yaml:"bookingDate"`
	ContactPhone       string  `json:"contactPhone" yaml:"contactPhone"`
	CancellationPolicy string  `json:"cancellationPolicy" yaml:"cancellationPolicy"`
	ImageURL           string  `json:"imageUrl" yaml:"imageUrl"`
	URL                string  `json:"url" yaml:"url"`
}

func (HotelExtraction) ReservationType() ReservationType { return TypeHotel }

// CarRentalExtraction is the canonical rental car reservation.
type CarRentalExtraction struct {
	ConfirmationNumber string   `json:"confirmationNumber" yaml:"confirmationNumber"`
	GuestName          string   `json:"guestName" yaml:"guestName"`
	Company            string   `json:"company" yaml:"company"`
	VehicleClass       string   `json:"vehicleClass" yaml:"vehicleClass"`
	VehicleModel       string   `json:"vehicleModel" yaml:"vehicleModel"`
	PickupLocation     string   `json:"pickupLocation" yaml:"pickupLocation"`
	PickupAddress      string   `json:"pickupAddress" yaml:"pickupAddress"`
	PickupDate         string   `json:"pickupDate" yaml:"pickupDate"`
	PickupTime         string   `json:"pickupTime" yaml:"pickupTime"`
	PickupFlightNumber string   `json:"pickupFlightNumber" yaml:"pickupFlightNumber"`
	ReturnLocation     string   `json:"returnLocation" yaml:"returnLocation"`
	ReturnAddress      string   `json:"returnAddress" yaml:"returnAddress"`
	ReturnDate         string   `json:"returnDate" yaml:"returnDate"`
	ReturnTime         string   `json:"returnTime" yaml:"returnTime"`
	TotalCost          float64  `json:"totalCost" yaml:"totalCost"`
	Currency           string   `json:"currency" yaml:"currency"`
	Options            []string `json:"options" yaml:"options"`
	OneWayCharge       float64  `json:"oneWayCharge" yaml:"oneWayCharge"`
	BookingDate        string   `json:"bookingDate" yaml:"bookingDate"`
}

func (CarRentalExtraction) ReservationType() ReservationType { return TypeCarRental }

// TrainPassenger is a traveller named on a rail booking.
type TrainPassenger struct {
	Name         string `json:"name" yaml:"name"`
	TicketNumber string `json:"ticketNumber" yaml:"ticketNumber"`
}

// TrainSegment is one rail leg.
type TrainSegment struct {
	TrainNumber          string `json:"trainNumber" yaml:"trainNumber"`
	Operator             string `json:"operator" yaml:"operator"`
	OperatorCode         string `json:"operatorCode" yaml:"operatorCode"`
	DepartureStation     string `json:"departureStation" yaml:"departureStation"`
	DepartureStationCode string `json:"departureStationCode" yaml:"departureStationCode"`
	DepartureCity        string `json:"departureCity" yaml:"departureCity"`
	DepartureDate        string `json:"departureDate" yaml:"departureDate"`
	DepartureTime        string `json:"departureTime" yaml:"departureTime"`
	DeparturePlatform    string `json:"departurePlatform" yaml:"departurePlatform"`
	ArrivalStation       string `json:"arrivalStation" yaml:"arrivalStation"`
	ArrivalStationCode   string `json:"arrivalStationCode" yaml:"arrivalStationCode"`
	ArrivalCity          string `json:"arrivalCity" yaml:"arrivalCity"`
	ArrivalDate          string `json:"arrivalDate" yaml:"arrivalDate"`
	ArrivalTime          string `json:"arrivalTime" yaml:"arrivalTime"`
	ArrivalPlatform      string `json:"arrivalPlatform" yaml:"arrivalPlatform"`
	Class                string `json:"class" yaml:"class"`
	Coach                string `json:"coach" yaml:"coach"`
	Seat                 string `json:"seat" yaml:"seat"`
	Duration             string `json:"duration" yaml:"duration"`
}

// TrainExtraction is the canonical rail reservation.
type TrainExtraction struct {
	ConfirmationNumber string           `json:"confirmationNumber" yaml:"confirmationNumber"`
	Passengers         []TrainPassenger `json:"passengers" yaml:"passengers"`
	PurchaseDate       string           `json:"purchaseDate" yaml:"purchaseDate"`
	TotalCost          float64          `json:"totalCost" yaml:"totalCost"`
	Currency           string           `json:"currency" yaml:"currency"`
	Trains             []TrainSegment   `json:"trains" yaml:"trains"`
}

func (TrainExtraction) ReservationType() ReservationType { return TypeTrain }

// RestaurantExtraction is the canonical dining reservation.
type RestaurantExtraction struct {
	ConfirmationNumber string  `json:"confirmationNumber" yaml:"confirmationNumber"`
	GuestName          string  `json:"guestName" yaml:"guestName"`
	RestaurantName     string  `json:"restaurantName" yaml:"restaurantName"`
	Address            string  `json:"address" yaml:"address"`
	Phone              string  `json:"phone" yaml:"phone"`
	ReservationDate    string  `json:"reservationDate" yaml:"reservationDate"`
	ReservationTime    string  `json:"reservationTime" yaml:"reservationTime"`
	PartySize          int     `json:"partySize" yaml:"partySize"`
	SpecialRequests    string  `json:"specialRequests" yaml:"specialRequests"`
	Cost               float64 `json:"cost" yaml:"cost"`
	Currency           string  `json:"currency" yaml:"currency"`
	BookingDate        string  `json:"bookingDate" yaml:"bookingDate"`
	Platform           string  `json:"platform" yaml:"platform"`
	CancellationPolicy string  `json:"cancellationPolicy" yaml:"cancellationPolicy"`
}

func (RestaurantExtraction) ReservationType() ReservationType { return TypeRestaurant }

// EventTicket is one ticket line item.
type EventTicket struct {
	TicketType string  `json:"ticketType" yaml:"ticketType"`
	Quantity   int     `json:"quantity" yaml:"quantity"`
	Price      float64 `json:"price" yaml:"price"`
	SeatInfo   string  `json:"seatInfo" yaml:"seatInfo"`
}

// EventExtraction is the canonical event or attraction reservation.
type EventExtraction struct {
	ConfirmationNumber  string        `json:"confirmationNumber" yaml:"confirmationNumber"`
	GuestName           string        `json:"guestName" yaml:"guestName"`
	EventName           string        `json:"eventName" yaml:"eventName"`
	VenueName           string        `json:"venueName" yaml:"venueName"`
	Address             string        `json:"address" yaml:"address"`
	EventDate           string        `json:"eventDate" yaml:"eventDate"`
	EventTime           string        `json:"eventTime" yaml:"eventTime"`
	DoorsOpenTime       string        `json:"doorsOpenTime" yaml:"doorsOpenTime"`
	Tickets             []EventTicket `json:"tickets" yaml:"tickets"`
	TotalCost           float64       `json:"totalCost" yaml:"totalCost"`
	Currency            string        `json:"currency" yaml:"currency"`
	BookingDate         string        `json:"bookingDate" yaml:"bookingDate"`
	Platform            string        `json:"platform" yaml:"platform"`
	EventType           string        `json:"eventType" yaml:"eventType"`
	SpecialInstructions string        `json:"specialInstructions" yaml:"specialInstructions"`
}

func (EventExtraction) ReservationType() ReservationType { return TypeEvent }
