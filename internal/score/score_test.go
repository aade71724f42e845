// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reservation-engine/internal/normalize"
	"github.com/pdiddy/reservation-engine/internal/schemaorg"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

func TestEvaluateHotelMissingCheckout(t *testing.T) {
	rec := types.HotelExtraction{
		HotelName:   "Grand Hotel",
		CheckInDate: "2026-03-01",
	}

	report := Evaluate(rec, types.TypeHotel)
	assert.Equal(t, 2, report.Found)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, []string{"checkOutDate"}, report.Missing)
	assert.InDelta(t, 2.0/3.0, report.Score, 1e-9)
	assert.Equal(t, types.ConfidenceMedium, Classify(report.Score))
	assert.False(t, Accepted(report.Score))
}

func TestCompletenessFlight(t *testing.T) {
	full := types.FlightExtraction{Flights: []types.FlightSegment{{
		FlightNumber:     "UA1234",
		DepartureAirport: "SFO",
		ArrivalAirport:   "LAX",
		DepartureDate:    "2026-01-30",
		DepartureTime:    "10:00 AM",
		ArrivalDate:      "2026-01-30",
		ArrivalTime:      "12:00 PM",
	}}}
	assert.Equal(t, 1.0, Completeness(full, types.TypeFlight))

	assert.Equal(t, 0.0, Completeness(types.FlightExtraction{Flights: []types.FlightSegment{}}, types.TypeFlight))
	assert.Equal(t, 0.0, Completeness(types.FlightExtraction{}, types.TypeFlight))
}

func TestCompletenessUnknownType(t *testing.T) {
	assert.Equal(t, UnknownTypeScore, Completeness(types.HotelExtraction{}, types.TypeCruise))
	assert.Equal(t, UnknownTypeScore, Completeness(nil, types.ReservationType("spaceship")))
	assert.Nil(t, RequiredFields(types.TypeGeneric))
}

func TestCompletenessOfMinimalSources(t *testing.T) {
	tests := []struct {
		name string
		rt   types.ReservationType
		src  string
	}{
		{"flight", types.TypeFlight, `{"@type":"FlightReservation","reservationFor":{"@type":"Flight","flightNumber":"UA1",
			"departureAirport":{"iataCode":"SFO"},"arrivalAirport":{"iataCode":"LAX"},
			"departureTime":"2026-01-30T10:00:00","arrivalTime":"2026-01-30T12:00:00"}}`},
		{"hotel", types.TypeHotel, `{"@type":"LodgingReservation","reservationFor":{"name":"Inn"},
			"checkinTime":"2026-03-01","checkoutTime":"2026-03-04"}`},
		{"car-rental", types.TypeCarRental, `{"@type":"RentalCarReservation","provider":"Hertz",
			"pickupLocation":{"name":"SFO"},"pickupTime":"2026-03-01T09:00:00",
			"dropoffLocation":{"name":"LAX"},"dropoffTime":"2026-03-05T09:00:00"}`},
		{"train", types.TypeTrain, `{"@type":"TrainReservation","reservationFor":{"trainNumber":"9",
			"departureStation":{"name":"A"},"arrivalStation":{"name":"B"},
			"departureTime":"2026-03-01T09:00:00","arrivalTime":"2026-03-01T11:00:00"}}`},
		{"restaurant", types.TypeRestaurant, `{"@type":"FoodEstablishmentReservation",
			"reservationFor":{"name":"Cafe"},"startTime":"2026-03-01T19:00:00"}`},
		{"event", types.TypeEvent, `{"@type":"EventReservation","reservationFor":{"name":"Show",
			"startDate":"2026-03-01","location":{"name":"Hall"}}}`},
	}

	d := normalize.NewDispatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok, err := d.Dispatch(schemaorg.Parse(tt.src), tt.rt)
			require.NoError(t, err)
			require.True(t, ok)

			report := Evaluate(rec, tt.rt)
			assert.Empty(t, report.Missing)
			assert.Equal(t, 1.0, report.Score)
		})
	}
}

func TestCompletenessOfEmptySourceIsZero(t *testing.T) {
	empty := schemaorg.Parse(`{}`)
	assert.Equal(t, 0.0, Completeness(normalize.ExtractFlight(empty), types.TypeFlight))
	assert.Equal(t, 0.0, Completeness(normalize.ExtractHotel(empty), types.TypeHotel))
	assert.Equal(t, 0.0, Completeness(normalize.ExtractCarRental(empty), types.TypeCarRental))
	assert.Equal(t, 0.0, Completeness(normalize.ExtractTrain(empty), types.TypeTrain))
	assert.Equal(t, 0.0, Completeness(normalize.ExtractRestaurant(empty), types.TypeRestaurant))
	assert.Equal(t, 0.0, Completeness(normalize.ExtractEvent(empty), types.TypeEvent))
}

func TestCompletenessIsBounded(t *testing.T) {
	records := map[types.ReservationType]any{
		types.TypeFlight:     types.FlightExtraction{},
		types.TypeHotel:      types.HotelExtraction{HotelName: "x"},
		types.TypeCarRental:  types.CarRentalExtraction{Company: "x", PickupDate: "2026-01-01"},
		types.TypeTrain:      types.TrainExtraction{Trains: []types.TrainSegment{{TrainNumber: "1"}}},
		types.TypeRestaurant: types.RestaurantExtraction{PartySize: 2},
		types.TypeEvent:      types.EventExtraction{EventName: "x", VenueName: "y", EventDate: "z"},
	}
	for rt, rec := range records {
		s := Completeness(rec, rt)
		assert.GreaterOrEqual(t, s, 0.0, rt)
		assert.LessOrEqual(t, s, 1.0, rt)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  types.Confidence
	}{
		{1.0, types.ConfidenceHigh},
		{0.8, types.ConfidenceHigh},
		{0.79, types.ConfidenceMedium},
		{0.5, types.ConfidenceMedium},
		{0.49, types.ConfidenceLow},
		{0, types.ConfidenceLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "score %v", tt.score)
	}
}

func TestAccepted(t *testing.T) {
	assert.True(t, Accepted(0.8))
	assert.True(t, Accepted(1))
	assert.False(t, Accepted(0.7999))
}

func TestRequiredFieldsReturnsCopy(t *testing.T) {
	fields := RequiredFields(types.TypeHotel)
	require.Len(t, fields, 3)
	fields[0] = "mutated"
	assert.Equal(t, "hotelName", RequiredFields(types.TypeHotel)[0])
}

func TestLookup(t *testing.T) {
	doc := schemaorg.Parse(`{"a":{"b":[{"c":"x"},{"c":"y"}]},"m":[[1,2],[3]]}`)

	tests := []struct {
		path string
		want string
	}{
		{"a.b[0].c", "x"},
		{"a.b[1].c", "y"},
		{"m[1][0]", "3"},
		{"a.b[2].c", ""},
		{"a.c", ""},
		{"a.b[x].c", ""},
		{"a.b[0", ""},
		{"a[0]", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Lookup(doc, tt.path).String(), tt.path)
	}
}

func TestPresent(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{`{"v":"x"}`, true},
		{`{"v":""}`, false},
		{`{"v":"   "}`, false},
		{`{"v":0}`, false},
		{`{"v":3}`, true},
		{`{"v":true}`, true},
		{`{"v":false}`, false},
		{`{"v":[]}`, false},
		{`{"v":[1]}`, true},
		{`{"v":{}}`, false},
		{`{"v":{"k":1}}`, true},
		{`{"v":null}`, false},
		{`{}`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, present(schemaorg.Parse(tt.src).Get("v")), tt.src)
	}
}
