// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Method records which syntax family produced an accepted record.
type Method string

const (
	MethodJSONLD    Method = "json-ld"
	MethodMicrodata Method = "microdata"
	MethodNotFound  Method = "not-found"
)

// Confidence is a coarse classification of a completeness score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Result is the outcome of one normalization request.
type Result struct {
	// Success is true only when a candidate cleared the acceptance gate.
	Success bool `json:"success" yaml:"success"`

	// Method is json-ld or microdata on success, not-found otherwise.
	Method Method `json:"method" yaml:"method"`

	// Data is the canonical record. Nil when not found.
	Data Reservation `json:"data,omitempty" yaml:"data,omitempty"`

	// Completeness is the fraction of required fields present, in [0,1].
	Completeness float64 `json:"completeness" yaml:"completeness"`

	// Confidence classifies Completeness.
	Confidence Confidence `json:"confidence" yaml:"confidence"`

	// Error carries a diagnostic for unexpected internal failures only.
	// Incomplete data is a normal negative result and leaves Error empty.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NotFound returns the negative result handed back when no candidate
// qualifies.
func NotFound() Result {
	return Result{
		Success:      false,
		Method:       MethodNotFound,
		Completeness: 0,
		Confidence:   ConfidenceLow,
	}
}

// NewReservation returns an empty record pointer for rt, suitable as a
// decode target. It returns nil for types without a canonical schema.
func NewReservation(rt ReservationType) Reservation {
	switch rt {
	case TypeFlight:
		return &FlightExtraction{}
	case TypeHotel:
		return &HotelExtraction{}
	case TypeCarRental:
		return &CarRentalExtraction{}
	case TypeTrain:
		return &TrainExtraction{}
	case TypeRestaurant:
		return &RestaurantExtraction{}
	case TypeEvent:
		return &EventExtraction{}
	}
	return nil
}
