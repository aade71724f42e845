package types

import (
	"encoding/json"
	"testing"
)

func TestParseReservationType(t *testing.T) {
	tests := []struct {
		in   string
		want ReservationType
		ok   bool
	}{
		{"flight", TypeFlight, true},
		{"  Car-Rental ", TypeCarRental, true},
		{"PRIVATE-DRIVER", TypePrivateDriver, true},
		{"generic", TypeGeneric, true},
		{"boat", ReservationType("boat"), false},
		{"", ReservationType(""), false},
	}
	for _, tt := range tests {
		got, ok := ParseReservationType(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseReservationType(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRequestTypesReturnsCopy(t *testing.T) {
	got := RequestTypes()
	if len(got) != 9 {
		t.Fatalf("len = %d, want 9", len(got))
	}
	got[0] = "changed"
	if RequestTypes()[0] != TypeFlight {
		t.Fatal("RequestTypes exposed its backing array")
	}
}

func TestNewReservation(t *testing.T) {
	for _, rt := range []ReservationType{TypeFlight, TypeHotel, TypeCarRental, TypeTrain, TypeRestaurant, TypeEvent} {
		r := NewReservation(rt)
		if r == nil {
			t.Fatalf("NewReservation(%q) = nil", rt)
		}
		if r.ReservationType() != rt {
			t.Errorf("NewReservation(%q).ReservationType() = %q", rt, r.ReservationType())
		}
	}
	for _, rt := range []ReservationType{TypeCruise, TypePrivateDriver, TypeGeneric} {
		if r := NewReservation(rt); r != nil {
			t.Errorf("NewReservation(%q) = %T, want nil", rt, r)
		}
	}
}

func TestNotFoundJSON(t *testing.T) {
	data, err := json.Marshal(NotFound())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"success":false,"method":"not-found","completeness":0,"confidence":"low"}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}

func TestResultDataUsesCanonicalFieldNames(t *testing.T) {
	res := Result{
		Success:      true,
		Method:       MethodMicrodata,
		Data:         HotelExtraction{HotelName: "Harbor Inn"},
		Completeness: 1,
		Confidence:   ConfidenceHigh,
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	hotel, ok := m["data"].(map[string]any)
	if !ok {
		t.Fatalf("data = %T, want object", m["data"])
	}
	if hotel["hotelName"] != "Harbor Inn" {
		t.Errorf("hotelName = %v", hotel["hotelName"])
	}
	if m["method"] != "microdata" {
		t.Errorf("method = %v", m["method"])
	}
}
