package domain

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func strPtr(s string) *string      { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestNormalizePrefersCamelCase(t *testing.T) {
	got := Normalize(Record{
		"id":           "AS-9",
		"name":         "Yard",
		"type":         "Land",
		"location":     "Pune",
		"size":         750.0,
		"imageUrl":     "/a.jpg",
		"image_url":    "/b.jpg",
		"data_ai_hint": "open yard",
		"lease_type":   "Seasonal",
		"geo_location": "18.52,73.85",
		"rent":         "9000",
	})

	if got.ImageURL != "/a.jpg" {
		t.Fatalf("expected camelCase image url, got %q", got.ImageURL)
	}
	if got.DataAIHint != "open yard" {
		t.Fatalf("expected snake_case fallback for hint, got %q", got.DataAIHint)
	}
	if got.LeaseType == nil || *got.LeaseType != "Seasonal" {
		t.Fatalf("expected lease type Seasonal, got %v", got.LeaseType)
	}
	if got.Rent == nil || *got.Rent != 9000 {
		t.Fatalf("expected rent 9000, got %v", got.Rent)
	}
	if got.Status != StatusAvailable {
		t.Fatalf("expected default status Available, got %q", got.Status)
	}
}

func TestNormalizeAmenities(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{name: "list", raw: []any{"Water", " Power "}, want: []string{"Water", "Power"}},
		{name: "string list", raw: []string{"Water"}, want: []string{"Water"}},
		{name: "comma string", raw: "Water, Electricity, , Security", want: []string{"Water", "Electricity", "Security"}},
		{name: "duplicates", raw: "Water,Water", want: []string{"Water"}},
		{name: "markup stripped before dedupe", raw: []any{"<b>Water</b>", "Water", "Power  Backup"}, want: []string{"Water", "Power Backup"}},
		{name: "empty string", raw: "", want: nil},
		{name: "wrong type", raw: 12.0, want: nil},
		{name: "absent", raw: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(Record{"amenities": tt.raw}).Amenities
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNormalizeAvailability(t *testing.T) {
	from := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  Record
		want *Availability
	}{
		{
			name: "times",
			rec:  Record{"availability_from": from, "availability_to": to},
			want: &Availability{From: "2024-08-01T00:00:00.000Z", To: "2025-07-31T00:00:00.000Z"},
		},
		{
			name: "date strings",
			rec:  Record{"availabilityFrom": "2024-08-01", "availabilityTo": "2025-07-31"},
			want: &Availability{From: "2024-08-01T00:00:00.000Z", To: "2025-07-31T00:00:00.000Z"},
		},
		{
			name: "nested",
			rec:  Record{"availability": map[string]any{"from": "2024-08-01T05:30:00+05:30", "to": "2025-07-31"}},
			want: &Availability{From: "2024-08-01T00:00:00.000Z", To: "2025-07-31T00:00:00.000Z"},
		},
		{name: "only from", rec: Record{"availability_from": from}},
		{name: "inverted", rec: Record{"availability_from": to, "availability_to": from}},
		{name: "garbage", rec: Record{"availability_from": "soon", "availability_to": "later"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.rec).Availability
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]string{
		"":          StatusAvailable,
		"available": StatusAvailable,
		"LEASED":    StatusLeased,
		"Leased":    StatusLeased,
		"Archived":  "Archived",
	}
	for raw, want := range tests {
		if got := Normalize(Record{"status": raw}).Status; got != want {
			t.Fatalf("status %q: expected %q, got %q", raw, want, got)
		}
	}
}

func TestNormalizeNumericID(t *testing.T) {
	if got := Normalize(Record{"id": 42.0}).ID; got != "42" {
		t.Fatalf("expected id 42, got %q", got)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	records := []Record{
		{
			"id": "AS-1", "name": "Commercial Space", "type": "Commercial", "location": "Mumbai Central",
			"size": 1200, "image_url": "/assets/commercial-space.jpg", "status": "available",
			"data_ai_hint": "hint", "lease_type": "Long Term", "geo_location": "19.0760,72.8777",
			"rent": int64(45000), "amenities": "Water, Electricity,Security",
			"availability_from": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			"availability_to":   "2024-12-31",
		},
		{"id": "AS-2", "name": "Bare"},
		{"id": "AS-3", "rent": 0.0, "amenities": []any{}},
	}

	for _, rec := range records {
		once := Normalize(rec)

		if twice := Normalize(once.Record()); !reflect.DeepEqual(once, twice) {
			t.Fatalf("record round trip changed asset:\n%+v\n%+v", once, twice)
		}

		body, err := json.Marshal(once)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if fromJSON := Normalize(decoded); !reflect.DeepEqual(once, fromJSON) {
			t.Fatalf("json round trip changed asset:\n%+v\n%+v", once, fromJSON)
		}
	}
}
