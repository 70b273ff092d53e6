package geo

import (
	"math"
	"testing"
)

var (
	newDelhi  = Point{Lat: 28.6139, Lng: 77.2090}
	faridabad = Point{Lat: 28.4089, Lng: 77.3178}
	mumbai    = Point{Lat: 19.0760, Lng: 72.8777}
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Point
		ok   bool
	}{
		{name: "plain", raw: "19.0760,72.8777", want: mumbai, ok: true},
		{name: "spaces around parts", raw: "  19.0760 ,  72.8777 ", want: mumbai, ok: true},
		{name: "negative", raw: "-33.8688,151.2093", want: Point{Lat: -33.8688, Lng: 151.2093}, ok: true},
		{name: "empty", raw: "", ok: false},
		{name: "blank", raw: "   ", ok: false},
		{name: "single value", raw: "19.0760", ok: false},
		{name: "three parts", raw: "1,2,3", ok: false},
		{name: "trailing comma", raw: "19.07,", ok: false},
		{name: "non numeric", raw: "north,east", ok: false},
		{name: "partly numeric", raw: "19.07abc,72.88", ok: false},
		{name: "latitude out of range", raw: "91,10", ok: false},
		{name: "longitude out of range", raw: "10,181", ok: false},
		{name: "nan", raw: "NaN,10", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse(tc.raw)
			if ok != tc.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestPointStringRoundTripsThroughParse(t *testing.T) {
	got, ok := Parse(mumbai.String())
	if !ok || got != mumbai {
		t.Fatalf("expected %+v, got %+v (ok=%v)", mumbai, got, ok)
	}
}

func TestDistanceKmIdentity(t *testing.T) {
	for _, p := range []Point{newDelhi, mumbai, {Lat: 90, Lng: 0}, {Lat: -45.5, Lng: -170.25}} {
		if d := DistanceKm(p, p); d != 0 {
			t.Fatalf("expected zero distance for %+v, got %v", p, d)
		}
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := [][2]Point{
		{newDelhi, faridabad},
		{newDelhi, mumbai},
		{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 180}},
		{{Lat: -12.5, Lng: 130.8}, {Lat: 51.5, Lng: -0.12}},
	}
	for _, pair := range pairs {
		ab := DistanceKm(pair[0], pair[1])
		ba := DistanceKm(pair[1], pair[0])
		if math.Abs(ab-ba) > 1e-9*math.Max(1, ab) {
			t.Fatalf("asymmetric distance for %+v: %v vs %v", pair, ab, ba)
		}
	}
}

func TestDistanceKmKnownValues(t *testing.T) {
	d := DistanceKm(Point{Lat: 0, Lng: 0}, Point{Lat: 0, Lng: 1})
	if math.Abs(d-111.19) > 0.01 {
		t.Fatalf("expected ~111.19 km per degree at the equator, got %v", d)
	}

	d = DistanceKm(newDelhi, faridabad)
	if d < 25 || d > 26 {
		t.Fatalf("expected New Delhi to Faridabad around 25.15 km, got %v", d)
	}
}

func TestWithinRadiusBoundary(t *testing.T) {
	if !Within(newDelhi, newDelhi, 0) {
		t.Fatal("expected a point to be within radius 0 of itself")
	}
	if !Within(newDelhi, faridabad, 30) {
		t.Fatal("expected Faridabad within 30 km of New Delhi")
	}
	if Within(newDelhi, faridabad, 10) {
		t.Fatal("expected Faridabad outside 10 km of New Delhi")
	}
}
