package repository

import (
	"context"
	"testing"

	"railspace_backend/internal/assets/domain"
	"railspace_backend/platform/apperr"
)

func TestFallbackNormalizes(t *testing.T) {
	fb, err := NewFallback()
	if err != nil {
		t.Fatalf("load fallback: %v", err)
	}

	records, err := fb.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assets := domain.NormalizeAll(records)
	if len(assets) != 3 {
		t.Fatalf("expected 3 fallback assets, got %d", len(assets))
	}

	for _, a := range assets {
		if a.ID == "" || a.Name == "" || a.Size <= 0 {
			t.Fatalf("incomplete fallback asset: %+v", a)
		}
		if a.Rent == nil || a.GeoLocation == nil || len(a.Amenities) == 0 {
			t.Fatalf("fallback asset %s missing optional fields", a.ID)
		}
		if a.Status != domain.StatusAvailable {
			t.Fatalf("fallback asset %s has status %q", a.ID, a.Status)
		}
	}

	if got := assets[0].Amenities; len(got) != 3 || got[0] != "Water" {
		t.Fatalf("unexpected amenities %v", got)
	}
}

func TestFallbackGetRecord(t *testing.T) {
	fb, err := NewFallback()
	if err != nil {
		t.Fatalf("load fallback: %v", err)
	}

	rec, err := fb.GetRecord(context.Background(), "AS-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := domain.Normalize(rec).Name; got != "Warehouse Space" {
		t.Fatalf("expected Warehouse Space, got %q", got)
	}

	if _, err := fb.GetRecord(context.Background(), "AS-404"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
