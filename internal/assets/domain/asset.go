// Package domain holds the asset model, the raw-record normalizer and the
// predicate chain used to filter listings. Everything here is pure.
package domain

import (
	"strings"
	"time"
)

// Asset statuses.
const (
	StatusAvailable = "Available"
	StatusLeased    = "Leased"
)

// KnownCategories lists the category labels the listing forms offer and the
// labels found in the seeded fallback data. Category stays free text; this
// list only drives warnings and UI hints.
var KnownCategories = []string{
	"Warehouse", "Parking", "Godown", "Land", "Room",
	"Commercial", "Industrial", "Retail",
}

// IsKnownCategory reports whether category is one of KnownCategories.
func IsKnownCategory(category string) bool {
	for _, known := range KnownCategories {
		if known == category {
			return true
		}
	}
	return false
}

// Availability is a declared lease window rendered as ISO-8601 UTC timestamps.
type Availability struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Bounds parses the window back into times. ok is false for malformed values.
func (a Availability) Bounds() (from, to time.Time, ok bool) {
	from, err := time.Parse(time.RFC3339Nano, a.From)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse(time.RFC3339Nano, a.To)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// Asset is the canonical listing shape served to clients.
type Asset struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"type"`
	Location     string        `json:"location"`
	Size         float64       `json:"size"`
	ImageURL     string        `json:"imageUrl"`
	Status       string        `json:"status"`
	DataAIHint   string        `json:"dataAiHint"`
	LeaseType    *string       `json:"leaseType,omitempty"`
	Availability *Availability `json:"availability,omitempty"`
	GeoLocation  *string       `json:"geoLocation,omitempty"`
	Rent         *float64      `json:"rent,omitempty"`
	Amenities    []string      `json:"amenities,omitempty"`
}

// Record converts a back into the raw record form Normalize accepts.
// Normalize(a.Record()) equals a for any normalized asset.
func (a Asset) Record() Record {
	r := Record{
		"id":         a.ID,
		"name":       a.Name,
		"type":       a.Category,
		"location":   a.Location,
		"size":       a.Size,
		"imageUrl":   a.ImageURL,
		"status":     a.Status,
		"dataAiHint": a.DataAIHint,
	}
	if a.LeaseType != nil {
		r["leaseType"] = *a.LeaseType
	}
	if a.Availability != nil {
		r["availability"] = map[string]any{"from": a.Availability.From, "to": a.Availability.To}
	}
	if a.GeoLocation != nil {
		r["geoLocation"] = *a.GeoLocation
	}
	if a.Rent != nil {
		r["rent"] = *a.Rent
	}
	if a.Amenities != nil {
		items := make([]any, len(a.Amenities))
		for i, item := range a.Amenities {
			items[i] = item
		}
		r["amenities"] = items
	}
	return r
}

// IsAvailable reports whether the asset can take a new application.
func (a Asset) IsAvailable() bool {
	return strings.EqualFold(a.Status, StatusAvailable)
}
