package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"railspace_backend/platform/sanitize"
)

// Record is a raw asset row as it comes from the store or the fallback file:
// camelCase and snake_case keys mixed, lists possibly comma-joined.
type Record map[string]any

// isoMillis matches the timestamps browsers produce with toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Normalize maps a raw record onto the canonical Asset.
//
// For every field the camelCase key wins over the snake_case one, and a
// missing value falls back to a default. Malformed optional values are
// dropped rather than reported. Normalize is idempotent.
func Normalize(r Record) Asset {
	a := Asset{
		ID:         stringValue(r.first("id")),
		Name:       stringValue(r.first("name")),
		Category:   stringValue(r.first("type", "category")),
		Location:   stringValue(r.first("location")),
		ImageURL:   stringValue(r.first("imageUrl", "image_url")),
		Status:     normalizeStatus(stringValue(r.first("status"))),
		DataAIHint: stringValue(r.first("dataAiHint", "data_ai_hint")),
		LeaseType:  optionalString(r.first("leaseType", "lease_type")),
		GeoLocation: optionalString(
			r.first("geoLocation", "geo_location"),
		),
		Amenities:    normalizeAmenities(r.first("amenities")),
		Availability: normalizeAvailability(r),
	}

	if size, ok := numberValue(r.first("size")); ok {
		a.Size = size
	}
	if rent, ok := numberValue(r.first("rent")); ok {
		a.Rent = &rent
	}

	return a
}

// NormalizeAll normalizes every record in order.
func NormalizeAll(records []Record) []Asset {
	out := make([]Asset, 0, len(records))
	for _, r := range records {
		out = append(out, Normalize(r))
	}
	return out
}

// first returns the value of the first key that is present and non-null.
func (r Record) first(keys ...string) any {
	for _, key := range keys {
		if v, ok := r[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func normalizeStatus(status string) string {
	switch {
	case status == "", strings.EqualFold(status, StatusAvailable):
		return StatusAvailable
	case strings.EqualFold(status, StatusLeased):
		return StatusLeased
	default:
		return status
	}
}

func normalizeAvailability(r Record) *Availability {
	fromRaw := r.first("availabilityFrom", "availability_from")
	toRaw := r.first("availabilityTo", "availability_to")
	if fromRaw == nil && toRaw == nil {
		if nested, ok := r.first("availability").(map[string]any); ok {
			fromRaw, toRaw = nested["from"], nested["to"]
		}
	}

	from, ok := timeValue(fromRaw)
	if !ok {
		return nil
	}
	to, ok := timeValue(toRaw)
	if !ok {
		return nil
	}
	if from.After(to) {
		return nil
	}

	return &Availability{
		From: from.UTC().Format(isoMillis),
		To:   to.UTC().Format(isoMillis),
	}
}

func normalizeAmenities(v any) []string {
	var items []string
	switch typed := v.(type) {
	case []string:
		items = typed
	case []any:
		items = make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	case string:
		items = strings.Split(typed, ",")
	default:
		return nil
	}

	out := sanitize.List(items)
	if len(out) == 0 {
		return nil
	}
	return out
}

func stringValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case int64:
		return strconv.FormatInt(typed, 10)
	case json.Number:
		return typed.String()
	default:
		return ""
	}
}

func optionalString(v any) *string {
	s := stringValue(v)
	if s == "" {
		return nil
	}
	return &s
}

func numberValue(v any) (float64, bool) {
	var f float64
	switch typed := v.(type) {
	case float64:
		f = typed
	case float32:
		f = float64(typed)
	case int:
		f = float64(typed)
	case int32:
		f = float64(typed)
	case int64:
		f = float64(typed)
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func timeValue(v any) (time.Time, bool) {
	switch typed := v.(type) {
	case time.Time:
		if typed.IsZero() {
			return time.Time{}, false
		}
		return typed, true
	case string:
		return parseTime(typed)
	case float64:
		return time.UnixMilli(int64(typed)), true
	case int64:
		return time.UnixMilli(typed), true
	case int:
		return time.UnixMilli(int64(typed)), true
	default:
		return time.Time{}, false
	}
}

func parseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate accepts the same date forms the normalizer does. Used for query
// parameters and request bodies.
func ParseDate(raw string) (time.Time, bool) {
	return parseTime(raw)
}
