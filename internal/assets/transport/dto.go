package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"railspace_backend/internal/assets/domain"
	"railspace_backend/platform/geo"
)

// ListAssetsQuery is the query string of GET /assets. Numeric fields stay
// strings so a malformed value disables its filter instead of failing the
// request.
type ListAssetsQuery struct {
	City        string `form:"city"`
	Type        string `form:"type"`
	Q           string `form:"q"`
	Status      string `form:"status"`
	MinSize     string `form:"minSize"`
	MaxSize     string `form:"maxSize"`
	MinRent     string `form:"minRent"`
	MaxRent     string `form:"maxRent"`
	NearLat     string `form:"nearLat"`
	NearLng     string `form:"nearLng"`
	MaxDistance string `form:"maxDistance"`
	From        string `form:"from"`
	To          string `form:"to"`
}

// Criteria converts the query into filter criteria.
func (q ListAssetsQuery) Criteria() domain.Criteria {
	c := domain.Criteria{
		Category: strings.TrimSpace(q.Type),
		Location: strings.TrimSpace(q.City),
		Keyword:  strings.TrimSpace(q.Q),
		Status:   strings.TrimSpace(q.Status),
		Size:     domain.Range{Min: parseNumber(q.MinSize), Max: parseNumber(q.MaxSize)},
		Rent:     domain.Range{Min: parseNumber(q.MinRent), Max: parseNumber(q.MaxRent)},
	}

	lat, lng, radius := parseNumber(q.NearLat), parseNumber(q.NearLng), parseNumber(q.MaxDistance)
	if lat != nil && lng != nil && radius != nil {
		c.Near = &domain.Proximity{Center: geo.Point{Lat: *lat, Lng: *lng}, RadiusKm: *radius}
	}

	if from, ok := domain.ParseDate(q.From); ok {
		if to, ok := domain.ParseDate(q.To); ok && !from.After(to) {
			c.Window = &domain.Window{From: from, To: to}
		}
	}

	return c
}

func parseNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Amenities accepts either a JSON array of strings or one comma separated string.
type Amenities []string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amenities) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*a = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return errors.New("amenities must be an array of strings or a comma separated string")
	}
	*a = strings.Split(joined, ",")
	return nil
}

type AvailabilityRequest struct {
	From string `json:"from" validate:"required,isodate"`
	To   string `json:"to" validate:"required,isodate"`
}

// CreateAssetRequest is the body of POST /admin/assets and PUT /admin/assets/:id.
type CreateAssetRequest struct {
	ID           string               `json:"id" validate:"omitempty,max=64"`
	Name         string               `json:"name" validate:"required,max=200"`
	Type         string               `json:"type" validate:"required,max=100"`
	Location     string               `json:"location" validate:"required,max=200"`
	Size         float64              `json:"size" validate:"gt=0"`
	ImageURL     string               `json:"imageUrl" validate:"omitempty,max=2048"`
	Status       string               `json:"status" validate:"omitempty,oneof=Available Leased"`
	DataAIHint   string               `json:"dataAiHint" validate:"omitempty,max=200"`
	LeaseType    *string              `json:"leaseType" validate:"omitempty,max=50"`
	Availability *AvailabilityRequest `json:"availability"`
	GeoLocation  *string              `json:"geoLocation" validate:"omitempty,geolocation"`
	Rent         *float64             `json:"rent" validate:"omitempty,gte=0"`
	Amenities    Amenities            `json:"amenities" validate:"omitempty,max=50,dive,max=100"`
}

// PatchAssetRequest is the body of PATCH /admin/assets/:id. Absent fields are kept.
type PatchAssetRequest struct {
	Name         *string              `json:"name" validate:"omitempty,min=1,max=200"`
	Type         *string              `json:"type" validate:"omitempty,min=1,max=100"`
	Location     *string              `json:"location" validate:"omitempty,min=1,max=200"`
	Size         *float64             `json:"size" validate:"omitempty,gt=0"`
	ImageURL     *string              `json:"imageUrl" validate:"omitempty,max=2048"`
	Status       *string              `json:"status" validate:"omitempty,oneof=Available Leased"`
	DataAIHint   *string              `json:"dataAiHint" validate:"omitempty,max=200"`
	LeaseType    *string              `json:"leaseType" validate:"omitempty,max=50"`
	Availability *AvailabilityRequest `json:"availability"`
	GeoLocation  *string              `json:"geoLocation" validate:"omitempty,geolocation"`
	Rent         *float64             `json:"rent" validate:"omitempty,gte=0"`
	Amenities    Amenities            `json:"amenities" validate:"omitempty,max=50,dive,max=100"`
}

// AssetListResponse wraps listings as {"data": [...]}.
type AssetListResponse struct {
	Data []domain.Asset `json:"data"`
}
