package repository

import (
	"context"
	_ "embed"
	"fmt"

	"railspace_backend/internal/assets/domain"
	"railspace_backend/platform/apperr"

	"gopkg.in/yaml.v3"
)

//go:embed fallback_assets.yaml
var fallbackYAML []byte

// FallbackRecords parses the bundled listings.
func FallbackRecords() ([]domain.Record, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(fallbackYAML, &raw); err != nil {
		return nil, fmt.Errorf("parse fallback assets: %w", err)
	}

	records := make([]domain.Record, len(raw))
	for i, m := range raw {
		records[i] = m
	}
	return records, nil
}

// Fallback is a read-only Reader over the bundled listings.
type Fallback struct {
	records []domain.Record
}

// NewFallback loads the bundled listings.
func NewFallback() (*Fallback, error) {
	records, err := FallbackRecords()
	if err != nil {
		return nil, err
	}
	return &Fallback{records: records}, nil
}

var _ Reader = (*Fallback)(nil)

// ListRecords returns a copy of the bundled listings.
func (f *Fallback) ListRecords(_ context.Context) ([]domain.Record, error) {
	out := make([]domain.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

// GetRecord returns the bundled listing with the given id.
func (f *Fallback) GetRecord(_ context.Context, id string) (domain.Record, error) {
	for _, r := range f.records {
		if r["id"] == id {
			return r, nil
		}
	}
	return nil, apperr.NotFound(assetNotFoundMessage)
}
