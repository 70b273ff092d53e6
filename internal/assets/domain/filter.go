package domain

import (
	"strings"
	"time"

	"railspace_backend/platform/geo"

	"golang.org/x/text/cases"
)

// Range is an inclusive numeric bound. A nil end is unbounded.
type Range struct {
	Min *float64
	Max *float64
}

// Bounded reports whether either end is set.
func (r Range) Bounded() bool {
	return r.Min != nil || r.Max != nil
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Window asks for assets whose availability overlaps [From, To]. Assets
// without a declared window are always available.
type Window struct {
	From time.Time
	To   time.Time
}

// Proximity asks for assets within RadiusKm of Center. An out-of-range
// center or a negative radius matches nothing.
type Proximity struct {
	Center   geo.Point
	RadiusKm float64
}

// Criteria is the full set of listing filters. Zero values are inactive.
type Criteria struct {
	Category string
	Size     Range
	Rent     Range
	// Location matches the location text only.
	Location string
	// Keyword matches either the name or the location.
	Keyword string
	Status  string
	Window  *Window
	Near    *Proximity
}

// Predicate is one stage of the filter chain.
type Predicate struct {
	Name  string
	Match func(Asset) bool
}

// Chain is an ordered list of predicates an asset must all satisfy.
type Chain []Predicate

// NewChain builds the active predicates for c in fixed order:
// category, size, rent, location, keyword, status, window, proximity.
//
// snapshot is the full unfiltered input. It fixes the upper end of the
// default rent range so the rent stage does not depend on earlier stages.
func NewChain(c Criteria, snapshot []Asset) Chain {
	var chain Chain

	if category := strings.TrimSpace(c.Category); category != "" && !strings.EqualFold(category, "all") {
		chain = append(chain, Predicate{Name: "category", Match: func(a Asset) bool {
			return a.Category == category
		}})
	}

	if c.Size.Bounded() {
		size := c.Size
		chain = append(chain, Predicate{Name: "size", Match: func(a Asset) bool {
			return size.Contains(a.Size)
		}})
	}

	if p, ok := rentPredicate(c.Rent, snapshot); ok {
		chain = append(chain, p)
	}

	fold := cases.Fold()
	if location := fold.String(strings.TrimSpace(c.Location)); location != "" {
		chain = append(chain, Predicate{Name: "location", Match: func(a Asset) bool {
			return strings.Contains(fold.String(a.Location), location)
		}})
	}
	if keyword := fold.String(strings.TrimSpace(c.Keyword)); keyword != "" {
		chain = append(chain, Predicate{Name: "keyword", Match: func(a Asset) bool {
			return strings.Contains(fold.String(a.Name), keyword) ||
				strings.Contains(fold.String(a.Location), keyword)
		}})
	}

	if status := strings.TrimSpace(c.Status); status != "" && !strings.EqualFold(status, "all") {
		chain = append(chain, Predicate{Name: "status", Match: func(a Asset) bool {
			return a.Status == status
		}})
	}

	if c.Window != nil {
		want := *c.Window
		chain = append(chain, Predicate{Name: "window", Match: func(a Asset) bool {
			if a.Availability == nil {
				return true
			}
			from, to, ok := a.Availability.Bounds()
			if !ok {
				return false
			}
			return !from.After(want.To) && !to.Before(want.From)
		}})
	}

	if c.Near != nil {
		near := *c.Near
		chain = append(chain, Predicate{Name: "proximity", Match: func(a Asset) bool {
			if a.GeoLocation == nil || !near.Center.Valid() || near.RadiusKm < 0 {
				return false
			}
			point, ok := geo.Parse(*a.GeoLocation)
			if !ok {
				return false
			}
			return geo.Within(point, near.Center, near.RadiusKm)
		}})
	}

	return chain
}

// rentPredicate is inactive when r covers the default [0, max rent] range,
// so assets without a rent only drop out once the user narrows it.
func rentPredicate(r Range, snapshot []Asset) (Predicate, bool) {
	if !r.Bounded() {
		return Predicate{}, false
	}

	var maxRent float64
	for _, a := range snapshot {
		if a.Rent != nil && *a.Rent > maxRent {
			maxRent = *a.Rent
		}
	}
	if (r.Min == nil || *r.Min <= 0) && (r.Max == nil || *r.Max >= maxRent) {
		return Predicate{}, false
	}

	return Predicate{Name: "rent", Match: func(a Asset) bool {
		return a.Rent != nil && r.Contains(*a.Rent)
	}}, true
}

// Names lists the active stages in order.
func (ch Chain) Names() []string {
	names := make([]string, len(ch))
	for i, p := range ch {
		names[i] = p.Name
	}
	return names
}

// Match reports whether a passes every stage.
func (ch Chain) Match(a Asset) bool {
	for _, p := range ch {
		if !p.Match(a) {
			return false
		}
	}
	return true
}

// Apply returns the assets that pass every stage, preserving input order.
// The result is never nil.
func (ch Chain) Apply(assets []Asset) []Asset {
	out := make([]Asset, 0, len(assets))
	for _, a := range assets {
		if ch.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// Filter applies the chain built from c to assets.
func Filter(assets []Asset, c Criteria) []Asset {
	return NewChain(c, assets).Apply(assets)
}
