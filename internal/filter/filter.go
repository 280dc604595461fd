// Package filter evaluates structured search specifications against a merged
// listing collection. It runs last, over already-normalized records, and
// preserves the input order.
package filter

import (
	"crypto/md5"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/estately/internal/models"
)

// Spec is a conjunction of optional predicates. Nil/zero fields are not
// evaluated. Location is the only fuzzy field; everything else matches
// exactly. Bedrooms and bathrooms are deliberately exact matches, not
// "N or more".
type Spec struct {
	Location  string                `json:"location,omitempty" form:"location"`
	MinPrice  *float64              `json:"min_price,omitempty" form:"min_price"`
	MaxPrice  *float64              `json:"max_price,omitempty" form:"max_price"`
	Bedrooms  *int                  `json:"bedrooms,omitempty" form:"bedrooms"`
	Bathrooms *float64              `json:"bathrooms,omitempty" form:"bathrooms"`
	Type      models.PropertyType   `json:"type,omitempty" form:"type"`
	Status    models.PropertyStatus `json:"status,omitempty" form:"status"`
}

// IsEmpty reports whether no predicate is populated.
func (s Spec) IsEmpty() bool {
	return s.Location == "" && s.MinPrice == nil && s.MaxPrice == nil &&
		s.Bedrooms == nil && s.Bathrooms == nil && s.Type == "" && s.Status == ""
}

// Key returns a stable digest of the spec, used as a cache key for search
// results.
func (s Spec) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "location:%s", strings.ToLower(s.Location))
	if s.MinPrice != nil {
		fmt.Fprintf(&b, "|min_price:%.2f", *s.MinPrice)
	}
	if s.MaxPrice != nil {
		fmt.Fprintf(&b, "|max_price:%.2f", *s.MaxPrice)
	}
	if s.Bedrooms != nil {
		fmt.Fprintf(&b, "|bedrooms:%d", *s.Bedrooms)
	}
	if s.Bathrooms != nil {
		fmt.Fprintf(&b, "|bathrooms:%.1f", *s.Bathrooms)
	}
	fmt.Fprintf(&b, "|type:%s|status:%s", s.Type, s.Status)
	return fmt.Sprintf("search:%x", md5.Sum([]byte(b.String())))
}

// Apply returns the subset of properties passing every populated predicate
// of the spec, in input order.
func Apply(properties []models.Property, spec Spec) []models.Property {
	result := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if Matches(p, spec) {
			result = append(result, p)
		}
	}
	return result
}

// Matches reports whether a single property passes the spec.
func Matches(p models.Property, spec Spec) bool {
	if spec.Location != "" && !matchesLocation(p, spec.Location) {
		return false
	}
	if spec.MinPrice != nil && p.Price < *spec.MinPrice {
		return false
	}
	if spec.MaxPrice != nil && p.Price > *spec.MaxPrice {
		return false
	}
	if spec.Bedrooms != nil && p.Bedrooms != *spec.Bedrooms {
		return false
	}
	if spec.Bathrooms != nil && p.Bathrooms != *spec.Bathrooms {
		return false
	}
	if spec.Type != "" && p.Type != spec.Type {
		return false
	}
	if spec.Status != "" && p.Status != spec.Status {
		return false
	}
	return true
}

// matchesLocation tests the term as a case-insensitive substring against
// city, street address, postal code and region. Any single hit matches.
func matchesLocation(p models.Property, term string) bool {
	needle := strings.ToLower(term)
	for _, field := range []string{p.City, p.Street, p.PostalCode, p.Region} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
