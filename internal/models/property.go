// Package models defines the domain records shared by the source adapters
// and the reconciliation services.
package models

import "time"

// PropertyType enumerates the supported listing categories.
type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeCondo      PropertyType = "condo"
	TypeTownhouse  PropertyType = "townhouse"
	TypeLand       PropertyType = "land"
	TypeCommercial PropertyType = "commercial"
)

// PropertyStatus enumerates the listing lifecycle states.
type PropertyStatus string

const (
	StatusForSale PropertyStatus = "for-sale"
	StatusForRent PropertyStatus = "for-rent"
	StatusSold    PropertyStatus = "sold"
	StatusRented  PropertyStatus = "rented"
)

// Agent is the optional contact record attached to a listing. It is the
// payload a buyer unlocks by paying.
type Agent struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Property is the canonical listing record. Records coming from the remote
// store, the seed set and the session store are all mapped into this shape
// before any comparison or filtering happens.
//
// Content fields are never edited in place: a listing is created, optionally
// published/unpublished, and deleted.
type Property struct {
	ID          string         `json:"id"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Price       float64        `json:"price" validate:"gt=0"`
	Street      string         `json:"street" validate:"required"`
	City        string         `json:"city" validate:"required"`
	Region      string         `json:"region"`
	PostalCode  string         `json:"postal_code"`
	Type        PropertyType   `json:"type" validate:"required,oneof=apartment house condo townhouse land commercial"`
	Status      PropertyStatus `json:"status" validate:"required,oneof=for-sale for-rent sold rented"`
	Bedrooms    int            `json:"bedrooms" validate:"gte=0"`
	// Bathrooms allows half-steps (1.5, 2.5, ...).
	Bathrooms float64   `json:"bathrooms" validate:"gte=0"`
	AreaSqft  float64   `json:"area_sqft" validate:"gte=0"`
	Images    []string  `json:"images" validate:"min=1"`
	Features  []string  `json:"features"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   string    `json:"owner_id"`
	// Published excludes a record from public listings without deleting it.
	Published bool   `json:"published"`
	Agent     *Agent `json:"agent,omitempty"`
}
