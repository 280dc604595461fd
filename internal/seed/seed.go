// Package seed ships the built-in demonstration listings. The source is
// strictly read-only: demo content is always shown alongside real content,
// even when the remote store is unreachable.
package seed

import (
	"strconv"
	"time"

	"github.com/dmitrijs2005/estately/internal/canonid"
	"github.com/dmitrijs2005/estately/internal/common"
	"github.com/dmitrijs2005/estately/internal/models"
)

// Source serves the fixed in-memory demo collection.
type Source struct {
	properties []models.Property
}

// NewSource builds the demo source. IDs are stored pre-normalized so merge
// de-duplication works without special-casing seed records.
func NewSource() *Source {
	return &Source{properties: demoProperties()}
}

// ListPublished returns a copy of all published demo listings.
func (s *Source) ListPublished() []models.Property {
	result := make([]models.Property, 0, len(s.properties))
	for _, p := range s.properties {
		if p.Published {
			result = append(result, p)
		}
	}
	return result
}

// Get returns the demo listing matching id under normalization, or
// common.ErrorNotFound.
func (s *Source) Get(id string) (*models.Property, error) {
	for _, p := range s.properties {
		if canonid.Equal(p.ID, id) {
			found := p
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Insert rejects writes; the demo collection is fixed.
func (s *Source) Insert(_ models.Property) error {
	return common.ErrorReadOnly
}

// Delete rejects writes; the demo collection is fixed.
func (s *Source) Delete(_ string) error {
	return common.ErrorReadOnly
}

func demoProperties() []models.Property {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	demo := []models.Property{
		{
			Title: "Sunny Craftsman Near Zilker", Description: "Restored 1930s craftsman with a wraparound porch.",
			Price: 685000, Street: "1104 Bouldin Ave", City: "Austin", Region: "TX", PostalCode: "78704",
			Type: models.TypeHouse, Status: models.StatusForSale, Bedrooms: 3, Bathrooms: 2, AreaSqft: 1820,
			Images:   []string{"listings/demo/craftsman-front.jpg", "listings/demo/craftsman-porch.jpg"},
			Features: []string{"porch", "hardwood floors", "garden"},
			Agent:    &models.Agent{Name: "Maria Delgado", Email: "maria@estately.demo", Phone: "+1-512-555-0141"},
		},
		{
			Title: "Downtown Loft With Skyline View", Description: "Corner loft on the 14th floor, floor-to-ceiling glass.",
			Price: 4200, Street: "360 Nueces St", City: "Austin", Region: "TX", PostalCode: "78701",
			Type: models.TypeApartment, Status: models.StatusForRent, Bedrooms: 1, Bathrooms: 1, AreaSqft: 940,
			Images:   []string{"listings/demo/loft-living.jpg"},
			Features: []string{"concierge", "gym", "skyline view"},
			Agent:    &models.Agent{Name: "Tom Becker", Email: "tom@estately.demo", Phone: "+1-512-555-0112"},
		},
		{
			Title: "Lakeside Family Home", Description: "Four bedrooms, private dock, two-car garage.",
			Price: 1250000, Street: "78 Lakeshore Dr", City: "Austin", Region: "TX", PostalCode: "78746",
			Type: models.TypeHouse, Status: models.StatusForSale, Bedrooms: 4, Bathrooms: 3.5, AreaSqft: 3400,
			Images:   []string{"listings/demo/lakeside-front.jpg", "listings/demo/lakeside-dock.jpg"},
			Features: []string{"dock", "garage", "lake access"},
		},
		{
			Title: "Renovated Deep Ellum Condo", Description: "Exposed brick, new appliances, walkable block.",
			Price: 365000, Street: "2800 Main St", City: "Dallas", Region: "TX", PostalCode: "75226",
			Type: models.TypeCondo, Status: models.StatusForSale, Bedrooms: 2, Bathrooms: 2, AreaSqft: 1150,
			Images:   []string{"listings/demo/ellum-kitchen.jpg"},
			Features: []string{"exposed brick", "rooftop"},
		},
		{
			Title: "Quiet Townhouse in The Heights", Description: "End unit with a small fenced yard.",
			Price: 2900, Street: "412 W 20th St", City: "Houston", Region: "TX", PostalCode: "77008",
			Type: models.TypeTownhouse, Status: models.StatusForRent, Bedrooms: 3, Bathrooms: 2.5, AreaSqft: 1650,
			Images:   []string{"listings/demo/heights-front.jpg"},
			Features: []string{"yard", "end unit"},
		},
		{
			Title: "Hill Country Acreage", Description: "5.2 unrestricted acres with live oaks and a seasonal creek.",
			Price: 298000, Street: "CR 223", City: "Dripping Springs", Region: "TX", PostalCode: "78620",
			Type: models.TypeLand, Status: models.StatusForSale, Bedrooms: 0, Bathrooms: 0, AreaSqft: 226512,
			Images:   []string{"listings/demo/acreage-oaks.jpg"},
			Features: []string{"creek", "unrestricted"},
		},
		{
			Title: "South Congress Retail Space", Description: "Street-level storefront, 1,400 sqft, high foot traffic.",
			Price: 5800, Street: "1618 S Congress Ave", City: "Austin", Region: "TX", PostalCode: "78704",
			Type: models.TypeCommercial, Status: models.StatusForRent, Bedrooms: 0, Bathrooms: 1, AreaSqft: 1400,
			Images:   []string{"listings/demo/soco-storefront.jpg"},
			Features: []string{"storefront", "foot traffic"},
		},
		{
			Title: "Mueller Modern Farmhouse", Description: "Energy-star build facing the greenway.",
			Price: 742000, Street: "4520 Mattie St", City: "Austin", Region: "TX", PostalCode: "78723",
			Type: models.TypeHouse, Status: models.StatusForSale, Bedrooms: 4, Bathrooms: 3, AreaSqft: 2380,
			Images:   []string{"listings/demo/mueller-front.jpg", "listings/demo/mueller-kitchen.jpg"},
			Features: []string{"solar", "greenway"},
		},
		{
			Title: "Uptown High-Rise One-Bedroom", Description: "Tenth floor, balcony over Klyde Warren Park.",
			Price: 2350, Street: "2323 N Field St", City: "Dallas", Region: "TX", PostalCode: "75201",
			Type: models.TypeApartment, Status: models.StatusForRent, Bedrooms: 1, Bathrooms: 1, AreaSqft: 780,
			Images:   []string{"listings/demo/uptown-balcony.jpg"},
			Features: []string{"balcony", "valet"},
		},
		{
			Title: "Montrose Bungalow", Description: "Classic bungalow two blocks from the Menil.",
			Price: 515000, Street: "1210 Marshall St", City: "Houston", Region: "TX", PostalCode: "77006",
			Type: models.TypeHouse, Status: models.StatusSold, Bedrooms: 2, Bathrooms: 1, AreaSqft: 1240,
			Images:   []string{"listings/demo/montrose-front.jpg"},
			Features: []string{"bungalow", "walkable"},
		},
		{
			Title: "East Side Duplex Unit B", Description: "Upper unit, shared laundry, covered parking.",
			Price: 1850, Street: "2207 E 7th St", City: "Austin", Region: "TX", PostalCode: "78702",
			Type: models.TypeApartment, Status: models.StatusRented, Bedrooms: 2, Bathrooms: 1, AreaSqft: 890,
			Images:   []string{"listings/demo/duplex-b.jpg"},
			Features: []string{"covered parking"},
		},
		{
			Title: "Round Rock Starter Home", Description: "Three bedrooms on a cul-de-sac, new roof in 2023.",
			Price: 389000, Street: "8 Pecan Hollow Ct", City: "Round Rock", Region: "TX", PostalCode: "78664",
			Type: models.TypeHouse, Status: models.StatusForSale, Bedrooms: 3, Bathrooms: 2, AreaSqft: 1580,
			Images:   []string{"listings/demo/roundrock-front.jpg"},
			Features: []string{"cul-de-sac", "new roof"},
		},
	}

	for i := range demo {
		// Legacy numeric keys, widened to the canonical shape.
		demo[i].ID = canonid.Normalize(strconv.Itoa(i + 1))
		demo[i].CreatedAt = created.AddDate(0, 0, i)
		demo[i].OwnerID = "00000000-0000-0000-0000-0000000000aa"
		demo[i].Published = true
	}
	return demo
}
