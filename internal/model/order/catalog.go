package order

import "github.com/shopspring/decimal"

// Tier identifies one fixed catalog item.
type Tier string

const (
	Tier1 Tier = "Tier 1"
	Tier2 Tier = "Tier 2"
	Tier3 Tier = "Tier 3"
	Tier4 Tier = "Tier 4"
	Tier5 Tier = "Tier 5"
	Tier6 Tier = "Tier 6"
)

// Tiers returns the catalog in display order.
func Tiers() []Tier {
	return []Tier{Tier1, Tier2, Tier3, Tier4, Tier5, Tier6}
}

// Valid reports whether t names a catalog item.
func (t Tier) Valid() bool {
	switch t {
	case Tier1, Tier2, Tier3, Tier4, Tier5, Tier6:
		return true
	}
	return false
}

// Catalog maps each tier to its USD base price.
type Catalog map[Tier]decimal.Decimal

// DefaultCatalog provides the fixed product prices required by the shop.
func DefaultCatalog() Catalog {
	return Catalog{
		Tier1: decimal.NewFromInt(50),
		Tier2: decimal.NewFromInt(95),
		Tier3: decimal.NewFromInt(135),
		Tier4: decimal.NewFromInt(175),
		Tier5: decimal.NewFromInt(210),
		Tier6: decimal.NewFromInt(240),
	}
}
