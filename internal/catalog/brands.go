package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// premiumBrands get the premium-tier bonus and the IsPremiumBrand flag
var premiumBrands = brandSet(
	"Charlotte Tilbury",
	"Dior",
	"Armani Beauty",
	"Estée Lauder",
	"NARS",
	"Pat McGrath Labs",
	"Tom Ford Beauty",
	"Hourglass",
)

// highlyRatedBrands get the formula bonus on every tier
var highlyRatedBrands = brandSet(
	"Fenty Beauty",
	"Estée Lauder",
	"NARS",
	"Charlotte Tilbury",
)

// BrandKey folds a brand name for case-insensitive comparison.
// A new Caser is built per call since Casers are not safe for concurrent use.
func BrandKey(brand string) string {
	return cases.Fold().String(strings.Join(strings.Fields(brand), " "))
}

// IsPremiumBrand reports whether brand is on the premium allow-list
func IsPremiumBrand(brand string) bool {
	return premiumBrands[BrandKey(brand)]
}

// IsHighlyRatedBrand reports whether brand is on the highly-rated formula list
func IsHighlyRatedBrand(brand string) bool {
	return highlyRatedBrands[BrandKey(brand)]
}

func brandSet(brands ...string) map[string]bool {
	set := make(map[string]bool, len(brands))
	for _, b := range brands {
		set[BrandKey(b)] = true
	}
	return set
}
