package usecase

import (
	"net/url"
	"strings"

	"github.com/shadematch/backend/internal/catalog"
)

// shadePlaceholder is replaced with the url-encoded shade in brand templates
const shadePlaceholder = "{shade}"

// fallbackSearchURL is used for brands without a storefront template
const fallbackSearchURL = "https://www.amazon.com/s?k="

// defaultShopTemplates maps brands to their storefront search URL
var defaultShopTemplates = map[string]string{
	"Fenty Beauty":            "https://fentybeauty.com/search?q=" + shadePlaceholder,
	"Maybelline":              "https://www.maybelline.com/search?q=" + shadePlaceholder,
	"L'Oréal Paris":           "https://www.lorealparisusa.com/search?q=" + shadePlaceholder,
	"NYX Professional Makeup": "https://www.nyxcosmetics.com/search?q=" + shadePlaceholder,
	"MAC Cosmetics":           "https://www.maccosmetics.com/esearch?search=" + shadePlaceholder,
	"Revlon":                  "https://www.revlon.com/search?q=" + shadePlaceholder,
	"e.l.f. Cosmetics":        "https://www.elfcosmetics.com/search?q=" + shadePlaceholder,
	"Charlotte Tilbury":       "https://www.charlottetilbury.com/us/search?search=" + shadePlaceholder,
	"Dior":                    "https://www.dior.com/en_us/beauty/search?query=" + shadePlaceholder,
	"Estée Lauder":            "https://www.esteelauder.com/esearch?search=" + shadePlaceholder,
	"NARS":                    "https://www.narscosmetics.com/USA/search?q=" + shadePlaceholder,
}

// ShoppingLinkResolver builds deep links to where a shade can be bought.
// It is read-only after construction.
type ShoppingLinkResolver struct {
	templates map[string]string
}

// NewShoppingLinkResolver creates a resolver with the built-in brand templates
func NewShoppingLinkResolver() *ShoppingLinkResolver {
	return NewShoppingLinkResolverWithTemplates(defaultShopTemplates)
}

// NewShoppingLinkResolverWithTemplates creates a resolver from brand -> template
// pairs. Templates must contain {shade}.
func NewShoppingLinkResolverWithTemplates(templates map[string]string) *ShoppingLinkResolver {
	keyed := make(map[string]string, len(templates))
	for brand, template := range templates {
		keyed[catalog.BrandKey(brand)] = template
	}
	return &ShoppingLinkResolver{templates: keyed}
}

// ResolveShoppingURL returns the brand storefront search for shade, or a
// marketplace search for "brand shade foundation" when the brand is unknown.
func (r *ShoppingLinkResolver) ResolveShoppingURL(brand, shade string) string {
	shade = strings.TrimSpace(shade)
	if template, ok := r.templates[catalog.BrandKey(brand)]; ok {
		return strings.ReplaceAll(template, shadePlaceholder, url.QueryEscape(shade))
	}

	query := strings.Join(strings.Fields(brand+" "+shade+" foundation"), " ")
	return fallbackSearchURL + url.QueryEscape(query)
}
