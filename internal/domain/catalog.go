package domain

// CatalogEntry is a catalog row as it appears in catalog files and the feed
type CatalogEntry struct {
	ID            string `json:"id" yaml:"id"`
	Brand         string `json:"brand" yaml:"brand"`
	ProductLine   string `json:"productLine" yaml:"product_line"`
	ShadeName     string `json:"shadeName" yaml:"shade_name"`
	ColorSwatch   string `json:"colorSwatch" yaml:"color_swatch"`
	Undertone     string `json:"undertone" yaml:"undertone"`
	SkinToneDepth string `json:"skinToneDepth" yaml:"skin_tone_depth"`
	CoverageLevel string `json:"coverageLevel,omitempty" yaml:"coverage_level"`
	FinishType    string `json:"finishType,omitempty" yaml:"finish_type"`
	PriceTier     string `json:"priceTier,omitempty" yaml:"price_tier"`
}

// CatalogDocument holds both catalogs in their serialized form
type CatalogDocument struct {
	Version string         `json:"version,omitempty" yaml:"version"`
	Base    []CatalogEntry `json:"base" yaml:"base"`
	Premium []CatalogEntry `json:"premium" yaml:"premium"`
}
