package catalog

import (
	"fmt"
	"strings"

	"github.com/shadematch/backend/internal/domain"
)

// FromDocument converts serialized catalog entries into a validated Catalog.
// IsPremiumBrand comes from the allow-list, never from the document. The
// base set must be non-empty since free-tier matching reads only base.
func FromDocument(doc *domain.CatalogDocument) (*Catalog, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrCatalogInvalid)
	}
	if len(doc.Base) == 0 {
		return nil, fmt.Errorf("%w: base catalog is empty", domain.ErrCatalogInvalid)
	}

	base, err := mapEntries(doc.Base)
	if err != nil {
		return nil, fmt.Errorf("base catalog: %w", err)
	}
	premium, err := mapEntries(doc.Premium)
	if err != nil {
		return nil, fmt.Errorf("premium catalog: %w", err)
	}

	c, err := New(base, premium)
	if err != nil {
		return nil, err
	}
	c.version = doc.Version
	return c, nil
}

func mapEntries(entries []domain.CatalogEntry) ([]domain.FoundationRecord, error) {
	records := make([]domain.FoundationRecord, 0, len(entries))
	for i, entry := range entries {
		record, err := MapEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// MapEntry converts one catalog entry to a FoundationRecord
func MapEntry(entry domain.CatalogEntry) (domain.FoundationRecord, error) {
	undertone, err := domain.ParseUndertone(entry.Undertone)
	if err != nil {
		return domain.FoundationRecord{}, fmt.Errorf("%w: %q: %v", domain.ErrCatalogInvalid, entry.ID, err)
	}
	depth, err := domain.ParseSkinToneDepth(entry.SkinToneDepth)
	if err != nil {
		return domain.FoundationRecord{}, fmt.Errorf("%w: %q: %v", domain.ErrCatalogInvalid, entry.ID, err)
	}

	brand := strings.TrimSpace(entry.Brand)
	return domain.FoundationRecord{
		ID:             strings.TrimSpace(entry.ID),
		Brand:          brand,
		ProductLine:    strings.TrimSpace(entry.ProductLine),
		ShadeName:      strings.TrimSpace(entry.ShadeName),
		ColorSwatch:    strings.ToUpper(strings.TrimSpace(entry.ColorSwatch)),
		Undertone:      undertone,
		SkinToneDepth:  depth,
		CoverageLevel:  strings.TrimSpace(entry.CoverageLevel),
		FinishType:     strings.TrimSpace(entry.FinishType),
		PriceTier:      strings.TrimSpace(entry.PriceTier),
		IsPremiumBrand: IsPremiumBrand(brand),
	}, nil
}
