// Package catalog holds the immutable foundation reference data the matcher
// scores against.
package catalog

import (
	"fmt"

	"github.com/shadematch/backend/internal/domain"
)

// Catalog is an immutable pair of base and premium record sets.
// All accessors return copies, so a Catalog can be shared across goroutines.
type Catalog struct {
	base    []domain.FoundationRecord
	premium []domain.FoundationRecord
	byID    map[string]domain.FoundationRecord
	version string
}

// New validates the records and builds a catalog from copies of them.
// IDs must be unique across both sets.
func New(base, premium []domain.FoundationRecord) (*Catalog, error) {
	c := &Catalog{
		base:    make([]domain.FoundationRecord, len(base)),
		premium: make([]domain.FoundationRecord, len(premium)),
		byID:    make(map[string]domain.FoundationRecord, len(base)+len(premium)),
	}
	copy(c.base, base)
	copy(c.premium, premium)

	for _, set := range [][]domain.FoundationRecord{c.base, c.premium} {
		for _, record := range set {
			if err := validateRecord(record); err != nil {
				return nil, err
			}
			if _, dup := c.byID[record.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate id %q", domain.ErrCatalogInvalid, record.ID)
			}
			c.byID[record.ID] = record
		}
	}

	return c, nil
}

func validateRecord(record domain.FoundationRecord) error {
	if record.ID == "" {
		return fmt.Errorf("%w: record without id (brand %q, shade %q)", domain.ErrCatalogInvalid, record.Brand, record.ShadeName)
	}
	if record.Brand == "" || record.ShadeName == "" {
		return fmt.Errorf("%w: record %q needs brand and shade name", domain.ErrCatalogInvalid, record.ID)
	}
	if !record.Undertone.IsValid() {
		return fmt.Errorf("%w: record %q has undertone %q", domain.ErrCatalogInvalid, record.ID, record.Undertone)
	}
	if !record.SkinToneDepth.IsValid() {
		return fmt.Errorf("%w: record %q has skin tone depth %q", domain.ErrCatalogInvalid, record.ID, record.SkinToneDepth)
	}
	return nil
}

// Records returns the candidates for a selection in catalog order, base first
func (c *Catalog) Records(selection domain.CatalogSelection) []domain.FoundationRecord {
	size := len(c.base)
	if selection == domain.SelectionBasePlusPremium {
		size += len(c.premium)
	}

	records := make([]domain.FoundationRecord, 0, size)
	records = append(records, c.base...)
	if selection == domain.SelectionBasePlusPremium {
		records = append(records, c.premium...)
	}
	return records
}

// Base returns a copy of the base records
func (c *Catalog) Base() []domain.FoundationRecord {
	return append([]domain.FoundationRecord(nil), c.base...)
}

// Premium returns a copy of the premium-only records
func (c *Catalog) Premium() []domain.FoundationRecord {
	return append([]domain.FoundationRecord(nil), c.premium...)
}

// Lookup finds a record by id
func (c *Catalog) Lookup(id string) (domain.FoundationRecord, bool) {
	record, ok := c.byID[id]
	return record, ok
}

// Len returns the total number of records
func (c *Catalog) Len() int {
	return len(c.base) + len(c.premium)
}

// Version is the version string of the source document, if any
func (c *Catalog) Version() string {
	return c.version
}
