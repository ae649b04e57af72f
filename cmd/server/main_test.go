package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadematch/backend/internal/domain"
)

type stubFeed struct {
	doc *domain.CatalogDocument
	err error
}

func (f stubFeed) FetchCatalog(ctx context.Context) (*domain.CatalogDocument, error) {
	return f.doc, f.err
}

func entry(id, brand string) domain.CatalogEntry {
	return domain.CatalogEntry{
		ID:            id,
		Brand:         brand,
		ShadeName:     id,
		Undertone:     "warm",
		SkinToneDepth: "medium",
	}
}

func TestFetchCatalog(t *testing.T) {
	t.Run("builds catalog from feed document", func(t *testing.T) {
		cat, err := fetchCatalog(context.Background(), stubFeed{doc: &domain.CatalogDocument{
			Version: "feed-2",
			Base:    []domain.CatalogEntry{entry("b1", "Revlon")},
			Premium: []domain.CatalogEntry{entry("p1", "Dior")},
		}})
		require.NoError(t, err)
		assert.Equal(t, "feed-2", cat.Version())
		assert.Equal(t, 2, cat.Len())
	})

	t.Run("rejects feed without base shades", func(t *testing.T) {
		_, err := fetchCatalog(context.Background(), stubFeed{doc: &domain.CatalogDocument{
			Premium: []domain.CatalogEntry{entry("p1", "Dior")},
		}})
		assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
	})

	t.Run("propagates feed errors", func(t *testing.T) {
		feedErr := errors.New("feed down")
		_, err := fetchCatalog(context.Background(), stubFeed{err: feedErr})
		assert.ErrorIs(t, err, feedErr)
	})
}
