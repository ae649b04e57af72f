package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shadematch/backend/internal/domain"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Default returns the catalog shipped with the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// LoadFile reads a catalog document from disk. Files ending in .json use
// the feed's camelCase layout, anything else is YAML.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc domain.CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
	}
	return FromDocument(&doc)
}

// ParseJSON decodes a JSON catalog document
func ParseJSON(data []byte) (*Catalog, error) {
	var doc domain.CatalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
	}
	return FromDocument(&doc)
}
