// Package catalog loads the static product catalog.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/mrops-br/simple-shop/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default_products.yaml
var defaultProducts []byte

// file accepts either {products: [...]} or a bare list. JSON is valid YAML,
// so catalogs exported as JSON load unchanged.
type file struct {
	Products []domain.Product `yaml:"products"`
}

// Load reads the catalog at path, or the built-in catalog when path is empty.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return Parse(defaultProducts)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML or JSON catalog document.
func Parse(raw []byte) (*domain.Catalog, error) {
	raw = bytes.TrimSpace(raw)

	var products []domain.Product
	if len(raw) > 0 && (raw[0] == '[' || raw[0] == '-') {
		if err := yaml.Unmarshal(raw, &products); err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}
	} else {
		var doc file
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}
		products = doc.Products
	}

	return domain.NewCatalog(products)
}
