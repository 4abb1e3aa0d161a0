package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrEmptyCatalog     = errors.New("catalog has no products")
	ErrDuplicateProduct = errors.New("duplicate product id")
)

// SortMode selects the ordering of a catalog query.
type SortMode string

const (
	SortFeatured  SortMode = "featured"
	SortPriceAsc  SortMode = "priceAsc"
	SortPriceDesc SortMode = "priceDesc"
	SortNameAsc   SortMode = "nameAsc"
)

// ParseSortMode maps raw user input to a SortMode. Unknown values fall back
// to catalog order.
func ParseSortMode(raw string) SortMode {
	switch m := SortMode(strings.TrimSpace(raw)); m {
	case SortPriceAsc, SortPriceDesc, SortNameAsc:
		return m
	default:
		return SortFeatured
	}
}

// Catalog is the read-only, ordered list of purchasable products.
type Catalog struct {
	products []Product
	index    map[string]int
}

// NewCatalog validates the products and builds an id index. Order is kept.
func NewCatalog(products []Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		products: make([]Product, len(products)),
		index:    make(map[string]int, len(products)),
	}
	copy(c.products, products)

	for i := range c.products {
		p := &c.products[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product %d (%q): %w", i, p.ID, err)
		}
		if _, exists := c.index[p.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProduct, p.ID)
		}
		c.index[p.ID] = i
	}

	return c, nil
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id string) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Has reports whether id names a catalog product.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Products returns a copy of the catalog in its original order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Query filters products whose name, description or tag contain q
// (case-insensitive, q trimmed) and orders them by mode.
func (c *Catalog) Query(q string, mode SortMode) []Product {
	q = strings.ToLower(strings.TrimSpace(q))

	items := make([]Product, 0, len(c.products))
	for i := range c.products {
		if q == "" || strings.Contains(c.products[i].searchText(), q) {
			items = append(items, c.products[i])
		}
	}

	switch mode {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case SortNameAsc:
		// Collator keeps internal buffers, so one per query.
		col := collate.New(language.Japanese)
		sort.SliceStable(items, func(i, j int) bool {
			return col.CompareString(items[i].Name, items[j].Name) < 0
		})
	}

	return items
}
