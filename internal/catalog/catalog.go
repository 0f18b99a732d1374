package catalog

import (
	_ "embed"
	"encoding/json"

	"github.com/bwaremarkt/storefront/internal/service/models/product"
)

//go:embed products.json
var productsJSON []byte

// Catalog is the static, read-only product lookup. Orders snapshot title and
// price out of it at creation time and never consult it again.
type Catalog struct {
	ordered []product.Product
	byID    map[string]product.Product
}

// MustLoad parses the embedded product data.
func MustLoad() *Catalog {
	var products []product.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		panic("error while parsing embedded product catalog: " + err.Error())
	}

	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return &Catalog{
		ordered: products,
		byID:    byID,
	}
}

// ProductByID looks up a product. ok is false when the id is unknown.
func (c *Catalog) ProductByID(id string) (product.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// List returns every product in catalog order.
func (c *Catalog) List() []product.Product {
	out := make([]product.Product, len(c.ordered))
	copy(out, c.ordered)

	return out
}
