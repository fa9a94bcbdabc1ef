// Package catalog holds the static product and category records.
//
// A Catalog is loaded once, validated, and never mutated afterwards.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seed []byte

var _ port.CatalogReader = (*Catalog)(nil)

type (
	seedFile struct {
		Categories []seedCategory `yaml:"categories"`
		Products   []seedProduct  `yaml:"products"`
	}

	seedCategory struct {
		ID          int    `yaml:"id"`
		Name        string `yaml:"name"`
		Slug        string `yaml:"slug"`
		Image       string `yaml:"image"`
		Description string `yaml:"description"`
	}

	seedProduct struct {
		ID            int      `yaml:"id"`
		Name          string   `yaml:"name"`
		Category      string   `yaml:"category"`
		Description   string   `yaml:"description"`
		Price         float64  `yaml:"price"`
		OriginalPrice *float64 `yaml:"original_price"`
		Images        []string `yaml:"images"`
		Sizes         []string `yaml:"sizes"`
		Colors        []string `yaml:"colors"`
		Rating        float64  `yaml:"rating"`
		Reviews       int      `yaml:"reviews"`
		InStock       bool     `yaml:"in_stock"`
		Tags          []string `yaml:"tags"`
		Material      string   `yaml:"material"`
		Care          string   `yaml:"care"`
	}
)

type Catalog struct {
	products   []domain.Product
	categories []domain.CategoryInfo
	byID       map[int]int
}

// Default returns the catalog built from the embedded seed.
func Default() (*Catalog, error) {
	return Parse(seed)
}

// LoadFile reads a seed file, falling back to the embedded seed when path is empty.
func LoadFile(path string) (*Catalog, error) {
	const op = "catalog.LoadFile"

	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	const op = "catalog.Parse"

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c, err := New(toProducts(f.Products), toCategories(f.Categories))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// New validates the records and builds an immutable catalog.
func New(
	products []domain.Product, categories []domain.CategoryInfo,
) (*Catalog, error) {
	var errs []error

	byID := make(map[int]int, len(products))
	for i, p := range products {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
		if _, dup := byID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("product %d: duplicate id", p.ID))
			continue
		}
		byID[p.ID] = i
	}

	for _, c := range categories {
		if !c.Slug.Valid() {
			errs = append(errs, fmt.Errorf(
				"category %d: %w: %q", c.ID, domain.ErrUnknownCategory, c.Slug,
			))
		}
	}

	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}

	return &Catalog{
		products:   domain.CloneProducts(products),
		categories: slices.Clone(categories),
		byID:       byID,
	}, nil
}

// Products returns a copy of all products in catalog order.
func (c *Catalog) Products() []domain.Product {
	return domain.CloneProducts(c.products)
}

func (c *Catalog) Categories() []domain.CategoryInfo {
	return slices.Clone(c.categories)
}

func (c *Catalog) Product(id int) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %d", domain.ErrProductNotFound, id)
	}
	return c.products[i].Clone(), nil
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func toProducts(ss []seedProduct) []domain.Product {
	ps := make([]domain.Product, len(ss))
	for i, s := range ss {
		ps[i] = domain.Product{
			ID:            s.ID,
			Name:          s.Name,
			Category:      domain.Category(s.Category),
			Description:   s.Description,
			Price:         s.Price,
			OriginalPrice: s.OriginalPrice,
			Images:        s.Images,
			Sizes:         s.Sizes,
			Colors:        s.Colors,
			Rating:        s.Rating,
			Reviews:       s.Reviews,
			InStock:       s.InStock,
			Tags:          s.Tags,
			Material:      s.Material,
			Care:          s.Care,
		}
	}
	return ps
}

func toCategories(ss []seedCategory) []domain.CategoryInfo {
	cs := make([]domain.CategoryInfo, len(ss))
	for i, s := range ss {
		cs[i] = domain.CategoryInfo{
			ID:          s.ID,
			Name:        s.Name,
			Slug:        domain.Category(s.Slug),
			Image:       s.Image,
			Description: s.Description,
		}
	}
	return cs
}
