package domain

import (
	"errors"
	"fmt"
	"slices"
)

type Category string

const (
	CategoryDresses Category = "dresses"
	CategoryShoes   Category = "shoes"
	CategoryBags    Category = "bags"
	CategoryJewelry Category = "jewelry"
)

// CategoryAll is a filter selector matching every category.
const CategoryAll Category = "all"

var categories = []Category{
	CategoryDresses, CategoryShoes, CategoryBags, CategoryJewelry,
}

// Categories returns the closed set of product categories.
func Categories() []Category {
	return slices.Clone(categories)
}

func (c Category) Valid() bool {
	return slices.Contains(categories, c)
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if c == CategoryAll || c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

type (
	Product struct {
		ID            int      `json:"id"`
		Name          string   `json:"name"`
		Category      Category `json:"category"`
		Description   string   `json:"description"`
		Price         float64  `json:"price"`
		OriginalPrice *float64 `json:"originalPrice,omitempty"`
		Images        []string `json:"images"`
		Sizes         []string `json:"sizes,omitempty"`
		Colors        []string `json:"colors,omitempty"`
		Rating        float64  `json:"rating"`
		Reviews       int      `json:"reviews"`
		InStock       bool     `json:"inStock"`
		Tags          []string `json:"tags,omitempty"`
		Material      string   `json:"material,omitempty"`
		Care          string   `json:"care,omitempty"`
	}

	CategoryInfo struct {
		ID          int      `json:"id"`
		Name        string   `json:"name"`
		Slug        Category `json:"slug"`
		Image       string   `json:"image"`
		Description string   `json:"description"`
	}
)

// Clone returns a copy that shares no memory with p.
func (p Product) Clone() Product {
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		p.OriginalPrice = &op
	}
	p.Images = slices.Clone(p.Images)
	p.Sizes = slices.Clone(p.Sizes)
	p.Colors = slices.Clone(p.Colors)
	p.Tags = slices.Clone(p.Tags)
	return p
}

// CloneProducts deep-copies every product.
func CloneProducts(ps []Product) []Product {
	if ps == nil {
		return nil
	}
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

// Image returns the display image, or an empty string.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Product) OffersSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

func (p Product) OffersColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

// Discount returns the discount percentage against the original price.
func (p Product) Discount() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= 0 {
		return 0
	}
	return int((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100)
}

// Validate reports every violated product invariant at once.
func (p Product) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if p.ID <= 0 {
		add("id must be positive, got %d", p.ID)
	}
	if p.Name == "" {
		add("name is required")
	}
	if !p.Category.Valid() {
		add("%w: %q", ErrUnknownCategory, p.Category)
	}
	if p.Price < 0 {
		add("price must be non-negative, got %v", p.Price)
	}
	if p.OriginalPrice != nil && *p.OriginalPrice < p.Price {
		add("original price %v is less than price %v", *p.OriginalPrice, p.Price)
	}
	if p.Sizes != nil && len(p.Sizes) == 0 {
		add("sizes must be absent or non-empty")
	}
	if p.Colors != nil && len(p.Colors) == 0 {
		add("colors must be absent or non-empty")
	}
	if p.Rating < 0 || p.Rating > 5 {
		add("rating must be within 0..5, got %v", p.Rating)
	}
	if p.Reviews < 0 {
		add("reviews must be non-negative, got %d", p.Reviews)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("product %d: %w", p.ID, errors.Join(errs...))
}
