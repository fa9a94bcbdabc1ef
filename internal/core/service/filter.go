package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

const relatedLimit = 4

// FilterProducts narrows the products by c and orders them by c.Sort.
//
// The input slice is not modified. An empty result is not an error.
func FilterProducts(
	products []domain.Product, c domain.FilterCriteria,
) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(c.Search))

	res := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if c.Category != domain.CategoryAll && c.Category != "" &&
			p.Category != c.Category {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if p.Price < c.PriceMin || p.Price > c.PriceMax {
			continue
		}
		if len(c.Colors) != 0 && !offersAny(p.Colors, c.Colors) {
			continue
		}
		if len(c.Sizes) != 0 && !offersAny(p.Sizes, c.Sizes) {
			continue
		}
		res = append(res, p)
	}

	slices.SortStableFunc(res, sortFunc(c.Sort))
	return res
}

func matchesQuery(p domain.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	return slices.ContainsFunc(p.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), query)
	})
}

func offersAny(offered, accepted []string) bool {
	return slices.ContainsFunc(accepted, func(v string) bool {
		return slices.Contains(offered, v)
	})
}

func sortFunc(k domain.SortKey) func(a, b domain.Product) int {
	switch k {
	case domain.SortPriceLow:
		return func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortPriceHigh:
		return func(a, b domain.Product) int { return cmp.Compare(b.Price, a.Price) }
	case domain.SortNameAsc:
		return func(a, b domain.Product) int { return strings.Compare(a.Name, b.Name) }
	case domain.SortNameDesc:
		return func(a, b domain.Product) int { return strings.Compare(b.Name, a.Name) }
	default:
		// ids stand in for creation order
		return func(a, b domain.Product) int { return cmp.Compare(b.ID, a.ID) }
	}
}

// AvailableColors lists distinct colors in catalog order.
func AvailableColors(products []domain.Product) []string {
	return distinct(products, func(p domain.Product) []string { return p.Colors })
}

// AvailableSizes lists distinct sizes in catalog order.
func AvailableSizes(products []domain.Product) []string {
	return distinct(products, func(p domain.Product) []string { return p.Sizes })
}

func distinct(
	products []domain.Product, values func(domain.Product) []string,
) []string {
	seen := make(map[string]struct{})
	var res []string
	for _, p := range products {
		for _, v := range values(p) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			res = append(res, v)
		}
	}
	return res
}

// RelatedProducts returns up to four other products of the same category.
func RelatedProducts(
	products []domain.Product, p domain.Product,
) []domain.Product {
	var res []domain.Product
	for _, other := range products {
		if len(res) == relatedLimit {
			break
		}
		if other.Category == p.Category && other.ID != p.ID {
			res = append(res, other)
		}
	}
	return res
}
