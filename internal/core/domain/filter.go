package domain

import (
	"fmt"
	"math"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortNewest, SortPriceLow, SortPriceHigh, SortNameAsc, SortNameDesc:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

type FilterCriteria struct {
	Category Category
	PriceMin float64
	PriceMax float64
	Colors   []string
	Sizes    []string
	Sort     SortKey
	Search   string
}

// DefaultFilterCriteria matches every product, whatever its price.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Category: CategoryAll,
		PriceMin: 0,
		PriceMax: math.Inf(1),
		Sort:     SortNewest,
	}
}
