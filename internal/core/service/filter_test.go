package service_test

import (
	"slices"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterProducts(t *testing.T) {
	products := seedProducts(t)

	criteria := func(mod func(*domain.FilterCriteria)) domain.FilterCriteria {
		c := domain.DefaultFilterCriteria()
		if mod != nil {
			mod(&c)
		}
		return c
	}

	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		want     []int
	}{
		{
			name:     "NoConstraintsNewestFirst",
			criteria: criteria(nil),
			want:     []int{8, 7, 6, 5, 4, 3, 2, 1},
		},
		{
			name: "CategoryDresses",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.Category = domain.CategoryDresses
			}),
			want: []int{2, 1},
		},
		{
			name: "SearchDiamond",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.Search = "diamond"
			}),
			want: []int{7},
		},
		{
			name: "SearchIsCaseInsensitiveAndMatchesTags",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.Search = "  LUXURY "
			}),
			want: []int{7, 5, 3},
		},
		{
			name: "SearchMatchesDescription",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.Search = "warm weather"
			}),
			want: []int{2},
		},
		{
			name: "PriceBound",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.PriceMax = 100
			}),
			want: []int{6, 2},
		},
		{
			name: "PriceBoundIsInclusive",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.PriceMin = 199.99
				c.PriceMax = 199.99
			}),
			want: []int{8, 3},
		},
		{
			name: "AnyAcceptedColor",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.Colors = []string{"Navy", "Gold"}
			}),
			want: []int{7, 6, 1},
		},
		{
			name: "AnyAcceptedSize",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.Sizes = []string{"XS", "11"}
			}),
			want: []int{4, 3, 2, 1},
		},
		{
			name: "PriceLow",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.Category = domain.CategoryShoes
				c.Sort = domain.SortPriceLow
			}),
			want: []int{4, 3},
		},
		{
			name: "NameAsc",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.Category = domain.CategoryBags
				c.Sort = domain.SortNameAsc
			}),
			want: []int{6, 5},
		},
		{
			name: "NameDesc",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.Category = domain.CategoryBags
				c.Sort = domain.SortNameDesc
			}),
			want: []int{5, 6},
		},
		{
			name: "NoResults",
			criteria: criteria(func(c *domain.FilterCriteria) {
				c.Search = "umbrella"
			}),
			want: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.FilterProducts(products, tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterProductsExcludesExpensive(t *testing.T) {
	c := domain.DefaultFilterCriteria()
	c.PriceMax = 100

	got := service.FilterProducts(seedProducts(t), c)
	for _, p := range got {
		assert.NotEqual(t, "Diamond Necklace", p.Name)
		assert.NotEqual(t, "Luxury Handbag", p.Name)
	}
}

func TestFilterProductsDefaultHasNoPriceCeiling(t *testing.T) {
	products := append(seedProducts(t), domain.Product{
		ID: 9, Name: "Couture Gown", Category: domain.CategoryDresses, Price: 12500,
	})

	got := service.FilterProducts(products, domain.DefaultFilterCriteria())
	assert.Equal(t, []int{9, 8, 7, 6, 5, 4, 3, 2, 1}, ids(got))
}

func TestFilterProductsPriceOrdersAreReversed(t *testing.T) {
	products := seedProducts(t)
	// distinct prices only
	products = slices.DeleteFunc(products, func(p domain.Product) bool {
		return p.ID == 8
	})

	c := domain.DefaultFilterCriteria()
	c.Sort = domain.SortPriceLow
	low := ids(service.FilterProducts(products, c))

	c.Sort = domain.SortPriceHigh
	high := ids(service.FilterProducts(products, c))

	slices.Reverse(high)
	assert.Equal(t, low, high)
}

func TestFilterProductsIsPure(t *testing.T) {
	products := seedProducts(t)
	before := ids(products)

	c := domain.DefaultFilterCriteria()
	c.Sort = domain.SortNameAsc
	first := service.FilterProducts(products, c)
	second := service.FilterProducts(products, c)

	assert.Equal(t, before, ids(products))
	assert.Equal(t, ids(first), ids(second))
}

func TestFacets(t *testing.T) {
	products := seedProducts(t)

	colors := service.AvailableColors(products)
	assert.Equal(t, []string{"Black", "Navy", "Burgundy"}, colors[:3])
	assert.Len(t, colors, len(slices.Compact(slices.Sorted(slices.Values(colors)))))

	sizes := service.AvailableSizes(products)
	assert.Contains(t, sizes, "One Size")
	assert.Equal(t, "XS", sizes[0])
}

func TestRelatedProducts(t *testing.T) {
	products := seedProducts(t)

	related := service.RelatedProducts(products, product(t, 1))
	require.Len(t, related, 1)
	assert.Equal(t, 2, related[0].ID)
}

func TestParseSortKey(t *testing.T) {
	k, err := domain.ParseSortKey("price-high")
	require.NoError(t, err)
	assert.Equal(t, domain.SortPriceHigh, k)

	_, err = domain.ParseSortKey("popular")
	assert.ErrorIs(t, err, domain.ErrUnknownSortKey)
}
