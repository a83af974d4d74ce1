package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"1249.5", "1249.50", true},
		{"$1,249.50", "1249.50", true},
		{"0", "0.00", true},
		{"19.999", "20.00", true},
		{"", "", false},
		{"abc", "", false},
		{"-5", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := parsePrice(tc.raw)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.StringFixed(2))
		})
	}
}

func TestPricingUpsertAndSort(t *testing.T) {
	ctx := context.Background()
	svc := NewPricingService(newTestStore(t).PriceItems(), language.English)

	for _, in := range []PriceItemInput{
		{SKU: "ax-7k", Description: "7k axle", Category: "Axles", Price: "1249.5"},
		{SKU: "ax-3k", Description: "3.5k axle", Category: "axles", Price: "389"},
		{SKU: "LT-1", Description: "LED kit", Category: "lights", Price: "89.99"},
	} {
		_, err := svc.Upsert(ctx, in)
		require.NoError(t, err)
	}
	item, err := svc.Upsert(ctx, PriceItemInput{SKU: "AX-7K", Description: "7k axle", Category: "axles", Price: "10000"})
	require.NoError(t, err)
	assert.Equal(t, "10000.00", item.Price)

	axles, err := svc.List(ctx, PriceListInput{Category: "axles", Sort: tablesort.State{{Column: "price", Direction: tablesort.Descending}}})
	require.NoError(t, err)
	require.Len(t, axles, 2)
	assert.Equal(t, "AX-7K", axles[0].SKU)
	assert.Equal(t, "AX-3K", axles[1].SKU)

	_, err = svc.Upsert(ctx, PriceItemInput{Price: "1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
