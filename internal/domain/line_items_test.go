package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemsRoundTrip(t *testing.T) {
	items := LineItems{
		{Kind: LineStandardPizza, Description: "Margherita (Medium)", Price: decimal.RequireFromString("15.99"), Size: SizeMedium},
		{
			Kind:        LineCustomPizza,
			Description: "Custom Pizza (Large) - Bacon x1, Pepperoni x2",
			Price:       decimal.RequireFromString("23.99"),
			Size:        SizeLarge,
			Toppings:    []ToppingCount{{Name: "Bacon", Count: 1}, {Name: "Pepperoni", Count: 2}},
		},
		{Kind: LineDrink, Description: "Water", Price: decimal.RequireFromString("1.5")},
	}

	v, err := items.Value()
	require.NoError(t, err)

	var got LineItems
	require.NoError(t, got.Scan(v))
	require.Len(t, got, len(items))
	for i := range items {
		assert.Equal(t, items[i].Kind, got[i].Kind)
		assert.Equal(t, items[i].Description, got[i].Description)
		assert.True(t, items[i].Price.Equal(got[i].Price), "line %d price %s != %s", i, items[i].Price, got[i].Price)
		assert.Equal(t, items[i].Size, got[i].Size)
		assert.Equal(t, items[i].Toppings, got[i].Toppings)
	}
}

func TestLineItemsEncodeFixesTwoDigits(t *testing.T) {
	b, err := LineItems{{Kind: LineDrink, Description: "Water", Price: decimal.RequireFromString("1.5")}}.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":"1.50"`)
	assert.Contains(t, string(b), `"version":1`)
}

func TestDecodeLineItemsRejectsUnknownVersion(t *testing.T) {
	_, err := DecodeLineItems([]byte(`{"version":7,"items":[]}`))
	assert.Error(t, err)

	var li LineItems
	assert.Error(t, li.Scan(42))
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want Size
		err  error
	}{
		{"small", SizeSmall, nil},
		{"Medium", SizeMedium, nil},
		{" LARGE ", SizeLarge, nil},
		{"", "", ErrSizeRequired},
		{"huge", "", ErrInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidPIN(t *testing.T) {
	assert.True(t, ValidPIN("1234"))
	assert.True(t, ValidPIN("0000"))
	assert.False(t, ValidPIN("123"))
	assert.False(t, ValidPIN("12345"))
	assert.False(t, ValidPIN("12a4"))
	assert.False(t, ValidPIN(""))
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(ErrEmptyCart))
	assert.Equal(t, KindNotFound, KindOf(Wrap(ErrCatalogItemNotFound, "Root Beer")))
	assert.Equal(t, KindPersistence, KindOf(Persistence("create order", errors.New("disk full"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.True(t, errors.Is(Wrap(ErrInvalidSize, "huge"), ErrInvalidSize))
	assert.True(t, IsAuthFailure(ErrInvalidPinFormat))
	assert.True(t, IsAuthFailure(ErrInvalidCredentials))
	assert.Equal(t, KindAuthentication, KindOf(ErrInvalidCredentials))
	assert.Equal(t, "authentication", KindAuthentication.String())
	assert.False(t, IsAuthFailure(ErrAccountNotFound))
}
