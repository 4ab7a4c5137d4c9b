package order

import (
	"encoding/json"
	"errors"
	"testing"

	"pizza_pos/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToppingCountsAreValues(t *testing.T) {
	a := ToppingCounts{}.Increment("Bacon")
	b := a.Increment("Bacon")
	c := b.Decrement("Bacon").Decrement("Bacon").Decrement("Bacon")

	assert.Equal(t, 1, a.Count("Bacon"))
	assert.Equal(t, 2, b.Count("Bacon"))
	assert.Equal(t, 0, c.Count("Bacon"))
	assert.Empty(t, c.Selected())
	assert.Len(t, c.Entries(), 1)
}

func TestToppingCountsWithKeepsPosition(t *testing.T) {
	tc := NewToppingCounts(
		domain.ToppingCount{Name: "Onions", Count: 1},
		domain.ToppingCount{Name: "Bacon", Count: 1},
		domain.ToppingCount{Name: "Onions", Count: 2},
	).With("Onions", 5).With("Pineapple", 1)

	assert.Equal(t, []domain.ToppingCount{
		{Name: "Onions", Count: 5},
		{Name: "Bacon", Count: 1},
		{Name: "Pineapple", Count: 1},
	}, tc.Selected())
}

func TestToppingCountsJSON(t *testing.T) {
	tc := ToppingCounts{}.Increment("Sausage").Increment("Bacon").Increment("Sausage")
	b, err := json.Marshal(tc)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Sausage","count":2},{"name":"Bacon","count":1}]`, string(b))

	var back ToppingCounts
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, tc.Entries(), back.Entries())

	empty, err := json.Marshal(ToppingCounts{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestPizzaDraft(t *testing.T) {
	m := newTestModel(&fakeRepo{})
	var cart Cart

	d := PizzaDraft{}.Increment("Pepperoni")
	_, err := m.AddDraft(&cart, d)
	assert.True(t, errors.Is(err, domain.ErrSizeRequired))

	d, err = d.WithSize("Large")
	require.NoError(t, err)
	_, err = d.WithSize("tiny")
	assert.True(t, errors.Is(err, domain.ErrInvalidSize))

	d = d.Increment("Pineapple").Decrement("Pepperoni")
	item, err := m.AddDraft(&cart, d)
	require.NoError(t, err)
	assert.Equal(t, "Custom Pizza (Large) - Pineapple x1", item.Description)
	assert.Equal(t, "19.99", domain.Money(item.Price))
}
