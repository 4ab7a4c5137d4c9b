package order

import (
	"encoding/json" // Session encoding

	"pizza_pos/internal/domain" // Topping entries
)

// ToppingCounts maps topping names to portion counts, keeping the order in
// which toppings were first selected. Values are immutable: every mutator
// returns a new ToppingCounts.
type ToppingCounts struct {
	entries []domain.ToppingCount
}

// NewToppingCounts builds counts from name/count pairs. Repeated names are
// summed into the first occurrence.
func NewToppingCounts(pairs ...domain.ToppingCount) ToppingCounts {
	tc := ToppingCounts{}
	for _, p := range pairs {
		tc = tc.add(p.Name, p.Count)
	}
	return tc
}

func (tc ToppingCounts) index(name string) int {
	for i, e := range tc.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

func (tc ToppingCounts) add(name string, delta int) ToppingCounts {
	out := ToppingCounts{entries: append([]domain.ToppingCount(nil), tc.entries...)}
	if i := out.index(name); i >= 0 {
		out.entries[i].Count += delta
		return out
	}
	out.entries = append(out.entries, domain.ToppingCount{Name: name, Count: delta})
	return out
}

// Count returns the portions of name, zero if never selected
func (tc ToppingCounts) Count(name string) int {
	if i := tc.index(name); i >= 0 {
		return tc.entries[i].Count
	}
	return 0
}

// Increment adds one portion of name
func (tc ToppingCounts) Increment(name string) ToppingCounts {
	return tc.add(name, 1)
}

// Decrement removes one portion of name. Counts never go below zero.
func (tc ToppingCounts) Decrement(name string) ToppingCounts {
	if tc.Count(name) <= 0 {
		return tc
	}
	return tc.add(name, -1)
}

// With sets the count of name, keeping its position if already present
func (tc ToppingCounts) With(name string, count int) ToppingCounts {
	return tc.add(name, count-tc.Count(name))
}

// Entries returns every entry, zero counts included, in selection order
func (tc ToppingCounts) Entries() []domain.ToppingCount {
	return append([]domain.ToppingCount(nil), tc.entries...)
}

// Selected returns the entries with a positive count, in selection order
func (tc ToppingCounts) Selected() []domain.ToppingCount {
	var out []domain.ToppingCount
	for _, e := range tc.entries {
		if e.Count > 0 {
			out = append(out, e)
		}
	}
	return out
}

// MarshalJSON encodes the counts as an ordered array
func (tc ToppingCounts) MarshalJSON() ([]byte, error) {
	entries := tc.entries
	if entries == nil {
		entries = []domain.ToppingCount{}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes the array written by MarshalJSON
func (tc *ToppingCounts) UnmarshalJSON(data []byte) error {
	var entries []domain.ToppingCount
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*tc = NewToppingCounts(entries...)
	return nil
}
