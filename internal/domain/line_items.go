package domain

import (
	"database/sql/driver" // Valuer interface
	"encoding/json"       // Envelope encoding
	"fmt"                 // Error formatting

	"github.com/shopspring/decimal" // Exact decimal money
)

// ItemsVersion is the current version of the serialized items column
const ItemsVersion = 1

// LineItems is an order's cart snapshot, stored as a versioned JSON document
type LineItems []LineItem

type itemsEnvelope struct {
	Version int        `json:"version"`
	Items   []itemWire `json:"items"`
}

type itemWire struct {
	Kind        LineKind       `json:"kind"`
	Description string         `json:"description"`
	Price       string         `json:"price"`
	Size        Size           `json:"size,omitempty"`
	Toppings    []ToppingCount `json:"toppings,omitempty"`
}

// Encode serializes the items into the current envelope version
func (li LineItems) Encode() ([]byte, error) {
	env := itemsEnvelope{Version: ItemsVersion, Items: make([]itemWire, len(li))}
	for i, it := range li {
		env.Items[i] = itemWire{
			Kind:        it.Kind,
			Description: it.Description,
			Price:       Money(it.Price),
			Size:        it.Size,
			Toppings:    it.Toppings,
		}
	}
	return json.Marshal(env)
}

// DecodeLineItems parses a document produced by Encode
func DecodeLineItems(data []byte) (LineItems, error) {
	var env itemsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if env.Version != ItemsVersion {
		return nil, fmt.Errorf("decode items: unsupported version %d", env.Version)
	}
	out := make(LineItems, len(env.Items))
	for i, w := range env.Items {
		price, err := decimal.NewFromString(w.Price)
		if err != nil {
			return nil, fmt.Errorf("decode items: line %d price: %w", i, err)
		}
		out[i] = LineItem{
			Kind:        w.Kind,
			Description: w.Description,
			Price:       price,
			Size:        w.Size,
			Toppings:    w.Toppings,
		}
	}
	return out, nil
}

// Value implements driver.Valuer
func (li LineItems) Value() (driver.Value, error) {
	b, err := li.Encode()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (li *LineItems) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case nil:
		*li = nil
		return nil
	default:
		return fmt.Errorf("scan items: unsupported type %T", src)
	}
	decoded, err := DecodeLineItems(data)
	if err != nil {
		return err
	}
	*li = decoded
	return nil
}
