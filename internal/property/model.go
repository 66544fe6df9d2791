// Package property provides the property record and its data access.
package property

import "encoding/json"

// Property is a real-estate listing record. Every field is optional; the
// zero value has all of them unset. The ID is assigned by the database when
// the record is first inserted.
//
// Accessors copy values in and out, so a Property can be copied by value and
// shared read-only without further synchronization.
type Property struct {
	id          *int64
	address     *string
	price       *float64
	size        *float64
	description *string
}

// New returns a Property with every field unset.
func New() *Property {
	return &Property{}
}

// Ptr returns a pointer to v, for use with the setters.
func Ptr[T any](v T) *T {
	return &v
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ID returns the database-assigned identifier, or nil before the record is
// persisted.
func (p *Property) ID() *int64 { return clone(p.id) }

// SetID replaces the identifier. Normally only the repository calls this.
func (p *Property) SetID(id *int64) { p.id = clone(id) }

func (p *Property) Address() *string { return clone(p.address) }

func (p *Property) SetAddress(address *string) { p.address = clone(address) }

func (p *Property) Price() *float64 { return clone(p.price) }

func (p *Property) SetPrice(price *float64) { p.price = clone(price) }

// Size returns the living area. Units are whatever the caller stores.
func (p *Property) Size() *float64 { return clone(p.size) }

func (p *Property) SetSize(size *float64) { p.size = clone(size) }

func (p *Property) Description() *string { return clone(p.description) }

func (p *Property) SetDescription(description *string) { p.description = clone(description) }

// propertyJSON is the wire form of a Property. Unset fields are omitted.
type propertyJSON struct {
	ID          *int64   `json:"id,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Size        *float64 `json:"size,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p Property) MarshalJSON() ([]byte, error) {
	return json.Marshal(propertyJSON{
		ID:          p.id,
		Address:     p.address,
		Price:       p.price,
		Size:        p.size,
		Description: p.description,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Property) UnmarshalJSON(data []byte) error {
	var w propertyJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = Property{
		id:          w.ID,
		address:     w.Address,
		price:       w.Price,
		size:        w.Size,
		description: w.Description,
	}
	return nil
}
