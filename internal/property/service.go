package property

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Change is one field edit in a Patch. Set reports whether the field is
// edited at all; a set change with a nil Value clears the field.
type Change[T any] struct {
	Set   bool
	Value *T
}

// To returns a Change that sets the field to v.
func To[T any](v T) Change[T] {
	return Change[T]{Set: true, Value: &v}
}

// Clear returns a Change that unsets the field.
func Clear[T any]() Change[T] {
	return Change[T]{Set: true}
}

func (c Change[T]) apply(set func(*T)) {
	if c.Set {
		set(c.Value)
	}
}

// Patch is a partial update. Fields left unset are not touched.
type Patch struct {
	Address     Change[string]
	Price       Change[float64]
	Size        Change[float64]
	Description Change[string]
}

// Empty reports whether the patch changes nothing.
func (pt Patch) Empty() bool {
	return !pt.Address.Set && !pt.Price.Set && !pt.Size.Set && !pt.Description.Set
}

// Apply writes the patch's changes onto p.
func (pt Patch) Apply(p *Property) {
	pt.Address.apply(p.SetAddress)
	pt.Price.apply(p.SetPrice)
	pt.Size.apply(p.SetSize)
	pt.Description.apply(p.SetDescription)
}

// UnmarshalJSON decodes a JSON object where a present key sets the field
// and an explicit null clears it. Unknown keys, including "id", are ignored.
func (pt *Patch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if pt.Address, err = decodeChange[string](raw, "address"); err != nil {
		return err
	}
	if pt.Price, err = decodeChange[float64](raw, "price"); err != nil {
		return err
	}
	if pt.Size, err = decodeChange[float64](raw, "size"); err != nil {
		return err
	}
	if pt.Description, err = decodeChange[string](raw, "description"); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes only the set fields, cleared ones as null.
func (pt Patch) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}
	if pt.Address.Set {
		out["address"] = pt.Address.Value
	}
	if pt.Price.Set {
		out["price"] = pt.Price.Value
	}
	if pt.Size.Set {
		out["size"] = pt.Size.Value
	}
	if pt.Description.Set {
		out["description"] = pt.Description.Value
	}
	return json.Marshal(out)
}

func decodeChange[T any](raw map[string]json.RawMessage, key string) (Change[T], error) {
	v, ok := raw[key]
	if !ok {
		return Change[T]{}, nil
	}
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return Clear[T](), nil
	}
	var val T
	if err := json.Unmarshal(v, &val); err != nil {
		return Change[T]{}, fmt.Errorf("field %s: %w", key, err)
	}
	return To(val), nil
}

// Service provides property operations above the repository.
type Service struct {
	repo *Repository
}

// NewService creates a property service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Repository returns the underlying repository.
func (s *Service) Repository() *Repository {
	return s.repo
}

// Create stores a new property. A client-supplied ID is discarded so the
// database assigns one.
func (s *Service) Create(ctx context.Context, p *Property) (*Property, error) {
	in := *p
	in.SetID(nil)

	saved, err := s.repo.Insert(ctx, &in)
	if err != nil {
		return nil, fmt.Errorf("saving property: %w", err)
	}

	slog.Debug("property created", "id", *saved.ID())
	return saved, nil
}

// Replace overwrites every field of the stored record id with p's values.
func (s *Service) Replace(ctx context.Context, id int64, p *Property) (*Property, error) {
	in := *p
	in.SetID(&id)
	return s.repo.Update(ctx, &in)
}

// Patch applies a partial update to the stored record id.
func (s *Service) Patch(ctx context.Context, id int64, patch Patch) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return p, nil
	}

	patch.Apply(p)
	return s.repo.Update(ctx, p)
}

// Delete removes the stored record id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Debug("property deleted", "id", id)
	return nil
}
