package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/propdb/internal/property"
)

// fieldFlags binds the editable property fields to command flags.
type fieldFlags struct {
	address     string
	price       float64
	size        float64
	description string
	clear       []string
}

func (f *fieldFlags) register(cmd *cobra.Command, withClear bool) {
	cmd.Flags().StringVar(&f.address, "address", "", "street address")
	cmd.Flags().Float64Var(&f.price, "price", 0, "listing price")
	cmd.Flags().Float64Var(&f.size, "size", 0, "living area")
	cmd.Flags().StringVar(&f.description, "description", "", "free-form description")
	if withClear {
		cmd.Flags().StringSliceVar(&f.clear, "clear", nil, "fields to unset (address,price,size,description)")
	}
}

// patch returns a Patch holding only the flags the user passed.
func (f *fieldFlags) patch(cmd *cobra.Command) (property.Patch, error) {
	var pt property.Patch
	flags := cmd.Flags()

	if flags.Changed("address") {
		pt.Address = property.To(f.address)
	}
	if flags.Changed("price") {
		if err := finite("price", f.price); err != nil {
			return property.Patch{}, err
		}
		pt.Price = property.To(f.price)
	}
	if flags.Changed("size") {
		if err := finite("size", f.size); err != nil {
			return property.Patch{}, err
		}
		pt.Size = property.To(f.size)
	}
	if flags.Changed("description") {
		pt.Description = property.To(f.description)
	}

	for _, name := range f.clear {
		name = strings.TrimSpace(name)
		if flags.Changed(name) {
			return property.Patch{}, fmt.Errorf("cannot both set and clear %s", name)
		}
		switch name {
		case "address":
			pt.Address = property.Clear[string]()
		case "price":
			pt.Price = property.Clear[float64]()
		case "size":
			pt.Size = property.Clear[float64]()
		case "description":
			pt.Description = property.Clear[string]()
		default:
			return property.Patch{}, fmt.Errorf("unknown field %q", name)
		}
	}

	return pt, nil
}

// finite rejects NaN and infinities, which have no JSON encoding.
func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("--%s must be a finite number, got %v", name, v)
	}
	return nil
}
