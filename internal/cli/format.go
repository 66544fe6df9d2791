package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/propdb/internal/property"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single property summary in text format.
func printPropertySummary(w io.Writer, p *property.Property) {
	if id := p.ID(); id != nil {
		fmt.Fprintf(w, "Property #%d\n", *id)
	} else {
		fmt.Fprintln(w, "Property (unsaved)")
	}
	if a := p.Address(); a != nil {
		fmt.Fprintf(w, "  Address:      %s\n", *a)
	}
	if v := p.Price(); v != nil {
		fmt.Fprintf(w, "  Price:        $%s\n", formatPrice(*v))
	}
	if v := p.Size(); v != nil {
		fmt.Fprintf(w, "  Size:         %s\n", formatSize(*v))
	}
	if d := p.Description(); d != nil {
		fmt.Fprintf(w, "  Description:  %s\n", *d)
	}
}

// printPropertyTable prints a list of properties as a formatted table.
func printPropertyTable(out io.Writer, props []*property.Property) error {
	if len(props) == 0 {
		fmt.Fprintln(out, "No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tADDRESS\tPRICE\tSIZE\tDESCRIPTION"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-------\t-----\t----\t-----------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		id := "-"
		if v := p.ID(); v != nil {
			id = strconv.FormatInt(*v, 10)
		}
		address := "-"
		if v := p.Address(); v != nil {
			address = truncate(*v, 40)
		}
		price := "-"
		if v := p.Price(); v != nil {
			price = "$" + formatPrice(*v)
		}
		size := "-"
		if v := p.Size(); v != nil {
			size = formatSize(*v)
		}
		desc := "-"
		if v := p.Description(); v != nil {
			desc = truncate(*v, 30)
		}

		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", id, address, price, size, desc); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d properties\n", len(props))
	return nil
}

// formatPrice formats an amount with thousands separators. Cents are shown
// only when non-zero.
func formatPrice(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strconv.FormatFloat(amount, 'g', -1, 64)
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	// Add commas
	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)

	result := sign + strings.Join(parts, ",")
	if frac != "00" {
		result += "." + frac
	}
	return result
}

// formatSize prints a size without trailing zeros.
func formatSize(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
