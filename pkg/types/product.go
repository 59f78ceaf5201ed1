package types

import "strings"

// RawProduct is a product row as it arrives from the sheet, before
// normalization. Stock is whatever the source put in the cell: a number,
// a numeric string, garbage or nothing at all.
type RawProduct struct {
	Id       uint     `json:"id"`
	Sku      string   `json:"sku"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Brand    string   `json:"brand"`
	Level    string   `json:"level,omitempty"`
	Year     string   `json:"year,omitempty"`
	Images   []string `json:"images,omitempty"`
	Price    string   `json:"price"`
	Stock    any      `json:"stock"`
}

// Product is the normalized record the whole engine works with. Instances
// are immutable for the lifetime of a snapshot; Stock is always a finite,
// non-negative number after normalization.
type Product struct {
	Id       uint     `json:"id"`
	Sku      string   `json:"sku"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Brand    string   `json:"brand"`
	Level    string   `json:"level,omitempty"`
	Year     string   `json:"year,omitempty"`
	Images   []string `json:"images,omitempty"`
	Price    string   `json:"price"`
	Stock    float64  `json:"stock"`
}

// HasValidSku reports whether the product carries a usable SKU. Rows with a
// blank or whitespace SKU are placeholders in the sheet and never reach the
// storefront.
func (p *Product) HasValidSku() bool {
	return strings.TrimSpace(p.Sku) != ""
}

func (p *Product) HasStock() bool {
	return p.Stock > 0
}
