package domain

import "math"

// PlaceholderName is shown for cart lines whose product no longer exists in the catalog.
const PlaceholderName = "Unknown Product"

// CartLine is a single product entry in a visitor's cart. Price and name are never
// stored here, they are joined from the live catalog on every read.
type CartLine struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// ResolvedLine is a CartLine joined against the inventory.
type ResolvedLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Unit      Unit    `json:"unit,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	Missing   bool    `json:"missing"`
}

// RoundMoney rounds an amount to two decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
