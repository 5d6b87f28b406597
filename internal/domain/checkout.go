package domain

// CheckoutLine is the wire form of a cart line sent to the order API.
type CheckoutLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest is what the storefront submits to create an order.
// ComputedTotal is advisory, the order API recomputes it.
type CheckoutRequest struct {
	Lines             []CheckoutLine `json:"items"`
	ShippingAddressID string         `json:"shipping_address_id"`
	ComputedTotal     float64        `json:"total_price"`
}
