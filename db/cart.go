package db

// CartLine is one product-quantity pairing in the local shopping cart.
// At most one line exists per product code; the unit price is captured at
// the time the product is added so totals stay stable between sessions.
type CartLine struct {
	Code       string `gorm:"primaryKey" json:"code"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `gorm:"check:quantity>0" json:"quantity"`
}
