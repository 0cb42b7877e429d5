package db

// Product is a locally cached catalogue entry.
// The cache is filled by `storefront catalogue refresh` and read by the
// catalogue and cart commands so browsing works without refetching pages.
type Product struct {
	Code        string `gorm:"primaryKey" json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	PriceCents  int64  `json:"priceCents"`
}
