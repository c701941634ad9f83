package domain

import "time"

// Product represents a product in the catalog. Prices are stored in cents.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Price         int64     `json:"price"`
	OriginalPrice *int64    `json:"original_price,omitempty"`
	Image         string    `json:"image"`
	Category      string    `json:"category"`
	Stock         int       `json:"stock"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	Description   string    `json:"description"`
	IsFeatured    bool      `json:"is_featured"`
	IsFlashDeal   bool      `json:"is_flash_deal"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// InStock reports whether the product has any sellable stock left.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// DiscountPercent returns the discount relative to the original price,
// rounded down. Returns 0 when no original price is set or it is not higher
// than the current price.
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice == 0 {
		return 0
	}
	return int((*p.OriginalPrice - p.Price) * 100 / *p.OriginalPrice)
}
