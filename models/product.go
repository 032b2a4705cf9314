package models

// Product is a catalog entry as served by the restaurant API. Price and
// Stock are a snapshot taken when the catalog was loaded; the cart captures
// them at add-time and does not refresh them while the diner browses.
type Product struct {
	UUID         string  `json:"uuid"`
	CategoryUUID string  `json:"category_uuid"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	Image        string  `json:"image"`
}

type MenuCategory struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// VenueConfig is the restaurant's display settings.
type VenueConfig struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	LogoURL  string `json:"logo_url"`
}

// Offer is a bundled promotion. The constituent products are informational
// only, they are not priced separately.
type Offer struct {
	UUID     string    `json:"uuid"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Products []Product `json:"products,omitempty"`
}
