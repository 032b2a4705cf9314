package models

import "time"

// SessionRecord is the durable per-device session, one row per install.
// The table token itself is single-use input and is never written here.
type SessionRecord struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Credential string    `gorm:"type:text" json:"credential"`
	Identifier string    `gorm:"type:varchar(255)" json:"identifier"`
	TableUUID  string    `gorm:"type:varchar(64)" json:"table_uuid"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// ProductLine is one cart line for a product. The embedded Product is the
// catalog snapshot captured when the product was first added; its Price and
// Stock are not refreshed afterwards.
type ProductLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// OfferLine is one cart line for a bundled offer.
type OfferLine struct {
	Offer    Offer `json:"offer"`
	Quantity int   `json:"quantity"`
}

// CartSnapshot is the full serializable cart state. Every cart mutation
// persists one of these; reloading reconstructs an equal cart.
type CartSnapshot struct {
	ProductLines []ProductLine `json:"product_lines"`
	OfferLines   []OfferLine   `json:"offer_lines"`
	Notes        string        `json:"notes"`
}

// CartRecord is the durable cart snapshot, one row per install, with the
// snapshot serialized as JSON in Payload.
type CartRecord struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Payload   string    `gorm:"type:text" json:"payload"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
