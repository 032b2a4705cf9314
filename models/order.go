package models

import "time"

// OrderItemRequest is a single product line as submitted to the backend.
type OrderItemRequest struct {
	ProductUUID string `json:"product_uuid"`
	Quantity    int    `json:"quantity"`
}

// OrderOfferRequest is a single bundled-offer line as submitted to the backend.
type OrderOfferRequest struct {
	OfferUUID string `json:"offer_uuid"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the payload for POST /orders/. It is built read-only from
// the cart snapshot; the cart itself is cleared only after the backend
// confirms the submission.
type OrderRequest struct {
	Items  []OrderItemRequest  `json:"items"`
	Offers []OrderOfferRequest `json:"offers,omitempty"`
	Notes  string              `json:"notes,omitempty"`
}

type OrderItem struct {
	ProductUUID string  `json:"product_uuid"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	UUID      string      `json:"uuid"`
	TableUUID string      `json:"table_uuid"`
	Status    string      `json:"status"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// UnpaidOrdersResponse is returned both by the per-diner and the per-table
// unpaid-orders endpoints. TotalAmountOwed is the amount the payment screen
// charges; it is the backend's figure, not recomputed client-side.
type UnpaidOrdersResponse struct {
	Orders          []Order `json:"orders"`
	TotalAmountOwed float64 `json:"total_amount_owed"`
}

// OpenSessionsResponse reports how many diner sessions are currently active
// at the table. Fetched once per payment initiation, never cached.
type OpenSessionsResponse struct {
	OpenSessions int `json:"open_sessions"`
}

// WaiterCallResponse acknowledges a waiter call for a table.
type WaiterCallResponse struct {
	Number  int  `json:"number"`
	Calling bool `json:"calling"`
}
