package domain

import "time"

// InventoryRecord is a single product in the store catalog.
// The detection pipeline only ever reads these; mutation goes through
// the inventory repository.
type InventoryRecord struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Aliases   []string  `json:"aliases,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryUpdate carries a partial update; nil fields are left unchanged.
type InventoryUpdate struct {
	Name     *string   `json:"name,omitempty"`
	Category *string   `json:"category,omitempty"`
	Price    *float64  `json:"price,omitempty"`
	Stock    *int      `json:"stock,omitempty"`
	Aliases  *[]string `json:"aliases,omitempty"`
}
