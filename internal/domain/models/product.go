package models

import "github.com/shopspring/decimal"

// Product is a single stock line in the inventory.
//
// ID is assigned once by the inventory manager and never reused or changed.
// Quantity is the current stock level and only ever moves through billing
// (decrement) or an explicit removal of the whole line.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`

	// Reserved for future use; no current operation populates them.
	CustomerName string `json:"customer_name,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}
