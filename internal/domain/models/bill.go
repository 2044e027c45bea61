package models

import "github.com/shopspring/decimal"

// Bill is one sale recorded against the inventory.
//
// ProductName and TotalPrice are snapshots taken at billing time: the source
// product may later be renamed or removed, and its price may change, without
// touching bills already written. The ledger is append-only; a bill is never
// edited or deleted.
type Bill struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}
