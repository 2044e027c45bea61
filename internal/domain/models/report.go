package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReport is the aggregated view of the bill ledger for one period,
// archived to MongoDB when the archive is configured.
type SalesReport struct {
	PeriodStart  time.Time       `bson:"period_start" json:"period_start"`
	PeriodEnd    time.Time       `bson:"period_end" json:"period_end"`
	BillCount    int             `bson:"bill_count" json:"bill_count"`
	UnitsSold    int             `bson:"units_sold" json:"units_sold"`
	GrossRevenue decimal.Decimal `bson:"gross_revenue" json:"gross_revenue"`
	TopProduct   string          `bson:"top_product" json:"top_product"`
	CreatedAt    time.Time       `bson:"created_at" json:"created_at"`
}
