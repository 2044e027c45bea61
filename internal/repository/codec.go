package repository

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
)

// SchemaVersion is written into every persisted document. Decoding rejects
// versions it does not know instead of guessing at the layout.
const SchemaVersion = 1

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// productRecord is the flat persisted form of a product. Required fields are
// pointers so a missing key is distinguishable from a zero value on decode.
type productRecord struct {
	ID           *int64           `json:"id"`
	Name         *string          `json:"name"`
	Quantity     *int             `json:"quantity"`
	Price        *decimal.Decimal `json:"price"`
	CustomerName string           `json:"customer_name"`
	PhoneNumber  string           `json:"phone_number"`
}

type billRecord struct {
	ID          *int64           `json:"id"`
	ProductName *string          `json:"product_name"`
	Quantity    *int             `json:"quantity"`
	TotalPrice  *decimal.Decimal `json:"total_price"`
}

type inventoryDocument struct {
	Version  int             `json:"version"`
	NextID   int64           `json:"next_id"`
	Products []productRecord `json:"products"`
}

type billDocument struct {
	Version int          `json:"version"`
	Bills   []billRecord `json:"bills"`
}

func toProductRecord(p models.Product) productRecord {
	return productRecord{
		ID:           &p.ID,
		Name:         &p.Name,
		Quantity:     &p.Quantity,
		Price:        &p.Price,
		CustomerName: p.CustomerName,
		PhoneNumber:  p.PhoneNumber,
	}
}

func (r productRecord) toProduct() (models.Product, error) {
	if r.ID == nil || r.Name == nil || r.Quantity == nil || r.Price == nil {
		return models.Product{}, fmt.Errorf("%w: product record is missing a required field", models.ErrCorruptData)
	}
	return models.Product{
		ID:           *r.ID,
		Name:         *r.Name,
		Quantity:     *r.Quantity,
		Price:        *r.Price,
		CustomerName: r.CustomerName,
		PhoneNumber:  r.PhoneNumber,
	}, nil
}

func toBillRecord(b models.Bill) billRecord {
	return billRecord{
		ID:          &b.ID,
		ProductName: &b.ProductName,
		Quantity:    &b.Quantity,
		TotalPrice:  &b.TotalPrice,
	}
}

func (r billRecord) toBill() (models.Bill, error) {
	if r.ID == nil || r.ProductName == nil || r.Quantity == nil || r.TotalPrice == nil {
		return models.Bill{}, fmt.Errorf("%w: bill record is missing a required field", models.ErrCorruptData)
	}
	return models.Bill{
		ID:          *r.ID,
		ProductName: *r.ProductName,
		Quantity:    *r.Quantity,
		TotalPrice:  *r.TotalPrice,
	}, nil
}

// EncodeInventory serializes the inventory store. Field order is the struct
// declaration order, so repeated saves of equal state are byte-identical.
func EncodeInventory(products []models.Product, nextID int64) ([]byte, error) {
	doc := inventoryDocument{Version: SchemaVersion, NextID: nextID, Products: make([]productRecord, 0, len(products))}
	for _, p := range products {
		doc.Products = append(doc.Products, toProductRecord(p))
	}
	return json.Marshal(doc)
}

// DecodeInventory parses a persisted inventory document.
func DecodeInventory(data []byte) ([]models.Product, int64, error) {
	var doc inventoryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("%w: decode inventory: %v", models.ErrCorruptData, err)
	}
	if doc.Version != SchemaVersion {
		return nil, 0, fmt.Errorf("%w: unsupported inventory schema version %d", models.ErrCorruptData, doc.Version)
	}
	products := make([]models.Product, 0, len(doc.Products))
	for _, r := range doc.Products {
		p, err := r.toProduct()
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	nextID := doc.NextID
	if nextID < 1 {
		nextID = 1
	}
	return products, nextID, nil
}

// EncodeBills serializes the bill ledger, oldest first.
func EncodeBills(bills []models.Bill) ([]byte, error) {
	doc := billDocument{Version: SchemaVersion, Bills: make([]billRecord, 0, len(bills))}
	for _, b := range bills {
		doc.Bills = append(doc.Bills, toBillRecord(b))
	}
	return json.Marshal(doc)
}

// DecodeBills parses a persisted ledger document.
func DecodeBills(data []byte) ([]models.Bill, error) {
	var doc billDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode bills: %v", models.ErrCorruptData, err)
	}
	if doc.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported ledger schema version %d", models.ErrCorruptData, doc.Version)
	}
	bills := make([]models.Bill, 0, len(doc.Bills))
	for _, r := range doc.Bills {
		b, err := r.toBill()
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, nil
}

// MarshalProduct serializes a single product record (used by keyed backends).
func MarshalProduct(p models.Product) ([]byte, error) {
	return json.Marshal(toProductRecord(p))
}

// UnmarshalProduct parses a single product record.
func UnmarshalProduct(data []byte) (models.Product, error) {
	var r productRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return models.Product{}, fmt.Errorf("%w: decode product: %v", models.ErrCorruptData, err)
	}
	return r.toProduct()
}

// MarshalBill serializes a single bill record (used by keyed backends).
func MarshalBill(b models.Bill) ([]byte, error) {
	return json.Marshal(toBillRecord(b))
}

// UnmarshalBill parses a single bill record.
func UnmarshalBill(data []byte) (models.Bill, error) {
	var r billRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return models.Bill{}, fmt.Errorf("%w: decode bill: %v", models.ErrCorruptData, err)
	}
	return r.toBill()
}
