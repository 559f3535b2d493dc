package alerts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CompanyRecord is the company existence/name lookup result.
type CompanyRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductRecord struct {
	ID         int64
	Name       string
	SKU        string
	CategoryID *int32
	Threshold  *int32
}

type WarehouseRecord struct {
	ID   int64
	Name string
}

type InventoryRecord struct {
	ProductID   int64
	WarehouseID int64
	Quantity    int64
}

// SalesAggregate is one (product, warehouse) group of the windowed sales
// query: mean quantity per transaction and the transaction count.
type SalesAggregate struct {
	ProductID   int64
	WarehouseID int64
	AvgQuantity decimal.Decimal
	TxnCount    int64
}

type SupplierRecord struct {
	SupplierID   int64
	Name         string
	ContactEmail *string
	SupplierSKU  *string
	LeadTimeDays int32
}

// Gateway is the read-only data boundary. Every fetch is scoped to the
// requesting company; implementations must never leak rows across tenants.
type Gateway interface {
	// GetCompany returns nil (no error) when the company does not exist.
	GetCompany(ctx context.Context, companyID int64) (*CompanyRecord, error)

	ActiveProducts(ctx context.Context, companyID int64) ([]ProductRecord, error)

	CategoryThresholds(ctx context.Context, categoryIDs []int32) (map[int32]*int32, error)

	ActiveWarehouses(ctx context.Context, companyID int64) ([]WarehouseRecord, error)

	// InventoryLevels returns inventory rows in the company's active
	// warehouses, optionally restricted to a single warehouse.
	InventoryLevels(ctx context.Context, companyID int64, warehouseID *int64) ([]InventoryRecord, error)

	// SalesAggregates groups sales transactions with sale_date >= since by
	// (product, warehouse). Pairs without transactions produce no row.
	SalesAggregates(ctx context.Context, companyID int64, since time.Time, warehouseID *int64) ([]SalesAggregate, error)

	// PrimarySuppliers resolves the primary supplier link per product.
	// Products without a primary link are absent from the map.
	PrimarySuppliers(ctx context.Context, productIDs []int64) (map[int64]SupplierRecord, error)
}
