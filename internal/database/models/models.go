package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Company struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Products   []Product   `gorm:"foreignKey:CompanyID"`
	Warehouses []Warehouse `gorm:"foreignKey:CompanyID"`
}

type ProductCategory struct {
	ID                       int32  `gorm:"primaryKey"`
	Name                     string `gorm:"size:100;not null"`
	DefaultLowStockThreshold *int32
	CreatedAt                time.Time
	UpdatedAt                time.Time

	Products []Product `gorm:"foreignKey:CategoryID"`
}

// Product SKUs are unique within a company, not globally.
type Product struct {
	ID                int64  `gorm:"primaryKey"`
	CompanyID         int64  `gorm:"uniqueIndex:idx_company_sku;not null"`
	Name              string `gorm:"size:255;not null"`
	SKU               string `gorm:"size:100;uniqueIndex:idx_company_sku;not null"`
	CategoryID        *int32
	LowStockThreshold *int32
	IsActive          bool `gorm:"default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Category  *ProductCategory  `gorm:"foreignKey:CategoryID"`
	Inventory []Inventory       `gorm:"foreignKey:ProductID"`
	Suppliers []ProductSupplier `gorm:"foreignKey:ProductID"`
}

type Warehouse struct {
	ID        int64  `gorm:"primaryKey"`
	CompanyID int64  `gorm:"index;not null"`
	Name      string `gorm:"size:255;not null"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Inventory []Inventory `gorm:"foreignKey:WarehouseID"`
}

// Inventory holds at most one row per (product, warehouse) pair.
type Inventory struct {
	ID               int64 `gorm:"primaryKey"`
	ProductID        int64 `gorm:"uniqueIndex:idx_product_warehouse;not null"`
	WarehouseID      int64 `gorm:"uniqueIndex:idx_product_warehouse;not null"`
	Quantity         int64 `gorm:"not null;check:quantity >= 0"`
	ReservedQuantity int64 `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Product   *Product   `gorm:"foreignKey:ProductID"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}

// SalesTransaction is an append-only fact. Rows are never updated or
// deleted; the alert queries read them only as a time-windowed aggregate.
type SalesTransaction struct {
	ID          int64           `gorm:"primaryKey"`
	ProductID   int64           `gorm:"index:idx_sales_pair;not null"`
	WarehouseID int64           `gorm:"index:idx_sales_pair;not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
	SaleDate    time.Time       `gorm:"index;not null"`
	CreatedAt   time.Time
}

type Supplier struct {
	ID           int64   `gorm:"primaryKey"`
	Name         string  `gorm:"size:255;not null"`
	ContactEmail *string `gorm:"size:100"`
	IsActive     bool    `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Products []ProductSupplier `gorm:"foreignKey:SupplierID"`
}

// ProductSupplier links a product to a supplier. The schema does not
// enforce a single primary link per product; readers break ties on the
// lowest link id.
type ProductSupplier struct {
	ID           int64   `gorm:"primaryKey"`
	ProductID    int64   `gorm:"index;not null"`
	SupplierID   int64   `gorm:"not null"`
	SupplierSKU  *string `gorm:"size:100"`
	LeadTimeDays int32
	IsPrimary    bool `gorm:"default:false"`
	CreatedAt    time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}
