package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"google.golang.org/grpc/codes"
	"gorm.io/gorm"

	"stockwatch-system/internal/alerts"
	"stockwatch-system/internal/database/models"
)

// GormGateway reads the inventory schema through gorm. All queries are
// company-scoped; a circuit breaker shields the database so a flapping
// connection degrades to Unavailable instead of piling up requests.
type GormGateway struct {
	db      *gorm.DB
	breaker *gobreaker.CircuitBreaker
}

func NewGormGateway(db *gorm.DB) *GormGateway {
	st := gobreaker.Settings{Name: "inventory-db"}
	st.Interval = 60 * time.Second
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 5
	}
	return &GormGateway{db: db, breaker: gobreaker.NewCircuitBreaker(st)}
}

func (g *GormGateway) run(ctx context.Context, query func(tx *gorm.DB) error) error {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, query(g.db.WithContext(ctx))
	})
	return mapError(ctx, err)
}

func mapError(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return alerts.Unavailable("inventory store circuit open")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return alerts.Timeout("inventory store read timed out")
	case errors.Is(err, context.Canceled):
		return err
	default:
		return alerts.Wrap(codes.Unavailable, err, "inventory store read failed")
	}
}

func (g *GormGateway) GetCompany(ctx context.Context, companyID int64) (*alerts.CompanyRecord, error) {
	var rows []models.Company
	err := g.run(ctx, func(tx *gorm.DB) error {
		return tx.Select("id", "name").
			Where("id = ?", companyID).
			Limit(1).
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &alerts.CompanyRecord{ID: rows[0].ID, Name: rows[0].Name}, nil
}

func (g *GormGateway) ActiveProducts(ctx context.Context, companyID int64) ([]alerts.ProductRecord, error) {
	var rows []models.Product
	err := g.run(ctx, func(tx *gorm.DB) error {
		return tx.Select("id", "name", "sku", "category_id", "low_stock_threshold").
			Where("company_id = ? AND is_active = ?", companyID, true).
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	records := make([]alerts.ProductRecord, len(rows))
	for i, r := range rows {
		records[i] = alerts.ProductRecord{
			ID:         r.ID,
			Name:       r.Name,
			SKU:        r.SKU,
			CategoryID: r.CategoryID,
			Threshold:  r.LowStockThreshold,
		}
	}
	return records, nil
}

func (g *GormGateway) CategoryThresholds(ctx context.Context, categoryIDs []int32) (map[int32]*int32, error) {
	thresholds := make(map[int32]*int32, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return thresholds, nil
	}

	var rows []models.ProductCategory
	err := g.run(ctx, func(tx *gorm.DB) error {
		return tx.Select("id", "default_low_stock_threshold").
			Where("id IN ?", categoryIDs).
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		thresholds[r.ID] = r.DefaultLowStockThreshold
	}
	return thresholds, nil
}

func (g *GormGateway) ActiveWarehouses(ctx context.Context, companyID int64) ([]alerts.WarehouseRecord, error) {
	var rows []models.Warehouse
	err := g.run(ctx, func(tx *gorm.DB) error {
		return tx.Select("id", "name").
			Where("company_id = ? AND is_active = ?", companyID, true).
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	records := make([]alerts.WarehouseRecord, len(rows))
	for i, r := range rows {
		records[i] = alerts.WarehouseRecord{ID: r.ID, Name: r.Name}
	}
	return records, nil
}

func (g *GormGateway) InventoryLevels(ctx context.Context, companyID int64, warehouseID *int64) ([]alerts.InventoryRecord, error) {
	var rows []alerts.InventoryRecord
	err := g.run(ctx, func(tx *gorm.DB) error {
		query := tx.Model(&models.Inventory{}).
			Select("inventories.product_id, inventories.warehouse_id, inventories.quantity").
			Joins("JOIN warehouses ON warehouses.id = inventories.warehouse_id").
			Where("warehouses.company_id = ? AND warehouses.is_active = ?", companyID, true)
		if warehouseID != nil {
			query = query.Where("inventories.warehouse_id = ?", *warehouseID)
		}
		return query.Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type salesAggregateRow struct {
	ProductID   int64
	WarehouseID int64
	AvgQuantity decimal.Decimal
	TxnCount    int64
}

func (g *GormGateway) SalesAggregates(ctx context.Context, companyID int64, since time.Time, warehouseID *int64) ([]alerts.SalesAggregate, error) {
	var rows []salesAggregateRow
	err := g.run(ctx, func(tx *gorm.DB) error {
		query := tx.Model(&models.SalesTransaction{}).
			Select("sales_transactions.product_id, sales_transactions.warehouse_id, AVG(sales_transactions.quantity) AS avg_quantity, COUNT(*) AS txn_count").
			Joins("JOIN warehouses ON warehouses.id = sales_transactions.warehouse_id").
			Where("warehouses.company_id = ?", companyID).
			Where("sales_transactions.sale_date >= ?", since)
		if warehouseID != nil {
			query = query.Where("sales_transactions.warehouse_id = ?", *warehouseID)
		}
		return query.
			Group("sales_transactions.product_id, sales_transactions.warehouse_id").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	aggregates := make([]alerts.SalesAggregate, len(rows))
	for i, r := range rows {
		aggregates[i] = alerts.SalesAggregate{
			ProductID:   r.ProductID,
			WarehouseID: r.WarehouseID,
			AvgQuantity: r.AvgQuantity,
			TxnCount:    r.TxnCount,
		}
	}
	return aggregates, nil
}

type primarySupplierRow struct {
	ProductID    int64
	SupplierID   int64
	Name         string
	ContactEmail *string
	SupplierSKU  *string
	LeadTimeDays int32
}

func (g *GormGateway) PrimarySuppliers(ctx context.Context, productIDs []int64) (map[int64]alerts.SupplierRecord, error) {
	suppliers := make(map[int64]alerts.SupplierRecord, len(productIDs))
	if len(productIDs) == 0 {
		return suppliers, nil
	}

	var rows []primarySupplierRow
	err := g.run(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.ProductSupplier{}).
			Select("product_suppliers.product_id, suppliers.id AS supplier_id, suppliers.name, suppliers.contact_email, product_suppliers.supplier_sku, product_suppliers.lead_time_days").
			Joins("JOIN suppliers ON suppliers.id = product_suppliers.supplier_id").
			Where("product_suppliers.product_id IN ? AND product_suppliers.is_primary = ?", productIDs, true).
			Order("product_suppliers.id ASC").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	// The schema does not enforce a single primary link per product; the
	// lowest link id wins.
	for _, r := range rows {
		if _, ok := suppliers[r.ProductID]; ok {
			continue
		}
		suppliers[r.ProductID] = alerts.SupplierRecord{
			SupplierID:   r.SupplierID,
			Name:         r.Name,
			ContactEmail: r.ContactEmail,
			SupplierSKU:  r.SupplierSKU,
			LeadTimeDays: r.LeadTimeDays,
		}
	}
	return suppliers, nil
}
