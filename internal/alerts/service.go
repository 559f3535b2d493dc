package alerts

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type SupplierInfo struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	ContactEmail *string `json:"contact_email"`
	SupplierSKU  *string `json:"supplier_sku"`
	LeadTimeDays int32   `json:"lead_time_days"`
}

type Alert struct {
	ProductID          int64           `json:"product_id"`
	ProductName        string          `json:"product_name"`
	SKU                string          `json:"sku"`
	WarehouseID        int64           `json:"warehouse_id"`
	WarehouseName      string          `json:"warehouse_name"`
	CurrentStock       int64           `json:"current_stock"`
	Threshold          int32           `json:"threshold"`
	AverageDailySales  decimal.Decimal `json:"average_daily_sales"`
	RecentTransactions int64           `json:"recent_transactions"`
	DaysUntilStockout  *int64          `json:"days_until_stockout"`
	Supplier           *SupplierInfo   `json:"supplier"`
}

type FiltersApplied struct {
	WarehouseID   *int64 `json:"warehouse_id"`
	DaysThreshold int    `json:"days_threshold"`
}

type AlertReport struct {
	Alerts         []Alert        `json:"alerts"`
	TotalAlerts    int            `json:"total_alerts"`
	CompanyID      int64          `json:"company_id"`
	CompanyName    string         `json:"company_name"`
	GeneratedAt    time.Time      `json:"generated_at"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
}

type Summary struct {
	TotalLowStockProducts int             `json:"total_low_stock_products"`
	WarehousesWithAlerts  int             `json:"warehouses_with_alerts"`
	OutOfStockCount       int             `json:"out_of_stock_count"`
	AvgCurrentStock       decimal.Decimal `json:"avg_current_stock"`
}

// Service computes low-stock alerts and their summary. It holds no mutable
// state; every call works on a fresh snapshot read through the gateway.
type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// GetLowStockAlerts lists every (product, warehouse) pair of the company
// whose current stock is at or below its effective threshold AND that has
// sold at least once inside the lookback window. Pairs without recent
// sales never alert, however understocked.
func (s *Service) GetLowStockAlerts(ctx context.Context, companyID int64, warehouseID *int64, daysThreshold int) (*AlertReport, error) {
	if companyID <= 0 {
		return nil, InvalidArgument("company_id must be a positive integer")
	}
	if daysThreshold <= 0 {
		return nil, InvalidArgument("days_threshold must be a positive integer")
	}

	company, err := s.gw.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, NotFound("company %d not found", companyID)
	}

	report := &AlertReport{
		Alerts:      make([]Alert, 0),
		CompanyID:   company.ID,
		CompanyName: company.Name,
		GeneratedAt: time.Now().UTC(),
		FiltersApplied: FiltersApplied{
			WarehouseID:   warehouseID,
			DaysThreshold: daysThreshold,
		},
	}

	warehouses, err := s.gw.ActiveWarehouses(ctx, companyID)
	if err != nil {
		return nil, err
	}
	warehouseNames := make(map[int64]string, len(warehouses))
	for _, w := range warehouses {
		warehouseNames[w.ID] = w.Name
	}

	// A filter id that is not an active warehouse of this company yields
	// an empty result, not an error.
	if warehouseID != nil {
		if _, ok := warehouseNames[*warehouseID]; !ok {
			return report, nil
		}
	}

	products, err := s.gw.ActiveProducts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	thresholds, productIndex, err := s.resolveThresholds(ctx, products)
	if err != nil {
		return nil, err
	}

	inventory, err := s.gw.InventoryLevels(ctx, companyID, warehouseID)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -daysThreshold)
	aggregates, err := s.gw.SalesAggregates(ctx, companyID, since, warehouseID)
	if err != nil {
		return nil, err
	}
	velocities := BuildVelocityMap(aggregates)

	for _, inv := range inventory {
		if warehouseID != nil && inv.WarehouseID != *warehouseID {
			continue
		}
		product, ok := productIndex[inv.ProductID]
		if !ok {
			continue // inactive or foreign product
		}
		warehouseName, ok := warehouseNames[inv.WarehouseID]
		if !ok {
			continue // inactive warehouse
		}
		threshold := thresholds[inv.ProductID]
		if inv.Quantity > int64(threshold) {
			continue
		}
		velocity, ok := velocities[PairKey{ProductID: inv.ProductID, WarehouseID: inv.WarehouseID}]
		if !ok {
			continue // no demonstrated recent demand
		}

		report.Alerts = append(report.Alerts, Alert{
			ProductID:          product.ID,
			ProductName:        product.Name,
			SKU:                product.SKU,
			WarehouseID:        inv.WarehouseID,
			WarehouseName:      warehouseName,
			CurrentStock:       inv.Quantity,
			Threshold:          threshold,
			AverageDailySales:  velocity.AvgQuantity,
			RecentTransactions: velocity.TxnCount,
			DaysUntilStockout:  DaysUntilStockout(inv.Quantity, velocity.AvgQuantity),
		})
	}

	if err := s.attachSuppliers(ctx, report.Alerts); err != nil {
		return nil, err
	}

	sort.Slice(report.Alerts, func(i, j int) bool {
		a, b := report.Alerts[i], report.Alerts[j]
		if a.CurrentStock != b.CurrentStock {
			return a.CurrentStock < b.CurrentStock
		}
		return a.ProductName < b.ProductName
	})

	report.TotalAlerts = len(report.Alerts)
	log.Debug().
		Int64("company_id", companyID).
		Int("total_alerts", report.TotalAlerts).
		Int("days_threshold", daysThreshold).
		Msg("low stock alerts computed")
	return report, nil
}

// GetLowStockSummary aggregates every threshold-breaching (product,
// warehouse) pair of the company. Unlike GetLowStockAlerts it does NOT
// require recent sales activity: a pair that has never sold still counts
// here. The two operations intentionally disagree on that rule.
func (s *Service) GetLowStockSummary(ctx context.Context, companyID int64) (*Summary, error) {
	if companyID <= 0 {
		return nil, InvalidArgument("company_id must be a positive integer")
	}

	company, err := s.gw.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, NotFound("company %d not found", companyID)
	}

	warehouses, err := s.gw.ActiveWarehouses(ctx, companyID)
	if err != nil {
		return nil, err
	}
	activeWarehouses := make(map[int64]struct{}, len(warehouses))
	for _, w := range warehouses {
		activeWarehouses[w.ID] = struct{}{}
	}

	products, err := s.gw.ActiveProducts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	thresholds, productIndex, err := s.resolveThresholds(ctx, products)
	if err != nil {
		return nil, err
	}

	inventory, err := s.gw.InventoryLevels(ctx, companyID, nil)
	if err != nil {
		return nil, err
	}

	lowStockProducts := make(map[int64]struct{})
	alertWarehouses := make(map[int64]struct{})
	outOfStock := 0
	var totalStock, rows int64

	for _, inv := range inventory {
		if _, ok := productIndex[inv.ProductID]; !ok {
			continue
		}
		if _, ok := activeWarehouses[inv.WarehouseID]; !ok {
			continue
		}
		if inv.Quantity > int64(thresholds[inv.ProductID]) {
			continue
		}

		lowStockProducts[inv.ProductID] = struct{}{}
		alertWarehouses[inv.WarehouseID] = struct{}{}
		if inv.Quantity == 0 {
			outOfStock++
		}
		totalStock += inv.Quantity
		rows++
	}

	avg := decimal.Zero
	if rows > 0 {
		avg = decimal.NewFromInt(totalStock).Div(decimal.NewFromInt(rows)).Round(2)
	}

	return &Summary{
		TotalLowStockProducts: len(lowStockProducts),
		WarehousesWithAlerts:  len(alertWarehouses),
		OutOfStockCount:       outOfStock,
		AvgCurrentStock:       avg,
	}, nil
}

// resolveThresholds computes the effective threshold per product and
// returns it together with a product index.
func (s *Service) resolveThresholds(ctx context.Context, products []ProductRecord) (map[int64]int32, map[int64]ProductRecord, error) {
	categoryIDs := make([]int32, 0)
	seen := make(map[int32]struct{})
	for _, p := range products {
		if p.CategoryID == nil {
			continue
		}
		if _, ok := seen[*p.CategoryID]; ok {
			continue
		}
		seen[*p.CategoryID] = struct{}{}
		categoryIDs = append(categoryIDs, *p.CategoryID)
	}

	categoryDefaults, err := s.gw.CategoryThresholds(ctx, categoryIDs)
	if err != nil {
		return nil, nil, err
	}

	thresholds := make(map[int64]int32, len(products))
	index := make(map[int64]ProductRecord, len(products))
	for _, p := range products {
		var categoryDefault *int32
		if p.CategoryID != nil {
			categoryDefault = categoryDefaults[*p.CategoryID]
		}
		thresholds[p.ID] = EffectiveThreshold(p.Threshold, categoryDefault)
		index[p.ID] = p
	}
	return thresholds, index, nil
}

func (s *Service) attachSuppliers(ctx context.Context, alerts []Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	productIDs := make([]int64, 0, len(alerts))
	seen := make(map[int64]struct{}, len(alerts))
	for _, a := range alerts {
		if _, ok := seen[a.ProductID]; ok {
			continue
		}
		seen[a.ProductID] = struct{}{}
		productIDs = append(productIDs, a.ProductID)
	}

	suppliers, err := s.gw.PrimarySuppliers(ctx, productIDs)
	if err != nil {
		return err
	}

	for i := range alerts {
		rec, ok := suppliers[alerts[i].ProductID]
		if !ok {
			continue // supplier stays an explicit null
		}
		alerts[i].Supplier = &SupplierInfo{
			ID:           rec.SupplierID,
			Name:         rec.Name,
			ContactEmail: rec.ContactEmail,
			SupplierSKU:  rec.SupplierSKU,
			LeadTimeDays: rec.LeadTimeDays,
		}
	}
	return nil
}
