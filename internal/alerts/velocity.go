package alerts

import "github.com/shopspring/decimal"

// DefaultLookbackDays bounds "recent" sales activity unless the caller
// overrides the window.
const DefaultLookbackDays = 30

type PairKey struct {
	ProductID   int64
	WarehouseID int64
}

// Velocity is the mean units sold per transaction for a pair inside the
// lookback window. The mean is per sales event, not per elapsed day.
type Velocity struct {
	AvgQuantity decimal.Decimal
	TxnCount    int64
}

type VelocityMap map[PairKey]Velocity

// BuildVelocityMap indexes windowed sales aggregates by pair. A pair with
// no qualifying transactions has no entry at all; absence means "no recent
// sales activity", which is different from a zero average.
func BuildVelocityMap(rows []SalesAggregate) VelocityMap {
	m := make(VelocityMap, len(rows))
	for _, r := range rows {
		if r.TxnCount <= 0 {
			continue
		}
		m[PairKey{ProductID: r.ProductID, WarehouseID: r.WarehouseID}] = Velocity{
			AvgQuantity: r.AvgQuantity,
			TxnCount:    r.TxnCount,
		}
	}
	return m
}

// DaysUntilStockout returns floor(stock / avg), or nil when the average is
// zero or negative. Division by zero can never occur.
func DaysUntilStockout(stock int64, avg decimal.Decimal) *int64 {
	if !avg.IsPositive() {
		return nil
	}
	days := decimal.NewFromInt(stock).Div(avg).Floor().IntPart()
	return &days
}
