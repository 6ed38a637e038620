package profitloss

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/money"
)

// GrowthReport compares two periods, in percent.
type GrowthReport struct {
	NetProfitGrowth decimal.Decimal `json:"netProfitGrowth"`
	IncomeGrowth    decimal.Decimal `json:"incomeGrowth"`
}

var (
	plusHundred  = decimal.NewFromInt(100)
	minusHundred = decimal.NewFromInt(-100)
)

// Growth returns the period-over-period change from previous to current,
// or nil when there is no previous period.
func Growth(current, previous *Aggregate) *GrowthReport {
	if previous == nil {
		return nil
	}
	if current == nil {
		current = &Aggregate{}
	}
	return &GrowthReport{
		NetProfitGrowth: change(current.Summary.NetProfit, previous.Summary.NetProfit),
		IncomeGrowth:    change(current.Income.Total, previous.Income.Total),
	}
}

// change is (cur-prev)/|prev|*100. A zero base yields +100, -100 or 0
// following the sign of cur.
func change(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		switch cur.Sign() {
		case 1:
			return plusHundred
		case -1:
			return minusHundred
		default:
			return decimal.Zero
		}
	}
	return money.Round2(cur.Sub(prev).Div(prev.Abs()).Mul(plusHundred))
}
