package profitloss

import "github.com/shopspring/decimal"

// Status classifies a period's bottom line.
type Status string

const (
	StatusProfit    Status = "profit"
	StatusLoss      Status = "loss"
	StatusBreakEven Status = "break-even"
)

// Tone is a presentation hint; renderers pick colors and icons from it.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// ProfitLossStatus is the classification plus its display label.
type ProfitLossStatus struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Tone   Tone   `json:"tone"`
}

// StatusOf classifies netProfit as profit, loss or break-even.
func StatusOf(netProfit decimal.Decimal) ProfitLossStatus {
	switch netProfit.Sign() {
	case 1:
		return ProfitLossStatus{Status: StatusProfit, Label: "Profit", Tone: TonePositive}
	case -1:
		return ProfitLossStatus{Status: StatusLoss, Label: "Loss", Tone: ToneNegative}
	default:
		return ProfitLossStatus{Status: StatusBreakEven, Label: "Break Even", Tone: ToneNeutral}
	}
}
