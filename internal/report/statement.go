// Package report presents computed statements as markdown, JSON and XLSX.
package report

import (
	"slices"

	"github.com/cleared-dev/tally/internal/money"
	"github.com/cleared-dev/tally/internal/profitloss"
)

// Options control how figures are formatted.
type Options struct {
	BusinessName    string
	Currency        string
	PercentDecimals int
}

// DefaultOptions formats in INR with one decimal place for percentages.
func DefaultOptions() Options {
	return Options{Currency: money.DefaultCurrency, PercentDecimals: money.DefaultPercentDecimals}
}

// Statement is an aggregate together with everything derived from it.
type Statement struct {
	profitloss.Aggregate
	Status   profitloss.ProfitLossStatus `json:"status"`
	Insights []string                    `json:"insights"`
	Ratios   profitloss.FinancialRatios  `json:"ratios"`
}

// NewStatement derives status, insights and ratios for a.
func NewStatement(a profitloss.Aggregate) Statement {
	insights := slices.Collect(profitloss.Insights(a))
	if insights == nil {
		insights = []string{}
	}
	return Statement{
		Aggregate: a,
		Status:    profitloss.StatusOf(a.Summary.NetProfit),
		Insights:  insights,
		Ratios:    profitloss.Ratios(a),
	}
}
