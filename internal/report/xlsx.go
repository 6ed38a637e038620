package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/tally/internal/profitloss"
	"github.com/cleared-dev/tally/internal/trading"
)

const (
	statementSheet = "Statement"
	insightsSheet  = "Insights"
)

type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) line(values ...any) {
	if w.err != nil {
		return
	}
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}

func amount(d decimal.Decimal) float64 { return d.InexactFloat64() }

// WriteStatementXLSX writes s to a workbook at path with a statement sheet
// and an insights sheet.
func WriteStatementXLSX(path string, s Statement, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", statementSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	w := &sheetWriter{f: f, sheet: statementSheet}
	title := "Profit & Loss"
	if opts.BusinessName != "" {
		title += ": " + opts.BusinessName
	}
	w.line(title)
	w.line("Currency", opts.Currency)
	w.line("Status", s.Status.Label)
	w.line()

	w.line("Income", "Count", "Amount")
	for _, c := range profitloss.IncomeCategories {
		item := s.Income.Breakdown[c]
		w.line(item.Label, item.Count, amount(item.Amount))
	}
	w.line("Total income", "", amount(s.Income.Total))
	w.line()

	w.line("Expenses", "Count", "Amount")
	for _, c := range profitloss.ExpenseCategories {
		item := s.Expenses.Breakdown[c]
		w.line(item.Label, item.Count, amount(item.Amount))
	}
	w.line("Total expenses", "", amount(s.Expenses.Total))
	w.line()

	grossProfit, grossLoss := trading.SplitGross(s.Summary.GrossProfit)
	w.line("Gross profit", "", amount(grossProfit))
	w.line("Gross loss", "", amount(grossLoss))
	w.line("Net profit", "", amount(s.Summary.NetProfit))
	w.line("Profit margin %", "", amount(s.Summary.ProfitMargin))
	w.line("Net margin %", "", amount(s.Summary.NetMargin))
	w.line("Expense ratio %", "", amount(s.Summary.ExpenseRatio))
	w.line("Operating margin %", "", amount(s.Ratios.OperatingMargin))
	w.line("Return on revenue %", "", amount(s.Ratios.ReturnOnRevenue))
	w.line("Transactions", "", s.QuickStats.TotalTransactions)
	w.line("Average sale", "", amount(s.QuickStats.AverageSale))
	w.line("Average expense", "", amount(s.QuickStats.AverageExpense))
	if w.err != nil {
		return fmt.Errorf("writing statement sheet: %w", w.err)
	}

	if err := f.SetColWidth(statementSheet, "A", "A", 24); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(statementSheet, "C", "C", 16); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if _, err := f.NewSheet(insightsSheet); err != nil {
		return fmt.Errorf("adding insights sheet: %w", err)
	}
	w = &sheetWriter{f: f, sheet: insightsSheet}
	w.line("Insight")
	for _, msg := range s.Insights {
		w.line(msg)
	}
	if w.err != nil {
		return fmt.Errorf("writing insights sheet: %w", w.err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
