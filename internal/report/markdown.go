package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/money"
	"github.com/cleared-dev/tally/internal/profitloss"
	"github.com/cleared-dev/tally/internal/trading"
)

const wordWrap = 100

func (o Options) currency(d decimal.Decimal) string {
	return money.FormatCurrency(d, o.Currency)
}

func (o Options) percent(d decimal.Decimal) string {
	return money.FormatPercentage(d, o.PercentDecimals)
}

func (o Options) title(heading string) string {
	if o.BusinessName == "" {
		return "# " + heading + "\n\n"
	}
	return fmt.Sprintf("# %s: %s\n\n", heading, o.BusinessName)
}

// StatementMarkdown renders s as a markdown profit & loss statement.
func StatementMarkdown(s Statement, opts Options) string {
	var b strings.Builder
	b.WriteString(opts.title("Profit & Loss"))
	fmt.Fprintf(&b, "**%s** of %s\n\n", s.Status.Label, opts.currency(s.Summary.NetProfit.Abs()))

	writeSection(&b, "Income", s.Income, profitloss.IncomeCategories, opts)
	writeSection(&b, "Expenses", s.Expenses, profitloss.ExpenseCategories, opts)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Figure | Value |\n|---|---:|\n")
	grossProfit, grossLoss := trading.SplitGross(s.Summary.GrossProfit)
	fmt.Fprintf(&b, "| Gross profit | %s |\n", opts.currency(grossProfit))
	fmt.Fprintf(&b, "| Gross loss | %s |\n", opts.currency(grossLoss))
	fmt.Fprintf(&b, "| Net profit | %s |\n", opts.currency(s.Summary.NetProfit))
	fmt.Fprintf(&b, "| Profit margin | %s |\n", opts.percent(s.Summary.ProfitMargin))
	fmt.Fprintf(&b, "| Net margin | %s |\n", opts.percent(s.Summary.NetMargin))
	fmt.Fprintf(&b, "| Expense ratio | %s |\n", opts.percent(s.Summary.ExpenseRatio))
	fmt.Fprintf(&b, "| Transactions | %d |\n", s.QuickStats.TotalTransactions)
	fmt.Fprintf(&b, "| Average sale | %s |\n", opts.currency(s.QuickStats.AverageSale))
	fmt.Fprintf(&b, "| Average expense | %s |\n\n", opts.currency(s.QuickStats.AverageExpense))

	b.WriteString("## Ratios\n\n")
	b.WriteString("| Ratio | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Operating margin | %s |\n", opts.percent(s.Ratios.OperatingMargin))
	fmt.Fprintf(&b, "| Return on revenue | %s |\n", opts.percent(s.Ratios.ReturnOnRevenue))
	fmt.Fprintf(&b, "| Expense to income | %s |\n\n", opts.percent(s.Ratios.ExpenseToIncomeRatio))

	if len(s.Insights) > 0 {
		b.WriteString("## Insights\n\n")
		for _, line := range s.Insights {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeSection(b *strings.Builder, heading string, sec profitloss.Section, order []profitloss.Category, opts Options) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	b.WriteString("| Category | Count | Amount |\n|---|---:|---:|\n")
	for _, c := range order {
		item := sec.Breakdown[c]
		fmt.Fprintf(b, "| %s | %d | %s |\n", item.Label, item.Count, opts.currency(item.Amount))
	}
	fmt.Fprintf(b, "| **Total** | | **%s** |\n\n", opts.currency(sec.Total))
}

// ReconciliationMarkdown renders r as a two-column trading account.
func ReconciliationMarkdown(r trading.Reconciliation, opts Options) string {
	var b strings.Builder
	b.WriteString(opts.title("Trading Account"))

	if r.Balanced {
		b.WriteString("**Balanced**\n\n")
	} else {
		fmt.Fprintf(&b, "**Not balanced**: sides differ by %s\n\n", opts.currency(r.Discrepancy))
	}

	b.WriteString("| Debit | Amount | Credit | Amount |\n|---|---:|---|---:|\n")
	fmt.Fprintf(&b, "| Opening stock | %s | Sales | %s |\n", opts.currency(r.OpeningStock), opts.currency(r.SalesTotal))
	fmt.Fprintf(&b, "| Purchases | %s | Closing stock | %s |\n", opts.currency(r.Purchases), opts.currency(r.ClosingStock))
	fmt.Fprintf(&b, "| Gross profit | %s | Gross loss | %s |\n", opts.currency(r.GrossProfit), opts.currency(r.GrossLoss))
	fmt.Fprintf(&b, "| **Total** | **%s** | **Total** | **%s** |\n\n", opts.currency(r.LHSTotal), opts.currency(r.RHSTotal))

	if r.SalesSource != "" {
		fmt.Fprintf(&b, "Sales taken from `%s`.\n\n", r.SalesSource)
	}

	b.WriteString("## Sales split\n\n")
	fmt.Fprintf(&b, "- Cash: %s\n", opts.currency(r.SalesSplit.Cash))
	fmt.Fprintf(&b, "- Credit: %s\n", opts.currency(r.SalesSplit.Credit))
	fmt.Fprintf(&b, "- Sales recorded: %d\n\n", r.SalesSplit.Count)

	if r.HasPaymentMethodDetails {
		pm := r.PaymentMethods
		b.WriteString("## Payment methods\n\n")
		fmt.Fprintf(&b, "- Cash: %s\n", opts.currency(pm.Cash))
		fmt.Fprintf(&b, "- Credit: %s\n", opts.currency(pm.Credit))
		fmt.Fprintf(&b, "- UPI: %s\n", opts.currency(pm.UPI))
		fmt.Fprintf(&b, "- Bank transfer: %s\n\n", opts.currency(pm.BankTransfer))
	}
	return b.String()
}

// GrowthMarkdown renders g. A nil report means there was no previous period.
func GrowthMarkdown(g *profitloss.GrowthReport, opts Options) string {
	var b strings.Builder
	b.WriteString(opts.title("Growth"))
	if g == nil {
		b.WriteString("No previous period to compare against.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "- Net profit growth: %s\n", opts.percent(g.NetProfitGrowth))
	fmt.Fprintf(&b, "- Income growth: %s\n", opts.percent(g.IncomeGrowth))
	return b.String()
}

// Render returns md unchanged, or styled for a terminal when pretty is set.
func Render(md string, pretty bool) (string, error) {
	if !pretty {
		return md, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
