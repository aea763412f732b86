package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/example/transaction-analyzer/pkg/transaction"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// money formats d as $1,234.56 with a leading minus for outflows
func money(d decimal.Decimal) string {
	s := printer.Sprintf("$%.2f", d.Abs().Round(2).InexactFloat64())
	if d.Round(2).IsNegative() {
		return "-" + s
	}
	return s
}

func count(n int) string {
	return printer.Sprintf("%d", n)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderRows(w io.Writer, txs []transaction.Transaction) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tCATEGORY\tACCOUNT\tTYPE\tAMOUNT")
	for _, t := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Date.Format("Jan 2, 2006"), t.Description, t.Category, t.Account, t.Type, money(t.Amount))
	}
	return tw.Flush()
}

func renderMetrics(w io.Writer, m transaction.Metrics) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Total Transactions\t%s\n", count(m.Count))
	fmt.Fprintf(tw, "Total Income\t%s\n", money(m.Income))
	fmt.Fprintf(tw, "Total Expenses\t%s\n", money(m.Expense))
	fmt.Fprintf(tw, "Average Transaction\t%s\n", money(m.AverageAbs))
	if m.TopCategory != nil {
		fmt.Fprintf(tw, "Top Category\t%s (%s)\n", m.TopCategory.Category, money(m.TopCategory.Amount))
	} else {
		fmt.Fprintln(tw, "Top Category\tN/A")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(m.ByCategory) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tSPENT")
	for _, c := range m.ByCategory {
		fmt.Fprintf(tw, "%s\t%s\n", c.Category, money(c.Amount))
	}
	return tw.Flush()
}

func renderInsights(w io.Writer, in transaction.Insights) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "WEEKDAY\tSPENT")
	for _, d := range in.ByWeekday {
		fmt.Fprintf(tw, "%s\t%s\n", d.Weekday.String()[:3], money(d.Amount))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TOP CATEGORY\tSPENT")
	for _, c := range in.TopCategories {
		fmt.Fprintf(tw, "%s\t%s\n", c.Category, money(c.Amount))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TOP MERCHANT\tTRANSACTIONS")
	for _, m := range in.TopMerchants {
		fmt.Fprintf(tw, "%s\t%d\n", m.Merchant, m.Count)
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Recurring\t%d transactions, %s spent\n", in.Recurring.Count, money(in.Recurring.Expense))
	return tw.Flush()
}
