// Package renderer turns report structures into markdown documents.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/depot"
	md "github.com/nao1215/markdown"
)

// DailyMarkdown renders a daily report to a markdown string.
func DailyMarkdown(r *depot.DailyReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Depot on %s", r.Date))

	summary := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Total Value"),
			md.Bold(r.TotalValue.String()),
		},
	}
	if delta, change, ok := r.DayDelta(); ok {
		summary.Rows = append(summary.Rows, []string{
			"Since Prev. Close",
			fmt.Sprintf("%s (%s)", delta.SignedString(), change.SignedString()),
		})
	}
	doc.Table(summary)

	if len(r.Rows) > 0 {
		doc.H2("Positions")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Ticker", "Quantity", "Price", "Value", "Weight", "Day"},
		}
		for _, row := range r.Rows {
			if !row.Priced {
				table.Rows = append(table.Rows, []string{
					label(row), row.Quantity.String(), "n/a", "n/a", "n/a", "n/a",
				})
				continue
			}
			table.Rows = append(table.Rows, []string{
				label(row),
				row.Quantity.String(),
				row.Price.String(),
				row.Value.String(),
				row.Weight.String(),
				row.DayChange.SignedString(),
			})
		}
		doc.Table(table)
	}

	if r.BestChange != nil {
		doc.PlainText(fmt.Sprintf("Best performer: %s %s (%s)",
			label(*r.BestChange),
			r.BestChange.DayChange.SignedString(),
			r.BestChange.DayGain.SignedString(),
		))
	}

	if len(r.Balances) > 0 {
		doc.H2("Stakeholders")
		doc.Table(balancesTable(r.Balances))
	}

	return doc.String()
}

// BalancesMarkdown renders the stakeholder balances alone.
func BalancesMarkdown(r *depot.DailyReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Stakeholders on %s", r.Date))
	doc.PlainText(fmt.Sprintf("Total value: %s", md.Bold(r.TotalValue.String())))
	doc.Table(balancesTable(r.Balances))

	return doc.String()
}

func balancesTable(balances []depot.StakeholderBalance) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Stakeholder", "Share", "Value"},
	}
	for _, b := range balances {
		table.Rows = append(table.Rows, []string{
			b.Name,
			b.Percentage.String(),
			b.Value.String(),
		})
	}
	return table
}

func label(row depot.PositionRow) string {
	if row.Name != "" {
		return row.Name
	}
	return row.Ticker
}
