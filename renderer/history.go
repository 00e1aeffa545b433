package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/depot"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders a stakeholder's share history to a markdown string.
func HistoryMarkdown(r *depot.HistoryReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History for %s", r.Stakeholder))
	doc.PlainText(fmt.Sprintf("Current share: %s, %s values.", md.Bold(r.Percentage.String()), r.Period))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Value"},
		Rows:   [][]string{},
	}
	for _, entry := range r.Entries {
		table.Rows = append(table.Rows, []string{
			entry.Date.String(),
			entry.Value.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
