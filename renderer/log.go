package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/depot"
	md "github.com/nao1215/markdown"
)

// TransactionsMarkdown renders a list of transactions to a markdown string.
func TransactionsMarkdown(transactions []depot.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transaction Log")

	if len(transactions) == 0 {
		doc.PlainText("No transactions recorded.")
		return doc.String()
	}
	var lines []string
	for _, tx := range transactions {
		lines = append(lines, Transaction(tx))
	}
	doc.OrderedList(lines...)

	return doc.String()
}

// Transaction renders a single transaction to a one-line string.
func Transaction(tx depot.Transaction) string {
	switch v := tx.(type) {
	case depot.Deposit:
		return fmt.Sprintf("%s: %s deposited %s", v.When(), v.Who(), v.Amount)
	case depot.Withdraw:
		return fmt.Sprintf("%s: %s withdrew %s", v.When(), v.Who(), v.Amount)
	default:
		return fmt.Sprintf("%s: %s %s", tx.When(), tx.Who(), tx.What())
	}
}
