package processing

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/carson-networks/txreport/internal/transaction"
)

// CategoryCount is the number of transactions matching one category label.
type CategoryCount struct {
	Category string
	Count    int
}

// CategoryCounts keeps counts in the order categories were requested.
type CategoryCounts []CategoryCount

// Get returns the count for category as it was originally spelled.
func (c CategoryCounts) Get(category string) (int, bool) {
	for _, cc := range c {
		if cc.Category == category {
			return cc.Count, true
		}
	}
	return 0, false
}

// CountCategories counts, for each category, the transactions whose
// description contains it, ignoring case. A transaction may count toward
// several categories. An empty label matches nothing. A repeated label keeps its first position and the
// count of its last occurrence.
func CountCategories(txs []transaction.Transaction, categories []string) CategoryCounts {
	fold := cases.Fold()

	descriptions := make([]string, len(txs))
	for i, tx := range txs {
		descriptions[i] = fold.String(tx.Description)
	}

	out := make(CategoryCounts, 0, len(categories))
	position := make(map[string]int, len(categories))
	for _, category := range categories {
		needle := fold.String(category)
		count := 0
		for _, desc := range descriptions {
			if needle != "" && strings.Contains(desc, needle) {
				count++
			}
		}

		if i, seen := position[category]; seen {
			out[i].Count = count
			continue
		}
		position[category] = len(out)
		out = append(out, CategoryCount{Category: category, Count: count})
	}
	return out
}
