package core

import (
	"fmt"
	"sort"
)

// DefaultAlertThreshold is the spending ratio at which a category starts
// warning before its limit is reached.
const DefaultAlertThreshold = 0.8

// ComputeAlerts returns one message per budgeted category whose spending
// ratio crosses the threshold. Categories with a non-positive limit are
// skipped entirely: a zero limit is treated as unbounded rather than as
// instantly exceeded. Messages come out in category-name order so repeated
// runs over the same data render identically.
func ComputeAlerts(budgets map[string]Money, spent map[string]Money, threshold float64) []string {
	if threshold <= 0 {
		threshold = DefaultAlertThreshold
	}

	cats := make([]string, 0, len(budgets))
	for cat := range budgets {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	var alerts []string
	for _, cat := range cats {
		limit := budgets[cat]
		if limit.Cents <= 0 {
			continue
		}
		spentAmt := spent[cat]
		ratio := float64(spentAmt.Cents) / float64(limit.Cents)

		switch {
		case ratio >= 1.0:
			alerts = append(alerts, fmt.Sprintf("OVER BUDGET: %s spent %s / limit %s", cat, spentAmt, limit))
		case ratio >= threshold:
			alerts = append(alerts, fmt.Sprintf("WARNING: %s spent %s / limit %s (%.0f%%)", cat, spentAmt, limit, ratio*100))
		}
	}
	return alerts
}
