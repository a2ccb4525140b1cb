package core

// CategoryAmount is an expense total aggregated under one category label.
type CategoryAmount struct {
	Category string
	Amount   Money
}

// MonthSummary aggregates one user's transactions for a single period.
// ByCategory holds expense totals only, sorted by total descending with
// category name ascending as the tie-break.
type MonthSummary struct {
	Period     Period
	Income     Money
	Expense    Money
	Net        Money
	ByCategory []CategoryAmount
}

// SpentByCategory flattens the breakdown into a lookup map.
func (s MonthSummary) SpentByCategory() map[string]Money {
	spent := make(map[string]Money, len(s.ByCategory))
	for _, ca := range s.ByCategory {
		spent[ca.Category] = ca.Amount
	}
	return spent
}
