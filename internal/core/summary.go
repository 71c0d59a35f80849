package core

// CategoryAmount represents an amount aggregated by category name.
// Slice order is the display order and part of the contract.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// CategoryShare is the percentage of total income spent on a category.
type CategoryShare struct {
	Name    string
	Percent float64
}

// Summary holds the three headline figures for a transaction set.
type Summary struct {
	TotalIncome   Money
	TotalExpenses Money
	Balance       Money
}

// TrendSeries is the per-calendar-date history of income and expense
// totals. Dates are ascending; Income and Expenses are parallel to Dates,
// with zero filled in for dates where one side has no transactions.
type TrendSeries struct {
	Dates    []string
	Income   []Money
	Expenses []Money
}
