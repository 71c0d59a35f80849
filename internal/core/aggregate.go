package core

import (
	"math"
	"sort"
)

// UncategorizedLabel is the category assigned to expense rows whose
// category field is empty.
const UncategorizedLabel = "Uncategorized"

// Summarize sums amounts by type. An empty transaction set yields zero
// totals, never an error. Balance is income minus expenses, exactly.
func Summarize(txns []Transaction) Summary {
	var s Summary
	for _, tx := range txns {
		switch tx.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case Expenses:
			s.TotalExpenses = s.TotalExpenses.Add(tx.Amount)
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// CategoryTotals reduces a transaction list to per-category expense
// sums, sorted by descending amount. Ties keep first-encounter order,
// which is the intended display ordering. Income rows are ignored and
// an empty category maps to UncategorizedLabel.
func CategoryTotals(txns []Transaction) []CategoryAmount {
	sums := make(map[string]int64)
	var order []string
	for _, tx := range txns {
		if tx.Type != Expenses {
			continue
		}
		name := tx.Category
		if name == "" {
			name = UncategorizedLabel
		}
		if _, seen := sums[name]; !seen {
			order = append(order, name)
		}
		sums[name] += tx.Amount.Cents
	}

	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: sums[name]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// CategoryPercentages computes, for each expense category, the share of
// total income spent on it. A zero income yields an empty result rather
// than a division by zero.
func CategoryPercentages(txns []Transaction, totalIncome Money) []CategoryShare {
	if totalIncome.Cents <= 0 {
		return nil
	}
	totals := CategoryTotals(txns)
	out := make([]CategoryShare, 0, len(totals))
	for _, ca := range totals {
		out = append(out, CategoryShare{
			Name:    ca.Name,
			Percent: float64(ca.Amount.Cents) / float64(totalIncome.Cents) * 100,
		})
	}
	return out
}

// Trend groups transactions by calendar date, accumulating separate
// income and expense sums per date. Dates come back ascending; a date
// with only one side present gets zero for the other.
func Trend(txns []Transaction) TrendSeries {
	type daily struct {
		income   int64
		expenses int64
	}
	byDate := make(map[string]*daily)
	for _, tx := range txns {
		date := DateOnly(tx.Date)
		d, ok := byDate[date]
		if !ok {
			d = &daily{}
			byDate[date] = d
		}
		switch tx.Type {
		case Income:
			d.income += tx.Amount.Cents
		case Expenses:
			d.expenses += tx.Amount.Cents
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := TrendSeries{
		Dates:    dates,
		Income:   make([]Money, len(dates)),
		Expenses: make([]Money, len(dates)),
	}
	for i, date := range dates {
		series.Income[i] = Money{Cents: byDate[date].income}
		series.Expenses[i] = Money{Cents: byDate[date].expenses}
	}
	return series
}

// HealthScore derives a 0-100 score from the expense-to-income ratio:
// 100 - round(100 * expenses/income), floored at 0. The second return
// value is false when there is no data at all (both totals zero); a
// zero income with nonzero expenses scores 0 outright.
func HealthScore(totalIncome, totalExpenses Money) (int, bool) {
	if totalIncome.Cents == 0 && totalExpenses.Cents == 0 {
		return 0, false
	}
	if totalIncome.Cents == 0 {
		return 0, true
	}
	ratio := float64(totalExpenses.Cents) / float64(totalIncome.Cents)
	score := 100 - int(math.Round(ratio*100))
	if score < 0 {
		score = 0
	}
	return score, true
}
