package http

import (
	"log/slog"
	"net/http"

	"budgetbuddy/internal/core"
)

type dashboardPage struct {
	Username      string
	TotalIncome   string
	TotalExpenses string
	Balance       string
	Recent        []transactionRow
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	txns, err := s.repo.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err, "user_id", user.ID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	txns = core.NormalizeDates(txns)
	summary := core.Summarize(txns)

	recent := txns
	if len(recent) > 5 {
		recent = recent[:5]
	}

	s.render(w, r, "dashboard.html", dashboardPage{
		Username:      user.Username,
		TotalIncome:   core.FormatUSD(summary.TotalIncome),
		TotalExpenses: core.FormatUSD(summary.TotalExpenses),
		Balance:       core.FormatUSD(summary.Balance),
		Recent:        transactionRows(recent),
	})
}

type categoryJSON struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

type trendJSON struct {
	Dates    []string  `json:"dates"`
	Income   []float64 `json:"income"`
	Expenses []float64 `json:"expenses"`
}

type dashboardData struct {
	TotalIncome   float64        `json:"total_income"`
	TotalExpenses float64        `json:"total_expenses"`
	Balance       float64        `json:"balance"`
	Categories    []categoryJSON `json:"categories"`
	Trend         trendJSON      `json:"trend"`
}

// handleDashboardData feeds the dashboard charts. Everything is computed
// fresh from the user's rows on every request.
func (s *Server) handleDashboardData(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	txns, err := s.repo.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err, "user_id", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	txns = core.NormalizeDates(txns)
	summary := core.Summarize(txns)

	shares := make(map[string]float64)
	for _, cs := range core.CategoryPercentages(txns, summary.TotalIncome) {
		shares[cs.Name] = cs.Percent
	}

	data := dashboardData{
		TotalIncome:   summary.TotalIncome.Dollars(),
		TotalExpenses: summary.TotalExpenses.Dollars(),
		Balance:       summary.Balance.Dollars(),
		Categories:    []categoryJSON{},
	}

	for _, ca := range core.CategoryTotals(txns) {
		data.Categories = append(data.Categories, categoryJSON{
			Name:    ca.Name,
			Amount:  ca.Amount.Dollars(),
			Percent: shares[ca.Name],
		})
	}

	trend := core.Trend(txns)
	data.Trend = trendJSON{
		Dates:    trend.Dates,
		Income:   make([]float64, len(trend.Income)),
		Expenses: make([]float64, len(trend.Expenses)),
	}
	if data.Trend.Dates == nil {
		data.Trend.Dates = []string{}
	}
	for i, m := range trend.Income {
		data.Trend.Income[i] = m.Dollars()
	}
	for i, m := range trend.Expenses {
		data.Trend.Expenses[i] = m.Dollars()
	}

	writeJSON(w, http.StatusOK, data)
}
