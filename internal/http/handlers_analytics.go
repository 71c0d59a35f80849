package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/insights"
)

type analyticsCategory struct {
	Name   string
	Amount string
}

type analyticsPage struct {
	Username       string
	TotalIncome    string
	TotalExpenses  string
	Balance        string
	AverageExpense string
	HealthScore    string
	Categories     []analyticsCategory
	AIEnabled      bool
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	txns, err := s.repo.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err, "user_id", user.ID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	txns = core.NormalizeDates(txns)
	summary := core.Summarize(txns)

	var expenseCount int64
	for _, tx := range txns {
		if tx.Type == core.Expenses {
			expenseCount++
		}
	}
	average := core.Money{}
	if expenseCount > 0 {
		average = core.Money{Cents: summary.TotalExpenses.Cents / expenseCount}
	}

	health := "N/A"
	if score, ok := core.HealthScore(summary.TotalIncome, summary.TotalExpenses); ok {
		health = fmt.Sprintf("%d / 100", score)
	}

	page := analyticsPage{
		Username:       user.Username,
		TotalIncome:    core.FormatUSD(summary.TotalIncome),
		TotalExpenses:  core.FormatUSD(summary.TotalExpenses),
		Balance:        core.FormatUSD(summary.Balance),
		AverageExpense: core.FormatUSD(average),
		HealthScore:    health,
		AIEnabled:      s.ai != nil,
	}
	for _, ca := range core.CategoryTotals(txns) {
		page.Categories = append(page.Categories, analyticsCategory{
			Name:   ca.Name,
			Amount: core.FormatUSD(ca.Amount),
		})
	}

	s.render(w, r, "analytics.html", page)
}

// handleAISummary gathers the figures server-side and forwards them to
// the summary endpoint. One synchronous upstream call per request.
func (s *Server) handleAISummary(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	if s.ai == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "AI summary is not configured"})
		return
	}

	txns, err := s.repo.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err, "user_id", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	lastMonth, err := s.repo.LastMonthExpenses(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Last month expenses error", "error", err, "user_id", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	txns = core.NormalizeDates(txns)
	summary := core.Summarize(txns)

	text, err := s.ai.Summarize(r.Context(), insights.Figures{
		TotalIncome:       summary.TotalIncome,
		TotalExpenses:     summary.TotalExpenses,
		LastMonthExpenses: lastMonth,
		Categories:        core.CategoryTotals(txns),
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "AI summary error", "error", err, "user_id", user.ID)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "summary unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": text})
}
