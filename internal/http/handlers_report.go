package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/report"
)

// handleReport builds the PDF into a temp file, streams it as an
// attachment, and removes the file afterwards.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	txns, err := s.repo.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err, "user_id", user.ID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	txns = core.NormalizeDates(txns)

	tmp, err := os.CreateTemp("", "budgetbuddy-report-*.pdf")
	if err != nil {
		slog.ErrorContext(r.Context(), "Temp file error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := report.Build(path, txns, core.Summarize(txns)); err != nil {
		slog.ErrorContext(r.Context(), "Report build error", "error", err, "user_id", user.ID)
		http.Error(w, "could not generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", user.Username+"_financial_report.pdf"))
	http.ServeFile(w, r, path)
}
