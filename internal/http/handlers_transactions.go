package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/storage"
)

type transactionRow struct {
	ID          int64
	Date        string
	Description string
	Category    string
	Type        string
	Amount      string
	IsExpense   bool
}

type transactionsPage struct {
	Username string
	Error    string
	Rows     []transactionRow
	Today    string
}

func transactionRows(txns []core.Transaction) []transactionRow {
	rows := make([]transactionRow, 0, len(txns))
	for _, tx := range txns {
		category := tx.Category
		if category == "" {
			category = core.UncategorizedLabel
		}
		rows = append(rows, transactionRow{
			ID:          tx.ID,
			Date:        tx.Date,
			Description: tx.Description,
			Category:    category,
			Type:        string(tx.Type),
			Amount:      core.FormatUSD(tx.Amount),
			IsExpense:   tx.Type == core.Expenses,
		})
	}
	return rows
}

func (s *Server) renderTransactions(w http.ResponseWriter, r *http.Request, status int, user core.User, errMsg string) {
	txns, err := s.repo.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err, "user_id", user.ID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.renderStatus(w, r, status, "transactions.html", transactionsPage{
		Username: user.Username,
		Error:    errMsg,
		Rows:     transactionRows(core.NormalizeDates(txns)),
		Today:    time.Now().Format("2006-01-02"),
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	s.renderTransactions(w, r, http.StatusOK, user, "")
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	fail := func(msg string) {
		s.renderTransactions(w, r, http.StatusUnprocessableEntity, user, msg)
	}

	txType, err := core.ParseTxnType(r.Form.Get("type"))
	if err != nil {
		fail("Choose income or expenses.")
		return
	}

	cents, err := core.ParseDecimalToCents(r.Form.Get("amount"))
	if err != nil {
		fail("Enter a valid amount.")
		return
	}

	date := sanitizeInput(r.Form.Get("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	tx := core.Transaction{
		UserID:      user.ID,
		Description: sanitizeInput(r.Form.Get("description")),
		Category:    sanitizeInput(r.Form.Get("category")),
		Type:        txType,
		Amount:      core.Money{Cents: cents},
		Date:        date,
	}
	if err := tx.Validate(); err != nil {
		fail("Invalid transaction: " + err.Error())
		return
	}

	if _, err := s.repo.CreateTransaction(r.Context(), tx); err != nil {
		slog.ErrorContext(r.Context(), "Transaction create error", "error", err, "user_id", user.ID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	tx, err := s.repo.GetTransaction(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && tx.UserID != user.ID) {
		// Other users' rows look like missing rows.
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction fetch error", "error", err, "id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := s.repo.DeleteTransaction(r.Context(), id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.ErrorContext(r.Context(), "Transaction delete error", "error", err, "id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
}
