package http

import (
	"log/slog"
	"net/http"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/core"
)

type profilePage struct {
	Username string
	Since    string
	Error    string
	Notice   string
}

func (s *Server) renderProfile(w http.ResponseWriter, r *http.Request, status int, user core.User, errMsg, notice string) {
	s.renderStatus(w, r, status, "profile.html", profilePage{
		Username: user.Username,
		Since:    user.CreatedAt.Format("January 2, 2006"),
		Error:    errMsg,
		Notice:   notice,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	s.renderProfile(w, r, http.StatusOK, user, "", "")
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	current := r.Form.Get("current_password")
	newPassword := r.Form.Get("new_password")
	confirm := r.Form.Get("confirm_password")

	fail := func(msg string) {
		s.renderProfile(w, r, http.StatusUnprocessableEntity, user, msg, "")
	}

	if !auth.CheckPassword(current, user.PasswordHash) {
		fail("Current password is incorrect.")
		return
	}
	if len(newPassword) < auth.MinPasswordLength {
		fail("New password must be at least 8 characters long.")
		return
	}
	if newPassword != confirm {
		fail("Passwords do not match.")
		return
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		slog.ErrorContext(r.Context(), "Password hash error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := s.repo.UpdateUserPassword(r.Context(), user.ID, hash); err != nil {
		slog.ErrorContext(r.Context(), "Password update error", "error", err, "user_id", user.ID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Every existing session dies with the old password; issue a fresh
	// one so the current browser stays logged in.
	s.dropUserSessions(w, r, user.ID)
	if err := s.startSession(w, r, user); err != nil {
		slog.ErrorContext(r.Context(), "Session start error", "error", err, "user_id", user.ID)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	slog.InfoContext(r.Context(), "Password changed", "user_id", user.ID)
	s.renderProfile(w, r, http.StatusOK, user, "", "Password updated.")
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	s.dropUserSessions(w, r, user.ID)
	s.endSession(w, r)

	if err := s.repo.DeleteUser(r.Context(), user.ID); err != nil {
		slog.ErrorContext(r.Context(), "Account delete error", "error", err, "user_id", user.ID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "Account deleted", "user_id", user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
