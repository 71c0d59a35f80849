package http

import (
	"errors"
	"log/slog"
	"net/http"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/storage"
)

type authPage struct {
	Error    string
	Username string
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", authPage{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	username := sanitizeInput(r.Form.Get("username"))
	password := r.Form.Get("password")
	confirm := r.Form.Get("confirm_password")

	fail := func(msg string) {
		s.renderStatus(w, r, http.StatusUnprocessableEntity, "register.html", authPage{Error: msg, Username: username})
	}

	if username == "" {
		fail("Username is required.")
		return
	}
	if len(password) < auth.MinPasswordLength {
		fail("Password must be at least 8 characters long.")
		return
	}
	if password != confirm {
		fail("Passwords do not match.")
		return
	}

	if _, err := s.repo.GetUserByUsername(r.Context(), username); err == nil {
		fail("Username is already taken.")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		slog.ErrorContext(r.Context(), "Username lookup error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		slog.ErrorContext(r.Context(), "Password hash error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	user, err := s.repo.CreateUser(r.Context(), username, hash)
	if err != nil {
		slog.ErrorContext(r.Context(), "User create error", "error", err, "username", username)
		fail("Could not create the account.")
		return
	}

	if err := s.startSession(w, r, user); err != nil {
		slog.ErrorContext(r.Context(), "Session start error", "error", err, "user_id", user.ID)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	slog.InfoContext(r.Context(), "User registered", "user_id", user.ID, "username", username)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", authPage{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	username := sanitizeInput(r.Form.Get("username"))
	password := r.Form.Get("password")

	fail := func() {
		// Same message for unknown user and wrong password.
		s.renderStatus(w, r, http.StatusUnauthorized, "login.html", authPage{Error: "Invalid username or password.", Username: username})
	}

	user, err := s.repo.GetUserByUsername(r.Context(), username)
	if errors.Is(err, storage.ErrNotFound) {
		fail()
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "User lookup error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		slog.WarnContext(r.Context(), "Failed login attempt", "username", username)
		fail()
		return
	}

	if err := s.startSession(w, r, user); err != nil {
		slog.ErrorContext(r.Context(), "Session start error", "error", err, "user_id", user.ID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "User logged in", "user_id", user.ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.endSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
