package http

import (
	"log/slog"
	"net/http"
	"time"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/core"
)

const sessionCookieName = "budgetbuddy_session"

// sessionUser resolves the session cookie into a user, consulting the
// LRU cache before the database.
func (s *Server) sessionUser(r *http.Request) (core.User, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return core.User{}, false
	}

	if user, found := s.sessionCache.Get(cookie.Value); found {
		return user, true
	}

	user, err := s.repo.GetSessionUser(r.Context(), cookie.Value)
	if err != nil {
		return core.User{}, false
	}

	s.sessionCache.Set(cookie.Value, user)
	return user, true
}

// startSession issues a fresh session token for the user and sets the cookie.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, user core.User) error {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.cfg.SessionTTL)
	if err := s.repo.CreateSession(r.Context(), token, user.ID, expiresAt); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// endSession destroys the current session, if any, and clears the cookie.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := s.repo.DeleteSession(r.Context(), cookie.Value); err != nil {
			slog.ErrorContext(r.Context(), "Session delete error", "error", err)
		}
		s.sessionCache.Delete(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// dropUserSessions invalidates every session of one user, in the store
// and in the cache. Used on password change and account deletion.
func (s *Server) dropUserSessions(w http.ResponseWriter, r *http.Request, userID int64) {
	if err := s.repo.DeleteUserSessions(r.Context(), userID); err != nil {
		slog.ErrorContext(r.Context(), "Session invalidation error", "error", err, "user_id", userID)
	}
	s.sessionCache.DeleteFunc(func(u core.User) bool { return u.ID == userID })
}
