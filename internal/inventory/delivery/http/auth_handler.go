package http

import (
	"net/http"
	"time"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/internal/inventory/session"
	"github.com/tair/cafe-inventory/internal/inventory/usecase/command"
)

type sessionResponse struct {
	User      domain.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sess session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) respondSession(w http.ResponseWriter, status int, sess session.Session, user domain.User) {
	h.setSessionCookie(w, sess)
	respondJSON(w, status, sessionResponse{
		User:      user,
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
	})
}

// Login handles POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	sess, user, err := h.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	// The session is already open; a failed entry is logged by the recorder.
	_ = h.staff.RecordLogin(r.Context(), user)
	h.respondSession(w, http.StatusOK, sess, user)
}

// Register handles POST /api/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	user, err := h.staff.Register(r.Context(), command.RegisterCommand{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}

	sess, err := h.sessions.Start(r.Context(), user)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	h.respondSession(w, http.StatusCreated, sess, user)
}

// Logout handles POST /api/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_ = h.staff.RecordLogout(r.Context(), IdentityFrom(r.Context()))
	if err := h.sessions.Logout(r.Context(), sessionToken(r)); err != nil {
		respondErr(w, r, err)
		return
	}
	h.clearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// CurrentUser handles GET /api/user
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(IdentityFrom(r.Context()).UserID)
	respondOne(w, r, http.StatusOK, user, err)
}
