package http

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/internal/inventory/usecase/command"
)

// ListUsers handles GET /api/users. Archived accounts are hidden unless
// includeArchived=true; isActive=false lists only the archived ones.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hidden := func(u domain.User) bool { return !u.IsActive }
	if raw := q.Get("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respondErr(w, r, fmt.Errorf("%w: isActive must be true or false", domain.ErrValidation))
			return
		}
		hidden = func(u domain.User) bool { return u.IsActive != active }
	} else if archived, _ := strconv.ParseBool(q.Get("includeArchived")); archived {
		hidden = nil
	}

	users, err := h.store.ListUsers(filterFrom(r, "role", "position"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if hidden != nil {
		users = slices.DeleteFunc(users, hidden)
	}
	respondList(w, r, users, nil)
}

// GetUser handles GET /api/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	user, err := h.store.GetUser(id)
	respondOne(w, r, http.StatusOK, user, err)
}

// CreateUser handles POST /api/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		domain.User
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	user, err := h.staff.Create(r.Context(), command.CreateStaffCommand{
		Actor:    IdentityFrom(r.Context()),
		User:     req.User,
		Password: req.Password,
	})
	respondOne(w, r, http.StatusCreated, user, err)
}

// UpdateUser handles PUT/PATCH /api/users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var req struct {
		domain.UserPatch
		Password *string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	user, err := h.staff.Update(r.Context(), command.UpdateStaffCommand{
		Actor:    IdentityFrom(r.Context()),
		ID:       id,
		Patch:    req.UserPatch,
		Password: req.Password,
	})
	respondOne(w, r, http.StatusOK, user, err)
}

// ArchiveUser handles POST /api/users/{id}/archive
func (h *Handler) ArchiveUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, false)
}

// RestoreUser handles POST /api/users/{id}/restore
func (h *Handler) RestoreUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, true)
}

func (h *Handler) setUserActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	user, err := h.staff.SetActive(r.Context(), command.SetStaffActiveCommand{
		Actor:  IdentityFrom(r.Context()),
		ID:     id,
		Active: active,
	})
	respondOne(w, r, http.StatusOK, user, err)
}
