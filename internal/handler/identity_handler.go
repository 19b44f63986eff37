package handler

import (
	"net/http"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/service"
)

type signUpBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signInBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type reviewUserBody struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type setRoleBody struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// SignUp registers a new account awaiting review.
func (h *HTTPHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body signUpBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, h.log, err)
		return
	}

	u, err := h.identity.SignUp(r.Context(), &service.SignUpRequest{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// SignIn exchanges credentials for a bearer token.
func (h *HTTPHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body signInBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, h.log, err)
		return
	}

	res, err := h.identity.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SignOut revokes the caller's session.
func (h *HTTPHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.identity.SignOut(r.Context(), uc.SessionID); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the caller's session and profile.
func (h *HTTPHandler) Session(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	view, err := h.identity.CurrentSession(r.Context(), uc.SessionID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ListUsers lists profiles, optionally by role and account status.
func (h *HTTPHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	users, err := h.identity.ListUsers(r.Context(), repository.UserFilter{
		Role:           optionalQuery(r, "role"),
		ApprovalStatus: optionalQuery(r, "approval_status"),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// ReviewUser approves or rejects a pending account.
func (h *HTTPHandler) ReviewUser(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	var body reviewUserBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, h.log, err)
		return
	}

	u, err := h.identity.ReviewUser(r.Context(), uc.UserID, body.ID, body.Status)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// SetUserRole grants or removes the admin role.
func (h *HTTPHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	var body setRoleBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, h.log, err)
		return
	}

	u, err := h.identity.SetRole(r.Context(), uc.UserID, body.ID, body.Role)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
