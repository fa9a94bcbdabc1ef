package httphandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

type sessionStore interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Register(ctx context.Context, name, email, password string) (domain.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, p domain.ProfileUpdate) (domain.User, error)
	Current() (domain.User, bool)
	State() domain.SessionState
}

// GET v1/session (200 OK)
// DELETE v1/session (204 No content)
// POST v1/session/login JSON {"email", "password"} (200 OK, 422)
// POST v1/session/register JSON {"name", "email", "password", "confirmPassword", "terms"} (201 Created, 422)
// PATCH v1/session/profile JSON (200 OK, 401 Unauthorized, 422)

type SessionHandler struct {
	session sessionStore
}

func RegisterSession(mux *http.ServeMux, s sessionStore) {
	h := SessionHandler{s}
	mux.HandleFunc("GET /v1/session", h.GetSession)
	mux.HandleFunc("DELETE /v1/session", h.DeleteSession)
	mux.HandleFunc("POST /v1/session/login", h.PostLogin)
	mux.HandleFunc("POST /v1/session/register", h.PostRegister)
	mux.HandleFunc("PATCH /v1/session/profile", h.PatchProfile)
}

func (h SessionHandler) view() Session {
	s := Session{State: h.session.State().String()}
	if u, ok := h.session.Current(); ok {
		s.User = &u
	}
	return s
}

func (h SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.GetSession"
	writeJSON(w, slog.With("op", op), http.StatusOK, h.view())
}

func (h SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.DeleteSession"
	log := slog.With("op", op)

	if err := h.session.Logout(r.Context()); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SessionHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PostLogin"
	log := slog.With("op", op)

	var form service.LoginForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeBadJSON(w, log, err)
		return
	}
	if err := service.ValidateForm(form); err != nil {
		writeError(w, log, err)
		return
	}

	if _, err := h.session.Login(r.Context(), form.Email, form.Password); err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, h.view())
}

func (h SessionHandler) PostRegister(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PostRegister"
	log := slog.With("op", op)

	var form service.RegisterForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeBadJSON(w, log, err)
		return
	}
	if err := service.ValidateForm(form); err != nil {
		writeError(w, log, err)
		return
	}

	_, err := h.session.Register(r.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, h.view())
}

func (h SessionHandler) PatchProfile(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PatchProfile"
	log := slog.With("op", op)

	var form service.ProfileForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeBadJSON(w, log, err)
		return
	}
	if err := service.ValidateForm(form); err != nil {
		writeError(w, log, err)
		return
	}

	if _, err := h.session.UpdateProfile(r.Context(), form.Update()); err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, h.view())
}
