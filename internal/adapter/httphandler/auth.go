package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// POST v1/auth/register JSON {"username","password"}
// POST v1/auth/login    JSON {"username","password"}
// POST v1/auth/logout
// GET  v1/auth/session

type AuthHandler struct {
	auth port.Authenticator
}

func RegisterAuth(mux *http.ServeMux, auth port.Authenticator) {
	h := AuthHandler{auth}
	mux.HandleFunc("POST /v1/auth/register", h.PostRegister)
	mux.HandleFunc("POST /v1/auth/login", h.PostLogin)
	mux.HandleFunc("POST /v1/auth/logout", h.PostLogout)
	mux.HandleFunc("GET /v1/auth/session", h.GetSession)
}

// PostRegister creates the user and logs it in immediately. The
// session store itself keeps registration and login separate; the
// immediate login is this application's choice.
func (h AuthHandler) PostRegister(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostRegister"
	log := slog.With("op", op)

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	user, err := h.auth.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(w, err)
		log.Warn("failed to register", "username", creds.Username, "err", err)
		return
	}

	sess, err := h.auth.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(w, err)
		log.Error("failed to login after registration", "username", creds.Username, "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, Session{UserID: sess.UserID, Username: sess.Username})
	log.Info("user registered", "userID", user.ID)
}

func (h AuthHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostLogin"
	log := slog.With("op", op)

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	sess, err := h.auth.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(w, err)
		log.Warn("failed to login", "username", creds.Username, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, Session{UserID: sess.UserID, Username: sess.Username})
	log.Info("user logged in", "userID", sess.UserID)
}

func (h AuthHandler) PostLogout(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostLogout"
	log := slog.With("op", op)

	if err := h.auth.Logout(r.Context()); err != nil {
		writeError(w, err)
		log.Error("failed to logout", "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("logged out")
}

// GetSession responds 204 when nobody is logged in.
func (h AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.GetSession"
	log := slog.With("op", op)

	sess, err := h.auth.CurrentSession(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeError(w, err)
		log.Error("failed to read session", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, Session{UserID: sess.UserID, Username: sess.Username})
}
