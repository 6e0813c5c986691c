package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lohnrechner/internal/auth"
	"lohnrechner/internal/transport/http/api"
	"lohnrechner/internal/transport/http/middleware"
)

const tokenTTL = 8 * time.Hour

type Handler struct {
	Secret      string
	Account     string
	AccountHash string
}

func NewHandler(secret, account, accountHash string) *Handler {
	return &Handler{Secret: secret, Account: account, AccountHash: accountHash}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

type loginRequest struct {
	Account string `json:"account"`
	Secret  string `json:"secret"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if payload.Account != h.Account || h.AccountHash == "" {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckSecret(h.AccountHash, payload.Secret); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{Account: payload.Account}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token":     token,
		"account":   payload.Account,
		"expiresIn": int(tokenTTL.Seconds()),
	}, middleware.GetRequestID(r.Context()))
}
