package handler

import (
	"context"
	"net/http"

	"github.com/Gi2009/cod-back/internal/logger"
	"github.com/Gi2009/cod-back/internal/model"
	"github.com/Gi2009/cod-back/internal/service"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.Session, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	responder
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		responder:   newResponder(logger),
	}
}

// Register creates an account and answers 201 with a token and the user.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeBody(w, r, &req, service.MsgAllDataRequired) {
		return
	}

	h.logger.Debug("Auth handler: processing registration request",
		"email", req.Email)

	session, err := h.authService.Register(r.Context(), model.RegisterParams{
		Email:    string(req.Email),
		Username: string(req.Username),
		Password: string(req.Password),
		Phone:    string(req.Phone),
		CPF:      string(req.CPF),
	})
	if err != nil {
		h.handleError(w, "Auth handler: registration", err, MsgInternal)
		return
	}

	h.logger.Info("Auth handler: registration completed",
		"user_id", session.User.ID)

	h.JSON(w, http.StatusCreated, toAuthResponse(session))
}

// Login checks credentials and answers 200 with a token and the user.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeBody(w, r, &req, service.MsgLoginRequired) {
		return
	}

	session, err := h.authService.Login(r.Context(), string(req.Email), string(req.Password))
	if err != nil {
		h.handleError(w, "Auth handler: login", err, MsgInternal)
		return
	}

	h.logger.Info("Auth handler: login completed",
		"user_id", session.User.ID)

	h.JSON(w, http.StatusOK, toAuthResponse(session))
}
