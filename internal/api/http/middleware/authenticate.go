package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Gi2009/cod-back/internal/api/http/response"
	"github.com/Gi2009/cod-back/internal/logger"
	"github.com/Gi2009/cod-back/internal/model"
)

const (
	MsgMissingToken = "No authentication token, access denied"
	MsgInvalidToken = "Token is not valid"
	MsgInternal     = "Internal server error"
)

// TokenService resolves user ID from bearer tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects user ID into context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	respond        *response.Writer
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokenService:   tokenService,
		contextManager: contextManager,
		respond:        response.NewWriter(logger),
		logger:         logger,
	}
}

// Handler rejects requests without a valid "Authorization: Bearer <token>" header
// with 401. A token that cannot be checked because the user store failed is
// answered with 500.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r.Header.Get("Authorization"))
		if tokenString == "" {
			m.respond.Message(w, http.StatusUnauthorized, MsgMissingToken)
			return
		}

		userID, err := m.tokenService.GetUserID(r.Context(), tokenString)
		switch {
		case err == nil && userID == uuid.Nil,
			errors.Is(err, model.ErrInvalidToken),
			errors.Is(err, model.ErrNotFound):
			m.logger.Debug("Authenticate middleware: rejected token",
				"path", r.URL.Path,
				"error", err)
			m.respond.Message(w, http.StatusUnauthorized, MsgInvalidToken)
			return
		case err != nil:
			m.logger.Error("Authenticate middleware: failed to check token",
				"path", r.URL.Path,
				"error", err.Error())
			m.respond.Message(w, http.StatusInternalServerError, MsgInternal)
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
