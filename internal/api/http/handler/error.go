package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Gi2009/cod-back/internal/api/http/response"
	"github.com/Gi2009/cod-back/internal/logger"
	"github.com/Gi2009/cod-back/internal/model"
)

const (
	MsgEmailTaken         = "Email já existe"
	MsgCPFTaken           = "CPF já cadastrado"
	MsgInvalidCredentials = "Invalid credentials"
	MsgActivityNotFound   = "Activity not found"
	MsgUnauthorized       = "Unauthorized"
	MsgInternal           = "Internal server error"
	MsgServer             = "Server error"
	MsgPayloadTooLarge    = "Payload too large"
	MsgActivityDeleted    = "Activity deleted successfully"
)

// responder writes bodies through a response.Writer and logs with the
// handler's logger. Handlers embed it.
type responder struct {
	*response.Writer
	logger *logger.Logger
}

func newResponder(logger *logger.Logger) responder {
	return responder{Writer: response.NewWriter(logger), logger: logger}
}

// handleError maps domain errors to status codes. Anything unrecognised is
// logged and answered with 500 and fallback.
func (rs responder) handleError(w http.ResponseWriter, op string, err error, fallback string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		rs.Message(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, model.ErrEmailTaken):
		rs.Message(w, http.StatusBadRequest, MsgEmailTaken)
	case errors.Is(err, model.ErrCPFTaken):
		rs.Message(w, http.StatusBadRequest, MsgCPFTaken)
	case errors.Is(err, model.ErrInvalidCredentials):
		rs.Message(w, http.StatusBadRequest, MsgInvalidCredentials)
	case errors.Is(err, model.ErrNotFound):
		rs.Message(w, http.StatusNotFound, MsgActivityNotFound)
	case errors.Is(err, model.ErrForbidden):
		rs.Message(w, http.StatusUnauthorized, MsgUnauthorized)
	default:
		rs.logger.Error(op+" failed", "error", err.Error())
		rs.Message(w, http.StatusInternalServerError, fallback)
	}
}

// decodeBody reads a JSON body into dst. A body over the size limit writes
// 413 and returns false; any other decode problem writes 400 with badRequestMsg.
func (rs responder) decodeBody(w http.ResponseWriter, r *http.Request, dst any, badRequestMsg string) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		rs.Message(w, http.StatusRequestEntityTooLarge, MsgPayloadTooLarge)
		return false
	}
	rs.Message(w, http.StatusBadRequest, badRequestMsg)
	return false
}
