package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gymlog/gymlog-go/internal/logger"
	"github.com/gymlog/gymlog-go/internal/model"
	"github.com/gymlog/gymlog-go/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func msgResponse(msg string) model.MessageResponse {
	return model.MessageResponse{Msg: msg}
}

// decodeJSON reads a size-capped JSON body into dst. It writes the error
// response itself and reports whether the handler should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, msgResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, msgResponse("invalid request body"))
		return false
	}
	return true
}

// writeServiceError maps service errors onto status codes. Storage failures are
// logged with the request logger and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, msgResponse(verr.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, msgResponse("Invalid credentials"))
	case errors.Is(err, service.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, msgResponse(err.Error()))
	case errors.Is(err, service.ErrOwnerMismatch):
		writeJSON(w, http.StatusForbidden, msgResponse(err.Error()))
	case errors.Is(err, service.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, msgResponse(err.Error()))
	default:
		logger.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, msgResponse("internal server error"))
	}
}
