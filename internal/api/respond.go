package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"parkinglot/internal/entities"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Error("encoding response", zap.Error(err))
	}
}

// writeError maps the error's kind to an HTTP status and emits the uniform
// error envelope. Unclassified errors become 500s and are logged server-side
// without leaking detail to the client.
func writeError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.L().Error("request failed", zap.Error(err))
		msg = "internal server error"
	}
	writeJSON(w, status, entities.ErrorResponse{Error: string(kind), Message: msg})
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, entities.ErrorResponse{
		Error:   string(apperrors.KindInvalidArgument),
		Message: message,
	})
}
