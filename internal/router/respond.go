package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/patric-chuzhbe/notekeeper/internal/logger"
	"github.com/patric-chuzhbe/notekeeper/internal/models"
	"github.com/patric-chuzhbe/notekeeper/internal/service"
)

func respondData(response http.ResponseWriter, status int, data any) {
	respondJSON(response, status, models.Response{Success: true, Data: data})
}

func respondError(response http.ResponseWriter, status int, message string) {
	respondJSON(response, status, models.Response{Success: false, Error: message})
}

func respondJSON(response http.ResponseWriter, status int, payload models.Response) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(status)
	if err := json.NewEncoder(response).Encode(payload); err != nil {
		logger.Log.Debugln("response encoding failed:", err)
	}
}

// respondServiceError maps the service error taxonomy to status codes.
// Anything that is not a tagged service error is a 500 with a sanitized
// message: raw storage errors never reach the envelope.
func respondServiceError(response http.ResponseWriter, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		logger.Log.Errorln("unclassified error reached the transport layer:", err)
		respondError(response, http.StatusInternalServerError, "internal error")
		return
	}

	respondError(response, statusForKind(svcErr.Kind), svcErr.Message)
}

func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindValidation, service.KindDuplicateEmail:
		return http.StatusBadRequest
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
