package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/cloudsync"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/repository"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/service"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type apiErr struct {
	Status  int
	Message string
	Details any
}

func (e *apiErr) Error() string { return e.Message }

func badRequest(msg string, details any) *apiErr {
	return &apiErr{Status: http.StatusBadRequest, Message: msg, Details: details}
}

func notFound(msg string) *apiErr { return &apiErr{Status: http.StatusNotFound, Message: msg} }

func unavailable(msg string) *apiErr {
	return &apiErr{Status: http.StatusServiceUnavailable, Message: msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err *apiErr) {
	payload := map[string]any{"error": err.Message}
	if err.Details != nil {
		payload["details"] = err.Details
	}
	writeJSON(w, err.Status, payload)
}

func readJSON(r *http.Request, dst any) *apiErr {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return badRequest("could not read body", nil)
	}
	if len(b) == 0 {
		b = []byte(`{}`)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return badRequest("invalid JSON", map[string]any{"error": err.Error()})
	}
	return nil
}

// fromServiceError maps a use-case error onto an HTTP status. Unknown errors
// are logged and reported as a bare 500.
func fromServiceError(logger logrus.FieldLogger, msg string, err error) *apiErr {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(err.Error())
	case errors.Is(err, service.ErrInvalidLink),
		errors.Is(err, service.ErrInvalidHorizon),
		errors.Is(err, service.ErrInvalidDate):
		return badRequest(err.Error(), nil)
	case errors.Is(err, cloudsync.ErrSyncInFlight):
		return &apiErr{Status: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, cloudsync.ErrNoSnapshot):
		return notFound(err.Error())
	}
	logger.WithError(err).Error(msg)
	return &apiErr{Status: http.StatusInternalServerError, Message: msg}
}
