package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

const maxBodyBytes = 1 << 20

// errorBody is the payload of every non 2xx response.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeBadJSON(w http.ResponseWriter, log *slog.Logger, err error) {
	log.Warn("failed to parse JSON", "err", err)
	writeJSON(w, log, http.StatusBadRequest, errorBody{Error: "invalid JSON data"})
}

// writeError maps domain errors onto statuses. Unknown errors are logged
// and reported without details.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "err", err)
		writeJSON(w, log, status, errorBody{Error: "internal error"})
		return
	}

	log.Warn("request rejected", "status", status, "err", err)
	body := errorBody{Error: rootCause(err).Error()}
	var verr domain.ValidationError
	if errors.As(err, &verr) {
		body.Error = "validation failed"
		body.Fields = verr.Fields
	}
	writeJSON(w, log, status, body)
}

func statusOf(err error) int {
	var verr domain.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, errLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoSession), errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnknownCategory), errors.Is(err, domain.ErrUnknownSortKey),
		errors.Is(err, errBadParam):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrSizeUnavailable),
		errors.Is(err, domain.ErrColorUnavailable),
		errors.Is(err, domain.ErrAlreadyInWishlist),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrChatClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// rootCause drops the op prefixes added on the way up.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
