package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/archivist/pkg/i18n"
	"github.com/dmitrymomot/archivist/pkg/theme"
)

// HTTPError is an error with the status and body it should be rendered as.
type HTTPError struct {
	Err     error  `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func newHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func errNotFound(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, "not_found", message, nil)
}

func errBadRequest(message string, err error) *HTTPError {
	return newHTTPError(http.StatusBadRequest, "bad_request", message, err)
}

// toHTTPError maps domain errors to responses. Unknown errors become 500.
func toHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, i18n.ErrInvalidLocale):
		return newHTTPError(http.StatusUnprocessableEntity, "invalid_locale", err.Error(), err)
	case errors.Is(err, i18n.ErrResourceNotFound):
		return newHTTPError(http.StatusNotFound, "locale_data_missing", "locale data not found", err)
	case errors.Is(err, theme.ErrInvalidTheme):
		return newHTTPError(http.StatusUnprocessableEntity, "invalid_theme", err.Error(), err)
	default:
		return newHTTPError(http.StatusInternalServerError, "internal", http.StatusText(http.StatusInternalServerError), err)
	}
}

type errorBody struct {
	Error     *HTTPError `json:"error"`
	RequestID string     `json:"requestId,omitempty"`
}

// handlerFunc is an http.HandlerFunc that returns its error instead of
// writing it.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		httpErr := toHTTPError(err)
		if httpErr.Status >= http.StatusInternalServerError {
			s.logger.ErrorContext(r.Context(), "request failed",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
		}
		writeJSON(w, httpErr.Status, errorBody{Error: httpErr, RequestID: RequestID(r.Context())})
	}
}
