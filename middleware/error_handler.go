package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"ecom-product/apperror"
	"ecom-product/utils"
)

// HandlerFunc is an HTTP handler that reports failures instead of writing
// them itself. Every route handler propagates errors to the normalizer;
// none of them format error responses locally.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorNormalizer is the single place domain errors become HTTP responses.
// Operational errors keep their own status and message; anything else is a
// 500 whose detail is only revealed in development mode.
type ErrorNormalizer struct {
	Dev bool
}

// Wrap adapts a HandlerFunc into an http.HandlerFunc, normalizing any
// returned error.
func (n *ErrorNormalizer) Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			n.respond(w, r, err)
		}
	}
}

func (n *ErrorNormalizer) respond(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	message := err.Error()
	operational := false
	var fields []string

	if appErr, ok := apperror.As(err); ok {
		statusCode = appErr.Code
		message = appErr.Message
		operational = appErr.Operational
		fields = appErr.Fields
	}

	log.Error().
		Str("request_id", GetRequestID(r)).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", statusCode).
		Str("message", err.Error()).
		Msg("request failed")

	if !operational {
		if n.Dev {
			envelope := utils.NewEnvelope(statusCode, map[string]interface{}{
				"stack": string(debug.Stack()),
			}, message)
			utils.WriteJSON(w, statusCode, envelope)
			return
		}
		message = "Something went wrong"
	}

	envelope := utils.NewEnvelope(statusCode, nil, message)
	envelope.Errors = fields
	utils.WriteJSON(w, statusCode, envelope)
}
