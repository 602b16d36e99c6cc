package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"ecom-product/utils"
)

// Recover converts panics into 500 responses so a single bad request cannot
// take the server down.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", GetRequestID(r)).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", rec).
					Msg("panic recovered")
				utils.Send(w, http.StatusInternalServerError, nil, "Something went wrong")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
