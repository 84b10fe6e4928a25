package auth

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/jonwraymond/mealscout/observe"
)

// Middleware rejects requests that authn does not accept with 401 and
// stores the caller's Identity on the request context otherwise.
// A nil authn lets every request through.
func Middleware(authn Authenticator, logger observe.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return func(next http.Handler) http.Handler {
		if authn == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !authn.Supports(r.Header) {
				unauthorized(w, ErrMissingCredentials)
				return
			}
			id, err := authn.Authenticate(ctx, r.Header)
			if err != nil {
				logger.Warn(ctx, "admin request rejected",
					observe.F("path", r.URL.Path),
					observe.F("reason", err.Error()))
				unauthorized(w, err)
				return
			}
			logger.Debug(ctx, "admin request authenticated",
				observe.F("principal", id.Principal),
				observe.F("method", string(id.Method)))
			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	msg := "unauthorized"
	if errors.Is(err, ErrTokenExpired) {
		msg = "token expired"
	}
	w.Header().Set("WWW-Authenticate", `Bearer realm="mealscout-admin"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
