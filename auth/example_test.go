package auth_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/jonwraymond/mealscout/auth"
)

func ExampleMiddleware() {
	keys := auth.NewAPIKeyAuthenticator(auth.APIKeyConfig{}, "s3cret")
	h := auth.Middleware(keys, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, auth.IdentityFromContext(r.Context()).Method)
	}))

	for _, key := range []string{"", "s3cret"} {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		if key != "" {
			req.Header.Set("X-API-Key", key)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		fmt.Println(rec.Code)
	}
	// Output:
	// 401
	// 200
}
