package router

import (
	"net/http"
	"strings"

	"github.com/sentraid/sentra/internal/pkg/jwt"
)

// middlewareAuthentication requires a valid bearer token on every endpoint
// not listed as public. Public endpoints still get a best-effort parse: when
// a valid token accompanies the request its claims are stored in the
// context, but a missing or bad token never rejects the request. The
// check-login endpoint relies on this to answer without demanding a session.
func middlewareAuthentication(verifier jwt.JWT, publicEndpoints map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			public := false
			if s, ok := publicEndpoints[r.Method]; ok {
				_, public = s[matchedRoutePath(r)]
			}

			p := strings.Fields(r.Header.Get("Authorization"))
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				if public {
					next.ServeHTTP(w, r)
					return
				}
				writeJSON(w, map[string]string{"message": "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(p[1])
			if err != nil {
				if public {
					next.ServeHTTP(w, r)
					return
				}
				writeJSON(w, map[string]string{"message": "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			ctx := jwt.SetAuth(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
