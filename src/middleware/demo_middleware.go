package middleware

import (
	"net/http"
)

// DemoModeMiddleware makes a public demo deployment read-only except for
// login and register. It runs ahead of JWT auth, so the super-admin bypass
// has to inspect the token itself.
func DemoModeMiddleware(isDemo bool) func(http.Handler) http.Handler {
	allowedPosts := map[string]bool{
		"/api/login":    true,
		"/api/register": true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isDemo || r.Method == http.MethodGet || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if r.Method == http.MethodPost && allowedPosts[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			if claims, err := ParseTokenFromRequest(r); err == nil {
				if superAdmin, ok := claims["super_admin"].(bool); ok && superAdmin {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Error(w, "Demo mode: only GET requests are allowed", http.StatusForbidden)
		})
	}
}
