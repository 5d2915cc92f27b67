// Package apicors provides CORS middleware for the read-only JSON API.
//
// The API carries no cookies and changes nothing, so credentials are never
// allowed and only GET and OPTIONS are advertised.
package apicors

import (
	"net/http"
)

const (
	allowMethods = "GET, OPTIONS"
	allowHeaders = "Accept, Content-Type"
	maxAge       = "86400" // 24 hours
)

// Middleware returns CORS middleware for the JSON API.
//
// With no origins every origin is allowed (Access-Control-Allow-Origin: *).
// Otherwise only the listed origins are echoed back; requests from other
// origins get no CORS headers and the browser blocks them.
//
// Usage in routes.go:
//
//	r.Route("/api", func(api chi.Router) {
//	    api.Use(apicors.Middleware(appCfg.APICORSOrigins...))
//	    api.Mount("/portfolios", portfolios.APIRoutes(h))
//	})
func Middleware(allowedOrigins ...string) func(http.Handler) http.Handler {
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			originSet = nil
			break
		}
		originSet[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(originSet) == 0 {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := originSet[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				}
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", allowMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
			w.Header().Set("Access-Control-Max-Age", maxAge)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
