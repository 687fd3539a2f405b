package web

// cors.go implements the origin allow-list. A single configured origin is
// compared by exact string match; on mismatch the CORS headers are simply
// omitted and the request is processed anyway; the browser blocks the
// response client-side, the server never rejects on origin. Preflights
// short-circuit with an empty body.

import "net/http"

// allowOrigin returns middleware applying the CORS policy for the one
// allowed origin. An empty allowed origin means no request ever gets CORS
// headers.
func allowOrigin(allowed string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && allowed != "" && origin == allowed {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Admin-Token")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
