package middleware

import (
	"net/http"
	"strings"
)

// MethodOverride lets HTML forms reach PUT and DELETE routes through a
// _method query or form parameter on a POST. It wraps the router because
// gin matches routes before any middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.URL.Query().Get("_method")
			if method == "" {
				method = r.Header.Get("X-HTTP-Method-Override")
			}
			if method == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				method = r.PostFormValue("_method")
			}
			switch m := strings.ToUpper(method); m {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
