// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// mutatingMethods is the Allow header sent when a write action is requested
// with a safe method.
const mutatingMethods = "POST, DELETE"

// RequireMutatingMethod rejects GET and HEAD with 405. Browsers attach
// SameSite=Lax cookies to top-level GET navigations from other sites, so a
// state-changing action must never run on a safe method.
func RequireMutatingMethod(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			w.Header().Set("Allow", mutatingMethods)
			writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}
		next.ServeHTTP(w, r)
	})
}
