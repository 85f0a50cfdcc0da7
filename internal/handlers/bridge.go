// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the bridge: a single JSON endpoint whose
// "action" query parameter selects the operation. Each action is an
// http.Handler wrapped in the middleware it needs (rate limiting, session
// checks), so the dispatcher itself stays a plain map lookup. Actions that
// change state refuse GET and HEAD.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"datcloude/internal/middleware"
)

// maxBodyBytes bounds request bodies. Data-URI uploads are the largest payload.
const maxBodyBytes = 32 << 20

// Config wires the bridge to its collaborators. Media, Notifier, Cache and
// Limiter are optional.
type Config struct {
	Users    UserRepository
	Site     ConfigRepository
	Projects ProjectRepository
	Messages MessageRepository
	Sessions SessionManager
	Cache    ResponseCache
	Media    MediaUploader
	Notifier LeadNotifier
	Limiter  *middleware.RateLimiter

	// StudioEmail receives the admin role on registration and is the
	// contact address stored when update_config omits one.
	StudioEmail string

	// Strict gates admin actions behind a verified admin session. When
	// false every action is open to anonymous callers.
	Strict bool

	// TOTPIssuer is shown in authenticator apps.
	TOTPIssuer string
}

// Bridge dispatches bridge actions.
type Bridge struct {
	cfg     Config
	actions map[string]http.Handler
}

// New creates a bridge and builds its action table.
func New(cfg Config) *Bridge {
	if cfg.TOTPIssuer == "" {
		cfg.TOTPIssuer = "DAT CLOUDE"
	}
	b := &Bridge{cfg: cfg}

	public := func(h http.HandlerFunc) http.Handler { return h }
	limited := func(h http.HandlerFunc) http.Handler {
		if cfg.Limiter == nil {
			return h
		}
		return cfg.Limiter.Middleware(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		if !cfg.Strict {
			return h
		}
		return middleware.RequireAdmin(h)
	}
	signedIn := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	write := middleware.RequireMutatingMethod

	b.actions = map[string]http.Handler{
		"login":    write(limited(b.login)),
		"register": write(limited(b.register)),
		"logout":   write(public(b.logout)),

		"totp_setup":  write(signedIn(b.totpSetup)),
		"totp_enable": write(signedIn(b.totpEnable)),

		"get_config":    public(b.getConfig),
		"update_config": write(admin(b.updateConfig)),

		"get_projects":   public(b.getProjects),
		"add_project":    write(admin(b.addProject)),
		"update_project": write(admin(b.updateProject)),
		"delete_project": write(admin(b.deleteProject)),
		"upload_media":   write(admin(b.uploadMedia)),

		"get_messages":   admin(b.getMessages),
		"add_message":    write(limited(b.addMessage)),
		"delete_message": write(admin(b.deleteMessage)),
	}
	return b
}

// Actions returns the number of registered actions.
func (b *Bridge) Actions() int {
	return len(b.actions)
}

// ServeHTTP routes the request to its action. Unknown actions answer 200
// with an error body, which existing clients check for.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	h, ok := b.actions[r.URL.Query().Get("action")]
	if !ok {
		writeJSON(w, http.StatusOK, map[string]string{"error": "Invalid Action"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	h.ServeHTTP(w, r)
}

// writeJSON sends data as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write json response", "error", err)
	}
}

// writeRaw sends an already-encoded JSON body.
func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// writeError sends a {"error": msg} body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeSuccess sends {"success": true}.
func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// errBadJSON is returned by decodeBody for bodies that are not valid JSON.
var errBadJSON = errors.New("invalid JSON body")

// decodeBody decodes the request body into dst. An empty body leaves dst
// untouched, matching clients that POST without a payload.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return errBadJSON
}

// badBody answers a decodeBody failure.
func badBody(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON body")
}

// encode marshals v for the response cache.
func encode(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(body, '\n'), nil
}
