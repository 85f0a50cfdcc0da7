// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"datcloude/internal/middleware"
	"datcloude/internal/models"
	"datcloude/internal/session"
	"datcloude/internal/store"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Code     string `json:"code"`
}

// login verifies credentials, plus a TOTP code when the account has 2FA
// enabled, and starts a session.
func (b *Bridge) login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeBody(r, &in); err != nil {
		badBody(w, err)
		return
	}

	user, err := b.cfg.Users.FindByEmail(r.Context(), strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if user == nil || !b.cfg.Users.CheckPassword(user, in.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	if user.TOTPEnabled && user.TOTPSecret != nil {
		code := strings.TrimSpace(in.Code)
		if code == "" {
			writeError(w, http.StatusUnauthorized, "Two-factor code required.")
			return
		}
		if !totp.Validate(code, *user.TOTPSecret) {
			writeError(w, http.StatusUnauthorized, "Invalid two-factor code.")
			return
		}
	}

	token, err := b.cfg.Sessions.Start(r.Context(), w, &session.Data{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.FullName,
		IsAdmin: user.IsAdmin(),
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "admin", user.IsAdmin())
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user.Descriptor(),
		"token":   token,
	})
}

// register creates an account. The studio address becomes an admin.
func (b *Bridge) register(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeBody(r, &in); err != nil {
		badBody(w, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if msg := validateRegistration(email, in.Password, in.FullName); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	role := models.RoleForEmail(email, b.cfg.StudioEmail)
	user, err := b.cfg.Users.Create(r.Context(), email, in.Password, strings.TrimSpace(in.FullName), role)
	if errors.Is(err, store.ErrDuplicateEmail) {
		writeError(w, http.StatusBadRequest, "Email already registered.")
		return
	}
	if err != nil {
		slog.Error("registration failed", "error", err)
		writeError(w, http.StatusBadRequest, "Registration failed.")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "role", user.Role)
	writeSuccess(w)
}

// logout destroys the caller's session, if any.
func (b *Bridge) logout(w http.ResponseWriter, r *http.Request) {
	if err := b.cfg.Sessions.End(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	writeSuccess(w)
}

// totpSetup generates a TOTP secret for the signed-in user and returns it
// with an otpauth URL and a QR code (base64 PNG). The secret only takes
// effect after totp_enable confirms a code.
func (b *Bridge) totpSetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := b.cfg.Users.FindByID(r.Context(), sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if user.TOTPEnabled {
		writeError(w, http.StatusBadRequest, "Two-factor authentication is already enabled.")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      b.cfg.TOTPIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	if err := b.cfg.Users.SetTOTPSecret(r.Context(), user.ID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"secret":  key.Secret(),
		"url":     key.URL(),
		"qrCode":  base64.StdEncoding.EncodeToString(qrPNG),
	})
}

// totpEnable confirms the pending secret with a code from the authenticator.
func (b *Bridge) totpEnable(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var in credentials
	if err := decodeBody(r, &in); err != nil {
		badBody(w, err)
		return
	}

	user, err := b.cfg.Users.FindByID(r.Context(), sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, http.StatusBadRequest, "Run totp_setup first.")
		return
	}
	if !totp.Validate(strings.TrimSpace(in.Code), *user.TOTPSecret) {
		writeError(w, http.StatusBadRequest, "Invalid code. Please try again.")
		return
	}

	if err := b.cfg.Users.EnableTOTP(r.Context(), user.ID); err != nil {
		slog.Error("enable totp failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	slog.Info("2fa enabled", "user_id", user.ID)
	writeSuccess(w)
}
