// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the cookie carrying the signed token for
// browser clients that do not send an Authorization header.
const CookieName = "dc_session"

// ErrInvalidToken is returned for tokens that fail signature or claim checks.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the payload of a bridge token. The session ID must still exist
// in Valkey for the token to be honoured.
type Claims struct {
	SessionID string `json:"sid"`
	Admin     bool   `json:"adm"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 bridge tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewIssuer creates a token issuer. secure marks the cookie Secure, which
// should be set when serving behind TLS.
func NewIssuer(secret string, ttl time.Duration, secure bool) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Issue returns a signed token for the given session.
func (i *Issuer) Issue(sessionID string, data *Data) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		Admin:     data.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   data.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns its claims.
func (i *Issuer) Parse(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// SetCookie writes the token cookie on the response.
func (i *Issuer) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   i.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(i.ttl.Seconds()),
	})
}

// ClearCookie expires the token cookie immediately.
func (i *Issuer) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   i.secure,
		MaxAge:   -1,
	})
}

// TokenFromRequest extracts a token from the Authorization bearer header,
// falling back to the session cookie. Returns "" when neither is present.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, value, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(value)
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
