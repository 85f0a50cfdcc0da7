// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour, false)
	data := &Data{UserID: uuid.New(), Email: "a@b.c", IsAdmin: true}

	token, err := iss.Issue("sid-123", data)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := iss.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.SessionID != "sid-123" {
		t.Errorf("SessionID = %q", claims.SessionID)
	}
	if !claims.Admin {
		t.Error("expected admin claim")
	}
	if claims.Subject != data.UserID.String() {
		t.Errorf("Subject = %q, want %q", claims.Subject, data.UserID)
	}
}

func TestParseRejects(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour, false)
	other := NewIssuer("other-secret", time.Hour, false)
	expired := NewIssuer("test-secret", time.Nanosecond, false)

	foreign, _ := other.Issue("sid", &Data{UserID: uuid.New()})
	stale, _ := expired.Issue("sid", &Data{UserID: uuid.New()})
	time.Sleep(10 * time.Millisecond)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iss.Parse(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidToken", tt.name, err)
			}
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"none", "", "", ""},
		{"bearer", "Bearer abc.def", "", "abc.def"},
		{"bearer case", "bearer xyz", "", "xyz"},
		{"cookie", "", "from-cookie", "from-cookie"},
		{"header wins", "Bearer hdr", "ck", "hdr"},
		{"basic ignored", "Basic Zm9vOmJhcg==", "ck", "ck"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if got := TokenFromRequest(r); got != tt.want {
				t.Errorf("TokenFromRequest = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCookies(t *testing.T) {
	iss := NewIssuer("s", time.Hour, true)

	w := httptest.NewRecorder()
	iss.SetCookie(w, "tok")
	c := w.Result().Cookies()[0]
	if c.Name != CookieName || c.Value != "tok" || !c.HttpOnly || !c.Secure {
		t.Errorf("unexpected cookie: %+v", c)
	}
	if c.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want 3600", c.MaxAge)
	}

	w = httptest.NewRecorder()
	iss.ClearCookie(w)
	if c := w.Result().Cookies()[0]; c.MaxAge != -1 {
		t.Errorf("cleared cookie MaxAge = %d, want -1", c.MaxAge)
	}
}
