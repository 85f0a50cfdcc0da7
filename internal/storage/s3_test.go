// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"regexp"
	"testing"
	"time"
)

func TestNewWithoutCredentials(t *testing.T) {
	c, err := New("", "us-east-1", "", "", "media", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c != nil {
		t.Error("expected nil client when storage is not configured")
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New("https://s3.example.com", "us-east-1", "ak", "sk", "", ""); err == nil {
		t.Error("expected error for empty bucket")
	}
}

func TestFileURL(t *testing.T) {
	tests := []struct {
		name      string
		publicURL string
		want      string
	}{
		{"path style", "", "https://s3.example.com/media-bucket/media/a.png"},
		{"public url", "https://cdn.example.com/", "https://cdn.example.com/media/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New("https://s3.example.com/", "us-east-1", "ak", "sk", "media-bucket", tt.publicURL)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := c.FileURL("media/a.png"); got != tt.want {
				t.Errorf("FileURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestObjectKey(t *testing.T) {
	now := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^media/2026/03/[0-9A-HJKMNP-TV-Z]{26}\.png$`)

	a := ObjectKey(now, "image/png")
	b := ObjectKey(now, "image/png")
	if !pattern.MatchString(a) {
		t.Errorf("ObjectKey = %q, does not match %s", a, pattern)
	}
	if a == b {
		t.Error("keys must be unique")
	}
}

func TestExtensionFor(t *testing.T) {
	tests := map[string]string{
		"image/jpeg":               ".jpg",
		"image/webp":               ".webp",
		"video/mp4":                ".mp4",
		"application/x-unknown-zz": ".bin",
	}
	for ct, want := range tests {
		if got := extensionFor(ct); got != want {
			t.Errorf("extensionFor(%q) = %q, want %q", ct, got, want)
		}
	}
}
