// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media normalizes project media references. Share links from
// Google Drive are rewritten to direct-download URLs; inline data URIs are
// decoded so they can be offloaded to object storage.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// driveDownloadURL is the direct-download form for a Drive file ID.
const driveDownloadURL = "https://drive.google.com/uc?export=download&id="

var (
	// drivePathID matches ".../d/<id>" in Drive and Docs share links.
	drivePathID = regexp.MustCompile(`/d/([A-Za-z0-9_-]+)`)

	// ErrNotDataURI is returned by ParseDataURI for non-data: input.
	ErrNotDataURI = errors.New("not a data URI")
)

// NormalizeURL maps a user-supplied media URL to one the site can embed.
// Empty input yields "". data:, blob: and https://cdn. URLs pass through
// unchanged, as does anything that is not a recognizable Drive link.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "data:") || strings.HasPrefix(s, "blob:") || strings.HasPrefix(s, "https://cdn.") {
		return raw
	}

	u, err := url.Parse(s)
	if err != nil {
		return raw
	}
	host := strings.ToLower(u.Hostname())
	if host != "drive.google.com" && host != "docs.google.com" {
		return raw
	}

	if m := drivePathID.FindStringSubmatch(u.Path); m != nil {
		return driveDownloadURL + m[1]
	}
	if id := u.Query().Get("id"); id != "" {
		return driveDownloadURL + url.QueryEscape(id)
	}
	return raw
}

// ParseDataURI decodes an RFC 2397 data URI and returns its media type and
// payload. A missing media type defaults to text/plain.
func ParseDataURI(s string) (contentType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("parse data uri: missing comma")
	}

	isBase64 := false
	if m, found := strings.CutSuffix(meta, ";base64"); found {
		meta = m
		isBase64 = true
	}

	contentType = meta
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType == "" {
		contentType = "text/plain"
	}

	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// Some encoders omit padding.
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return "", nil, fmt.Errorf("parse data uri: %w", err)
		}
		return contentType, data, nil
	}

	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("parse data uri: %w", err)
	}
	return contentType, []byte(unescaped), nil
}
