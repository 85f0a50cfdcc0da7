// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"datcloude/internal/models"
)

// getMessages lists contact-form messages, newest first.
func (b *Bridge) getMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := b.cfg.Messages.List(r.Context())
	if err != nil {
		slog.Error("list messages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load messages.")
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// messageInput is the add_message payload. Client-supplied ids and dates
// are ignored.
type messageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Content string `json:"content"`
}

// addMessage records a contact-form submission and notifies the studio.
func (b *Bridge) addMessage(w http.ResponseWriter, r *http.Request) {
	var in messageInput
	if err := decodeBody(r, &in); err != nil {
		badBody(w, err)
		return
	}
	if msg := validateMessage(&in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := b.cfg.Messages.Create(r.Context(), &models.Message{
		Name:    in.Name,
		Email:   in.Email,
		Service: in.Service,
		Content: in.Content,
	})
	if err != nil {
		slog.Error("create message failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to send message.")
		return
	}

	if b.cfg.Notifier != nil {
		b.cfg.Notifier.NewLead(*created)
	}

	slog.Info("message received", "id", created.ID, "service", created.Service)
	writeSuccess(w)
}

// deleteMessage removes a message. Deleting an unknown id succeeds.
func (b *Bridge) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if _, err := b.cfg.Messages.Delete(r.Context(), id); err != nil {
		slog.Error("delete message failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete message.")
		return
	}
	writeSuccess(w)
}
