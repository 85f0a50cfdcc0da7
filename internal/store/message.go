// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oklog/ulid/v2"

	"datcloude/internal/models"
)

// MessageStore handles the contact-form inbox.
type MessageStore struct {
	db *sql.DB
}

// NewMessageStore creates a new MessageStore with the given database connection.
func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

// List returns every message, newest first.
func (s *MessageStore) List(ctx context.Context) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, service, content, date
		FROM messages ORDER BY date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Service, &m.Content, &m.Date); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Create stores a new message with a fresh ID and timestamp.
func (s *MessageStore) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	m.ID = ulid.Make().String()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO messages (id, name, email, service, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING date
	`, m.ID, m.Name, m.Email, m.Service, m.Content).Scan(&m.Date)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return m, nil
}

// Delete removes a message permanently. Returns false when nothing matched.
func (s *MessageStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete message rows: %w", err)
	}
	return n > 0, nil
}
