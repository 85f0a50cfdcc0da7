// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Message is a contact-form submission from the public hire page.
// Messages are never edited; archiving deletes them.
type Message struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Service string    `json:"service"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}
