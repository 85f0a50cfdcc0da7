// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"datcloude/internal/models"
)

func TestMessageStoreLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewMessageStore(db)
	ctx := context.Background()

	before, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	m, err := s.Create(ctx, &models.Message{
		Name: "Jane", Email: "jane@x.com", Service: "Web Development", Content: "Need a site",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { cleanMessages(t, db, m.ID) })

	if m.ID == "" || m.Date.IsZero() {
		t.Fatalf("expected assigned id and date, got %+v", m)
	}

	after, _ := s.List(ctx)
	if len(after) != len(before)+1 {
		t.Fatalf("message count: got %d, want %d", len(after), len(before)+1)
	}
	if after[0].ID != m.ID {
		t.Error("newest message should be listed first")
	}

	ok, err := s.Delete(ctx, m.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	ok, _ = s.Delete(ctx, m.ID)
	if ok {
		t.Error("deleting twice should report false the second time")
	}
}
