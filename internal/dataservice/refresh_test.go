// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package dataservice

import (
	"context"
	"sync"
	"testing"
	"time"

	"datcloude/internal/models"
)

// seqSource returns titles from a fixed sequence, repeating the last one.
type seqSource struct {
	mu     sync.Mutex
	titles []string
	calls  int
}

func (s *seqSource) GetConfig(context.Context) models.SiteConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.titles) {
		i = len(s.titles) - 1
	}
	s.calls++
	cfg := DefaultConfig()
	cfg.HeroTitle = s.titles[i]
	return cfg
}

func (s *seqSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRefresher_ReportsFirstLoadAndChangesOnly(t *testing.T) {
	src := &seqSource{titles: []string{"A", "A", "B", "B"}}
	got := make(chan string, 10)

	r := NewRefresher(src, 5*time.Millisecond, func(cfg models.SiteConfig) {
		got <- cfg.HeroTitle
	})
	r.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for src.count() < 6 {
		select {
		case <-deadline:
			t.Fatalf("only %d polls before deadline", src.count())
		case <-time.After(5 * time.Millisecond):
		}
	}
	r.Stop()
	close(got)

	var titles []string
	for title := range got {
		titles = append(titles, title)
	}
	if len(titles) != 2 || titles[0] != "A" || titles[1] != "B" {
		t.Errorf("callbacks = %v, want [A B]", titles)
	}
}

// blockingSource waits for cancellation, then returns a config anyway.
type blockingSource struct {
	started chan struct{}
	once    sync.Once
}

func (s *blockingSource) GetConfig(ctx context.Context) models.SiteConfig {
	s.once.Do(func() { close(s.started) })
	<-ctx.Done()
	return DefaultConfig()
}

func TestRefresher_StopDiscardsLateResult(t *testing.T) {
	src := &blockingSource{started: make(chan struct{})}
	called := make(chan struct{}, 1)

	r := NewRefresher(src, time.Hour, func(models.SiteConfig) {
		called <- struct{}{}
	})
	r.Start(context.Background())

	select {
	case <-src.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first read never started")
	}

	stopped := make(chan struct{})
	go func() {
		r.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not cancel the in-flight read")
	}

	select {
	case <-called:
		t.Error("callback fired for a read that resolved after Stop")
	default:
	}

	r.Stop()
}

func TestRefresher_StopFromCallback(t *testing.T) {
	src := &seqSource{titles: []string{"A", "B", "C"}}
	var (
		r     *Refresher
		mu    sync.Mutex
		calls int
	)
	returned := make(chan struct{})

	r = NewRefresher(src, time.Millisecond, func(models.SiteConfig) {
		mu.Lock()
		calls++
		mu.Unlock()
		r.Stop()
		close(returned)
	})
	r.Start(context.Background())

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop called from the callback never returned")
	}

	// The loop may finish one read that raced with the cancellation.
	time.Sleep(20 * time.Millisecond)
	polls := src.count()
	time.Sleep(50 * time.Millisecond)
	if got := src.count(); got != polls {
		t.Errorf("polling continued after Stop: %d reads, want %d", got, polls)
	}
	mu.Lock()
	if calls != 1 {
		t.Errorf("callbacks = %d, want 1", calls)
	}
	mu.Unlock()

	r.Stop()
}

func TestRefresher_DefaultsAndDoubleStart(t *testing.T) {
	r := NewRefresher(&seqSource{titles: []string{"A"}}, 0, nil)
	if r.interval != DefaultRefreshInterval {
		t.Errorf("interval = %v, want %v", r.interval, DefaultRefreshInterval)
	}
	r.Start(context.Background())
	r.Start(context.Background())
	r.Stop()
	r.Stop()
}

func TestRefresher_WithService(t *testing.T) {
	svc, fb, _ := newTestService(t)
	fb.with(func(fb *fakeBridge) { fb.config = `{"heroTitle":"LIVE"}` })

	got := make(chan string, 10)
	r := NewRefresher(svc, 10*time.Millisecond, func(cfg models.SiteConfig) {
		got <- cfg.HeroTitle
	})
	r.Start(context.Background())
	defer r.Stop()

	expect := func(want string) {
		t.Helper()
		select {
		case title := <-got:
			if title != want {
				t.Fatalf("HeroTitle = %q, want %q", title, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("no refresh reported %q", want)
		}
	}

	expect("LIVE")
	fb.with(func(fb *fakeBridge) { fb.config = `{"heroTitle":"EDITED"}` })
	expect("EDITED")
}
