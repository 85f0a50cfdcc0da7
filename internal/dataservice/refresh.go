// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package dataservice

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"datcloude/internal/models"
)

// DefaultRefreshInterval is how often open clients re-read the config.
const DefaultRefreshInterval = 5 * time.Second

// ConfigSource is anything that can produce the current site config.
type ConfigSource interface {
	GetConfig(ctx context.Context) models.SiteConfig
}

// Refresher polls a ConfigSource and reports each new configuration.
// The callback runs on the polling goroutine, once for the first read and
// then only when the config differs from the previous one. No callback
// starts after Stop returns. The callback may itself call Stop; in that
// case Stop returns without waiting and the loop exits once the callback
// does.
type Refresher struct {
	src      ConfigSource
	interval time.Duration
	onChange func(models.SiteConfig)

	mu  sync.Mutex
	cur *pollRun
}

// pollRun is the state of one Start..Stop cycle.
type pollRun struct {
	cancel     context.CancelFunc
	done       chan struct{}
	inCallback atomic.Bool
}

// NewRefresher creates a stopped refresher. interval <= 0 selects
// DefaultRefreshInterval.
func NewRefresher(src ConfigSource, interval time.Duration, onChange func(models.SiteConfig)) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{src: src, interval: interval, onChange: onChange}
}

// Start begins polling with an immediate first read. Calling Start on a
// running refresher does nothing.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cur != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	run := &pollRun{cancel: cancel, done: make(chan struct{})}
	r.cur = run
	go r.loop(ctx, run)
}

// Stop cancels the in-flight read, if any, and waits for the polling
// goroutine to exit unless a callback is running. Safe to call more than
// once.
func (r *Refresher) Stop() {
	r.mu.Lock()
	run := r.cur
	r.cur = nil
	r.mu.Unlock()

	if run == nil {
		return
	}
	run.cancel()
	if run.inCallback.Load() {
		return
	}
	<-run.done
}

func (r *Refresher) loop(ctx context.Context, run *pollRun) {
	defer close(run.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	var last *models.SiteConfig
	for {
		cfg := r.src.GetConfig(ctx)
		if ctx.Err() != nil {
			return
		}
		if last == nil || !reflect.DeepEqual(*last, cfg) {
			last = &cfg
			if r.onChange != nil {
				run.inCallback.Store(true)
				r.onChange(cfg)
				run.inCallback.Store(false)
			}
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
