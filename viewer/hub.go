/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package viewer

import (
	"context"
	"log"
	"sync"
	"time"
)

// Hub keeps one View per viewer id and drops views that have not been looked
// at for IdleTTL.
type Hub struct {
	Mu    sync.Mutex
	Views map[string]*View

	// IdleTTL is how long an untouched view survives a Sweep.
	IdleTTL time.Duration

	ctx     context.Context
	options func(id string) Options
	now     func() time.Time
	stop    chan struct{}
	done    chan struct{}
}

// NewHub creates a hub whose views are built from options(id). Views live
// until they idle out or ctx is cancelled.
func NewHub(ctx context.Context, idleTTL time.Duration,
	options func(id string) Options) *Hub {

	return &Hub{
		Views:   make(map[string]*View),
		IdleTTL: idleTTL,
		ctx:     ctx,
		options: options,
		now:     time.Now,
	}
}

// Get retrieves the view for id, creating and mounting it when needed.
func (h *Hub) Get(id string) *View {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	if v, ok := h.Views[id]; ok {
		// under h.Mu so a Sweep cannot close a view it is handing out
		v.touch(h.now())
		return v
	}

	opts := h.options(id)
	v := New(h.ctx, opts)
	v.Start()
	h.Views[id] = v
	return v
}

func (h *Hub) Len() int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	return len(h.Views)
}

// Sweep closes and removes views idle for longer than IdleTTL and reports how
// many it removed.
func (h *Hub) Sweep() int {
	var idle []*View

	h.Mu.Lock()
	cutoff := h.now().Add(-h.IdleTTL)
	for id, v := range h.Views {
		if v.LastSeen().Before(cutoff) {
			idle = append(idle, v)
			delete(h.Views, id)
		}
	}
	h.Mu.Unlock()

	for _, v := range idle {
		v.Close()
	}
	return len(idle)
}

// Start runs Sweep every interval until Stop.
func (h *Hub) Start(interval time.Duration) {
	h.Mu.Lock()
	if h.stop != nil {
		h.Mu.Unlock()
		return
	}
	h.stop = make(chan struct{})
	h.done = make(chan struct{})
	stop, done := h.stop, h.done
	h.Mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if n := h.Sweep(); n > 0 {
					log.Printf("viewer.hub: dropped %v idle views", n)
				}
			}
		}
	}()
}

// Stop ends the sweeper and closes every view.
func (h *Hub) Stop() {
	h.Mu.Lock()
	stop, done := h.stop, h.done
	h.stop, h.done = nil, nil
	views := h.Views
	h.Views = make(map[string]*View)
	h.Mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	for _, v := range views {
		v.Close()
	}
}
