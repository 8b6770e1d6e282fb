/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package viewer holds the league/round selection of one board viewer and
// the acquisition of the selected league's rounds.
package viewer

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Al-Wasmo/sec-chessbreak-board/board"
	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
	"github.com/Al-Wasmo/sec-chessbreak-board/prefs"
)

var (
	ErrUnknownLeague = errors.New("viewer: unknown league")
	ErrInvalidRound  = errors.New("viewer: invalid round")
	// ErrClosed is returned by operations on a view after Close.
	ErrClosed = errors.New("viewer: view closed")
)

// Source retrieves every round of a league. On failure it may still return
// the rounds it gathered before the error.
type Source interface {
	FetchRounds(ctx context.Context, league board.League) ([]board.Round, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, league board.League) ([]board.Round, error)

func (f SourceFunc) FetchRounds(ctx context.Context,
	league board.League) ([]board.Round, error) {

	return f(ctx, league)
}

type State int

const (
	Idle State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "?"
	}
}

type Options struct {
	// defaults to board.DefaultLeagues()
	Leagues []board.League
	// defaults to board.DefaultRules()
	Rules  board.Rules
	Source Source
	// defaults to an in-memory store
	Prefs prefs.Store
	// scopes preference keys, see prefs.Key
	Namespace string
}

// View is the selection and acquisition state machine of one viewer.
//
// It moves Idle -> Loading when mounted (Start) or when the league changes and
// Loading -> Ready when the acquisition finishes, successfully or not. Every
// acquisition carries a generation; results from an older generation are
// discarded and the older request's context is cancelled.
type View struct {
	opts Options

	mu          sync.Mutex
	leagueIdx   int
	roundIdx    int
	state       State
	gen         uint64
	rounds      []board.Round
	err         error
	ready       chan struct{}
	readyClosed bool
	cancel      context.CancelFunc
	lastSeen    time.Time

	ctx       context.Context
	ctxCancel context.CancelFunc
	wg        sync.WaitGroup
}

// New builds an Idle view whose selection is seeded from opts.Prefs. A stored
// league index that no longer names a league falls back to the first league.
func New(ctx context.Context, opts Options) *View {
	if len(opts.Leagues) == 0 {
		opts.Leagues = board.DefaultLeagues()
	}
	if opts.Rules == (board.Rules{}) {
		opts.Rules = board.DefaultRules()
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewMemory()
	}

	v := &View{
		opts:     opts,
		ready:    make(chan struct{}),
		lastSeen: time.Now(),
	}
	v.ctx, v.ctxCancel = context.WithCancel(ctx)

	v.leagueIdx = opts.Prefs.Get(ctx, v.key(prefs.LeagueIndexKey), 0)
	if v.leagueIdx < 0 || v.leagueIdx >= len(opts.Leagues) {
		log.Printf("viewer.new: ignoring stale league index %v", v.leagueIdx)
		v.leagueIdx = 0
	}
	v.roundIdx = opts.Prefs.Get(ctx, v.key(prefs.RoundIndexKey), 0)
	if v.roundIdx < 0 {
		v.roundIdx = 0
	}

	return v
}

func (v *View) key(name string) string {
	return prefs.Key(v.opts.Namespace, name)
}

// Start mounts the view, acquiring the selected league. It is a no-op once
// the view has left Idle.
func (v *View) Start() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == Idle && v.ctx.Err() == nil {
		v.acquireLocked(false)
	}
}

// SelectLeague switches to the league at idx and acquires its rounds. The
// round index is kept. Selecting the current league of a mounted view does
// nothing; use Refresh to refetch. A closed view is left untouched.
func (v *View) SelectLeague(idx int) error {
	v.mu.Lock()
	if idx < 0 || idx >= len(v.opts.Leagues) {
		v.mu.Unlock()
		return ErrUnknownLeague
	}
	if v.ctx.Err() != nil {
		v.mu.Unlock()
		return ErrClosed
	}
	v.lastSeen = time.Now()
	if idx == v.leagueIdx && v.state != Idle {
		v.mu.Unlock()
		return nil
	}
	v.leagueIdx = idx
	v.acquireLocked(false)
	v.mu.Unlock()

	v.persist(prefs.LeagueIndexKey, idx)
	return nil
}

// SelectRound changes the displayed round. It never triggers an acquisition.
// An index past the last held round is kept and displays as an empty round.
func (v *View) SelectRound(idx int) error {
	if idx < 0 {
		return ErrInvalidRound
	}

	v.mu.Lock()
	v.lastSeen = time.Now()
	changed := idx != v.roundIdx
	v.roundIdx = idx
	v.mu.Unlock()

	if changed {
		v.persist(prefs.RoundIndexKey, idx)
	}
	return nil
}

// Refresh refetches the selected league, asking any HTTP cache on the way to
// revalidate with the origin.
func (v *View) Refresh() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.ctx.Err() != nil {
		return ErrClosed
	}
	v.lastSeen = time.Now()
	v.acquireLocked(true)
	return nil
}

func (v *View) touch(t time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if t.After(v.lastSeen) {
		v.lastSeen = t
	}
}

func (v *View) persist(name string, value int) {
	if err := v.opts.Prefs.Set(v.ctx, v.key(name), value); err != nil {
		log.Printf("viewer.persist: failed to store %v=%v: %v", name, value,
			err)
	}
}

// acquireLocked must only be called on an open view.
func (v *View) acquireLocked(revalidate bool) {
	if v.cancel != nil {
		v.cancel()
	}
	if v.readyClosed {
		v.ready = make(chan struct{})
		v.readyClosed = false
	}

	v.gen++
	v.state = Loading
	v.rounds = nil
	v.err = nil

	ctx, cancel := context.WithCancel(v.ctx)
	if revalidate {
		ctx = internal.WithRevalidate(ctx)
	}
	v.cancel = cancel
	gen := v.gen
	league := v.opts.Leagues[v.leagueIdx]

	v.wg.Add(1)
	go v.acquire(ctx, gen, league)
}

func (v *View) acquire(ctx context.Context, gen uint64, league board.League) {
	defer v.wg.Done()

	var rounds []board.Round
	var err error
	if v.opts.Source == nil {
		err = errors.New("viewer: no tournament source configured")
	} else {
		rounds, err = v.opts.Source.FetchRounds(ctx, league)
	}
	if err != nil {
		log.Printf("viewer.acquire: failed to fetch %v rounds: %v", league.Name,
			err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return
	}
	v.cancel()
	v.cancel = nil
	v.rounds = rounds
	v.err = err
	v.state = Ready
	close(v.ready)
	v.readyClosed = true
}

// Snapshot is a consistent copy of a view for rendering.
type Snapshot struct {
	Generation     uint64
	State          State
	LeagueIndex    int
	RoundIndex     int
	League         board.League
	Leagues        []board.League
	NumberOfRounds int
	// rows of the selected round; empty unless Ready
	Rows []board.Row
	// the last acquisition's error, if any
	Err error
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lastSeen = time.Now()
	return v.snapshotLocked()
}

func (v *View) snapshotLocked() Snapshot {
	league := v.opts.Leagues[v.leagueIdx]
	snap := Snapshot{
		Generation:     v.gen,
		State:          v.state,
		LeagueIndex:    v.leagueIdx,
		RoundIndex:     v.roundIdx,
		League:         league,
		Leagues:        v.opts.Leagues,
		NumberOfRounds: len(v.rounds),
		Err:            v.err,
	}
	if v.state == Ready && v.roundIdx < len(v.rounds) {
		snap.Rows = v.opts.Rules.Rows(v.rounds[v.roundIdx], league)
	}

	return snap
}

// WaitReady mounts the view if needed and blocks until it is Ready, ctx is
// done or the view is closed.
func (v *View) WaitReady(ctx context.Context) (Snapshot, error) {
	v.mu.Lock()
	if v.ctx.Err() != nil {
		v.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	if v.state == Idle {
		v.acquireLocked(false)
	}
	ready := v.ready
	v.mu.Unlock()

	select {
	case <-ready:
		return v.Snapshot(), nil
	case <-v.ctx.Done():
		return Snapshot{}, ErrClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Ready returns a channel closed when the pending acquisition finishes.
func (v *View) Ready() <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ready
}

func (v *View) LastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// Close cancels any pending acquisition and waits for it to return.
func (v *View) Close() {
	v.ctxCancel()
	v.wg.Wait()
}
