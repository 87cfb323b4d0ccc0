// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package searchclient

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is how long Submit waits for further input before
// fetching.
const DefaultDebounce = 250 * time.Millisecond

// Phase is the state of a listing view.
type Phase int

const (
	// PhasePrompt means no query is set and nothing was fetched.
	PhasePrompt Phase = iota
	// PhaseLoading means a fetch for the current query is pending.
	PhaseLoading
	// PhaseResults means the current query matched at least one post.
	PhaseResults
	// PhaseEmpty means the current query matched nothing.
	PhaseEmpty
	// PhaseError means the fetch for the current query failed. It is not
	// retried; the next Submit starts over.
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhasePrompt:
		return "prompt"
	case PhaseLoading:
		return "loading"
	case PhaseResults:
		return "results"
	case PhaseEmpty:
		return "empty"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// View is a snapshot of a listing.
type View struct {
	Phase      Phase
	Query      Query
	Response   *Response
	Err        error
	Generation uint64
}

// Searcher runs a single search. *Client implements it.
type Searcher interface {
	Search(ctx context.Context, q Query) (*Response, error)
}

// Option configures a Listing.
type Option func(*Listing)

// WithDebounce sets the delay between Submit and the fetch. Zero fetches
// immediately.
func WithDebounce(d time.Duration) Option {
	return func(l *Listing) { l.debounce = d }
}

// Listing keeps one view in sync with the latest submitted query. Every
// Submit starts a new generation: the previous fetch is cancelled and any
// response it still produces is discarded.
type Listing struct {
	searcher Searcher
	debounce time.Duration

	mu      sync.Mutex
	view    View
	gen     uint64
	cancel  context.CancelFunc
	changed chan struct{}
	closed  bool
	subs    map[int]func(View)
	nextSub int
	seq     uint64

	// notifyMu serializes subscriber callbacks. delivered is the seq of the
	// last view handed to subscribers; older views are dropped.
	notifyMu  sync.Mutex
	delivered uint64
	wg        sync.WaitGroup
}

// NewListing returns a Listing in the prompt phase.
func NewListing(s Searcher, opts ...Option) *Listing {
	l := &Listing{
		searcher: s,
		debounce: DefaultDebounce,
		changed:  make(chan struct{}),
		subs:     make(map[int]func(View)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Submit makes q the current query. An empty query shows the prompt
// without fetching. Submit does not wait for the fetch; it returns once
// subscribers have been handed the new view.
func (l *Listing) Submit(q Query) {
	q = q.Normalize()

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.gen++
	gen := l.gen
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	if q.IsEmpty() {
		l.setLocked(View{Phase: PhasePrompt, Query: q, Generation: gen})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.wg.Add(1)
	go l.fetch(ctx, gen, q)
	l.setLocked(View{Phase: PhaseLoading, Query: q, Generation: gen})
}

func (l *Listing) fetch(ctx context.Context, gen uint64, q Query) {
	defer l.wg.Done()

	if l.debounce > 0 {
		t := time.NewTimer(l.debounce)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}

	resp, err := l.searcher.Search(ctx, q)

	l.mu.Lock()
	if gen != l.gen || l.closed {
		l.mu.Unlock()
		return
	}
	// The fetch for the current generation is done; release its context.
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	v := View{Query: q, Generation: gen}
	switch {
	case err != nil:
		v.Phase = PhaseError
		v.Err = err
	case resp == nil || len(resp.Posts) == 0:
		v.Phase = PhaseEmpty
		v.Response = resp
	default:
		v.Phase = PhaseResults
		v.Response = resp
	}
	l.setLocked(v)
}

// setLocked stores v, wakes waiters and notifies subscribers. It must be
// called with l.mu held and releases it before any callback runs.
func (l *Listing) setLocked(v View) {
	l.view = v
	l.seq++
	seq := l.seq
	close(l.changed)
	l.changed = make(chan struct{})
	subs := make([]func(View), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()
	if seq <= l.delivered {
		// A newer view already reached subscribers.
		return
	}
	l.delivered = seq
	for _, fn := range subs {
		fn(v)
	}
}

// View returns the current snapshot.
func (l *Listing) View() View {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view
}

// Wait blocks until the current query has settled, that is until the view
// leaves the loading phase, or ctx is done.
func (l *Listing) Wait(ctx context.Context) (View, error) {
	for {
		l.mu.Lock()
		v, ch, closed := l.view, l.changed, l.closed
		l.mu.Unlock()

		if v.Phase != PhaseLoading || closed {
			return v, nil
		}
		select {
		case <-ctx.Done():
			return v, ctx.Err()
		case <-ch:
		}
	}
}

// Subscribe registers fn to receive new views in transition order. A view
// superseded before its turn to be delivered is skipped. fn runs
// synchronously with no listing lock held, so it may call View, but it
// must not call Submit or Close. The returned function removes it.
func (l *Listing) Subscribe(fn func(View)) (unsubscribe func()) {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// Close cancels any pending fetch and waits for it to return. Later
// Submits are ignored.
func (l *Listing) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	close(l.changed)
	l.changed = make(chan struct{})
	l.mu.Unlock()

	l.wg.Wait()
}
