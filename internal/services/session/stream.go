package session

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"interactsh/internal/domain"
)

// DefaultPollPeriod is the LogStream period used when none is given.
const DefaultPollPeriod = 5 * time.Second

// StreamState is the position of a Stream in its loop.
type StreamState int

const (
	// StateWaitingOnTimer: idle until the period elapses or Close is called.
	StateWaitingOnTimer StreamState = iota
	// StateWaitingOnServer: a poll is in flight.
	StateWaitingOnServer
	// StateTerminated: the stream yields nothing more.
	StateTerminated
)

func (s StreamState) String() string {
	switch s {
	case StateWaitingOnTimer:
		return "waiting_on_timer"
	case StateWaitingOnServer:
		return "waiting_on_server"
	default:
		return "terminated"
	}
}

// Item is one element of a Stream. Exactly one of Entry, Err and NoNewLogs
// is set.
type Item struct {
	Entry     domain.LogEntry
	Err       error
	NoNewLogs bool
}

// StreamOptions configure LogStream.
type StreamOptions struct {
	Period time.Duration
	// EmitNoNewLogs yields an Item with NoNewLogs set for polls that
	// returned nothing. Otherwise such polls are silent.
	EmitNoNewLogs bool
}

type pollSource interface {
	IsRegistered() bool
	Poll(ctx context.Context) ([]domain.LogEntry, error)
}

// Stream polls on a timer and yields the results one at a time. It ends
// when Close is called, when the context passed to Next is done, or when
// the session is found Unregistered before a poll. Poll errors are yielded
// inline and the stream carries on. A terminated stream cannot be restarted.
//
// Next must be called from one goroutine at a time; State and Close may be
// called from any goroutine.
type Stream struct {
	src       pollSource
	clock     clockwork.Clock
	period    time.Duration
	emitEmpty bool

	mu      sync.Mutex
	state   StreamState
	pending []Item

	closed    chan struct{}
	closeOnce sync.Once
}

// LogStream returns a stream over s. Nothing happens until Next is called.
func (s *Session) LogStream(opts StreamOptions) *Stream {
	return newStream(s, s.clock, opts)
}

func newStream(src pollSource, clock clockwork.Clock, opts StreamOptions) *Stream {
	period := opts.Period
	if period <= 0 {
		period = DefaultPollPeriod
	}
	return &Stream{
		src:       src,
		clock:     clock,
		period:    period,
		emitEmpty: opts.EmitNoNewLogs,
		state:     StateWaitingOnTimer,
		closed:    make(chan struct{}),
	}
}

// State returns the current state.
func (st *Stream) State() StreamState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Close terminates the stream. A poll already in flight completes but its
// results are dropped. Close is idempotent.
func (st *Stream) Close() {
	st.closeOnce.Do(func() { close(st.closed) })
	st.mu.Lock()
	st.terminateLocked()
	st.mu.Unlock()
}

func (st *Stream) terminateLocked() {
	st.state = StateTerminated
	st.pending = nil
}

func (st *Stream) terminate() {
	st.mu.Lock()
	st.terminateLocked()
	st.mu.Unlock()
}

// Next blocks until the next item is available. ok is false once the
// stream has terminated.
func (st *Stream) Next(ctx context.Context) (item Item, ok bool) {
	for {
		st.mu.Lock()
		if len(st.pending) > 0 {
			item = st.pending[0]
			st.pending = st.pending[1:]
			st.mu.Unlock()
			return item, true
		}
		if st.state == StateTerminated {
			st.mu.Unlock()
			return Item{}, false
		}
		timer := st.clock.NewTimer(st.period)
		st.mu.Unlock()

		select {
		case <-ctx.Done():
			timer.Stop()
			st.terminate()
			return Item{}, false
		case <-st.closed:
			timer.Stop()
			return Item{}, false
		case <-timer.Chan():
		}

		if !st.beginPoll() {
			return Item{}, false
		}
		entries, err := st.src.Poll(ctx)
		st.finishPoll(ctx, entries, err)
	}
}

// beginPoll moves to StateWaitingOnServer unless the stream was closed or
// the session is no longer registered.
func (st *Stream) beginPoll() bool {
	registered := st.src.IsRegistered()
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.state == StateTerminated {
		return false
	}
	if !registered {
		st.terminateLocked()
		return false
	}
	st.state = StateWaitingOnServer
	return true
}

func (st *Stream) finishPoll(ctx context.Context, entries []domain.LogEntry, err error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.state == StateTerminated {
		return
	}
	switch {
	case err != nil && (IsTerminal(err) || ctx.Err() != nil):
		st.terminateLocked()
		return
	case err != nil:
		st.pending = append(st.pending, Item{Err: err})
	case len(entries) == 0:
		if st.emitEmpty {
			st.pending = append(st.pending, Item{NoNewLogs: true})
		}
	default:
		for _, e := range entries {
			st.pending = append(st.pending, Item{Entry: e})
		}
	}
	st.state = StateWaitingOnTimer
}
