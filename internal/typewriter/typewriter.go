// Package typewriter reveals a text one character at a time on a timer.
//
// The displayed text is always a prefix of the target text. Changing the
// target restarts the reveal from the empty string, Skip jumps to the full
// target and Close stops any pending timer.
package typewriter

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"
)

// DefaultInterval is the delay between two revealed characters
const DefaultInterval = 50 * time.Millisecond

// ErrClosed is returned by Wait once the typewriter has been closed
var ErrClosed = errors.New("typewriter closed")

// Ticker delivers reveal ticks
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.Ticker.C }

// NewTimeTicker wraps time.NewTicker
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

// Option configures a Typewriter
type Option func(*Typewriter)

// WithInterval sets the delay between revealed characters
func WithInterval(d time.Duration) Option {
	return func(t *Typewriter) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithTicker replaces the ticker implementation
func WithTicker(f TickerFunc) Option {
	return func(t *Typewriter) {
		t.newTicker = f
	}
}

// WithOnChange registers a callback receiving every displayed text, in order.
// The callback must not call back into the Typewriter.
func WithOnChange(fn func(text string)) Option {
	return func(t *Typewriter) {
		t.onChange = fn
	}
}

// Typewriter reveals its target text rune by rune. Bytes that are not valid
// UTF-8 are revealed one at a time, unchanged.
type Typewriter struct {
	interval  time.Duration
	newTicker TickerFunc
	onChange  func(string)

	mu     sync.Mutex
	emitMu sync.Mutex
	target string
	shown  int // byte offset into target
	cancel context.CancelFunc
	done   chan struct{}
	closed chan struct{}
	isDead bool
}

// New creates a Typewriter with an empty, already complete, target
func New(opts ...Option) *Typewriter {
	t := &Typewriter{
		interval:  DefaultInterval,
		newTicker: NewTimeTicker,
		done:      make(chan struct{}),
		closed:    make(chan struct{}),
	}
	close(t.done)

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetText starts revealing text from the empty string. The pending reveal, if
// any, is cancelled. Setting the current target again does nothing.
func (t *Typewriter) SetText(text string) {
	t.mu.Lock()
	if t.isDead || text == t.target {
		t.mu.Unlock()
		return
	}

	t.stopLocked()
	t.target = text
	t.shown = 0
	t.done = make(chan struct{})

	if len(t.target) == 0 {
		close(t.done)
	} else {
		ctx, cancel := context.WithCancel(context.Background())
		t.cancel = cancel
		go t.run(ctx, t.target, t.done)
	}

	t.emitLocked("")
}

// Skip stops the reveal and shows the full target immediately
func (t *Typewriter) Skip() {
	t.mu.Lock()
	if t.isDead || t.shown == len(t.target) {
		t.mu.Unlock()
		return
	}

	t.stopLocked()
	t.shown = len(t.target)
	close(t.done)

	t.emitLocked(t.target)
}

// Close stops the pending timer. Later calls to SetText and Skip are ignored.
func (t *Typewriter) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.isDead {
		return
	}
	t.isDead = true
	t.stopLocked()
	close(t.closed)
}

// Text returns the currently displayed text
func (t *Typewriter) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target[:t.shown]
}

// Target returns the text being revealed
func (t *Typewriter) Target() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target
}

// Complete reports whether the full target is displayed
func (t *Typewriter) Complete() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shown == len(t.target)
}

// Done returns a channel closed once the current target is fully displayed
func (t *Typewriter) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Wait blocks until the current target is fully displayed
func (t *Typewriter) Wait(ctx context.Context) error {
	t.mu.Lock()
	done, closed := t.done, t.closed
	t.mu.Unlock()

	select {
	case <-done:
		return nil
	default:
	}

	select {
	case <-done:
		return nil
	case <-closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Typewriter) run(ctx context.Context, target string, done chan struct{}) {
	ticker := t.newTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}

		t.mu.Lock()
		if ctx.Err() != nil {
			t.mu.Unlock()
			return
		}

		_, size := utf8.DecodeRuneInString(target[t.shown:])
		t.shown += size
		text := target[:t.shown]
		complete := t.shown == len(target)
		if complete {
			close(done)
			t.stopLocked()
		}

		t.emitLocked(text)
		if complete {
			return
		}
	}
}

// stopLocked cancels the running reveal. t.mu must be held.
func (t *Typewriter) stopLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// emitLocked releases t.mu and delivers text to the callback. Holding emitMu
// across the handoff keeps callbacks in the same order as state changes.
func (t *Typewriter) emitLocked(text string) {
	if t.onChange == nil {
		t.mu.Unlock()
		return
	}

	t.emitMu.Lock()
	t.mu.Unlock()
	defer t.emitMu.Unlock()

	t.onChange(text)
}
