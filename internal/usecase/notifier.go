package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultNotifyTimeout bounds a single background push, retries included
const DefaultNotifyTimeout = 30 * time.Second

// Notifier delivers chat messages off the request path. A slow or failing
// messaging API is logged and never delays or fails the caller.
type Notifier struct {
	messenger Messenger
	timeout   time.Duration
	log       *slog.Logger
	wg        sync.WaitGroup
}

// NewNotifier creates a Notifier pushing through messenger
func NewNotifier(messenger Messenger, log *slog.Logger) *Notifier {
	return &Notifier{
		messenger: messenger,
		timeout:   DefaultNotifyTimeout,
		log:       log,
	}
}

// WithTimeout replaces the per-push timeout
func (n *Notifier) WithTimeout(d time.Duration) *Notifier {
	n.timeout = d
	return n
}

// Notify pushes text to a user in the background
func (n *Notifier) Notify(to, text string) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		start := time.Now()
		if err := n.messenger.Push(ctx, to, text); err != nil {
			n.log.Warn("failed to send notification", "to", to, "duration", time.Since(start), "error", err)
			return
		}
		n.log.Debug("notification sent", "to", to, "duration", time.Since(start))
	}()
}

// Wait blocks until every pending push has finished
func (n *Notifier) Wait() {
	n.wg.Wait()
}
