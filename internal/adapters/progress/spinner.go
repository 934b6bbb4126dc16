package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/omamori-labs/omamori/internal/usecase"
)

// SpinnerSink reports pipeline steps. Interactive output animates a spinner
// on the current step; otherwise each step is printed on its own line.
type SpinnerSink struct {
	out         io.Writer
	interactive bool
	startTime   time.Time

	mu        sync.Mutex
	spinner   *spinner.Spinner
	lastStage string
}

// NewSpinnerSink creates a new spinner-based progress sink
func NewSpinnerSink(out io.Writer, interactive bool) *SpinnerSink {
	return &SpinnerSink{
		out:         out,
		interactive: interactive,
		startTime:   time.Now(),
	}
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastStage != "" && s.lastStage != event.Stage {
		s.stopSpinner()
	}
	s.lastStage = event.Stage

	if event.Stage == usecase.StageComplete {
		s.stopSpinner()
		color.New(color.FgGreen).Fprintf(s.out, "✓ %s in %s\n", event.Message, time.Since(s.startTime).Round(time.Millisecond))
		return
	}

	message := event.Message
	if event.Total > 0 {
		message = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, event.Message)
	}

	if !s.interactive || !event.Spinner {
		if message != "" {
			fmt.Fprintln(s.out, message)
		}
		return
	}

	if s.spinner == nil {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.spinner.Writer = s.out
		s.spinner.HideCursor = false
		_ = s.spinner.Color("cyan", "bold")
	}
	s.spinner.Suffix = " " + message
	if !s.spinner.Active() {
		s.spinner.Start()
	}
}

// Info prints an info message
func (s *SpinnerSink) Info(message string) {
	s.print(color.New(color.FgCyan), "ℹ️  "+message)
}

// Error prints an error message
func (s *SpinnerSink) Error(message string) {
	s.print(color.New(color.FgRed), "❌ "+message)
}

// Stop stops any running spinner
func (s *SpinnerSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopSpinner()
}

func (s *SpinnerSink) print(c *color.Color, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasActive := s.spinner != nil && s.spinner.Active()
	if wasActive {
		s.spinner.Stop()
	}

	c.Fprintln(s.out, message)

	if wasActive {
		s.spinner.Start()
	}
}

func (s *SpinnerSink) stopSpinner() {
	if s.spinner != nil && s.spinner.Active() {
		s.spinner.Stop()
	}
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
