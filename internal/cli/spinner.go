package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/spiramirabilis/pkg/pipeline"
)

var spinnerFrames = []string{"◜", "◠", "◝", "◞", "◡", "◟"}

// Spinner animates on stderr while figures are drawn. For batches it also
// counts finished and failed figures as outcomes arrive.
type Spinner struct {
	label string
	total int

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}

	mu       sync.Mutex
	finished int
	failed   int
	width    int
}

// newSpinner returns a spinner showing label. A positive total adds a
// "finished/total" counter advanced by Record. The spinner stops when ctx is
// cancelled.
func newSpinner(ctx context.Context, label string, total int) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		label:   label,
		total:   total,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Record counts one finished figure. It matches pipeline.Options.Progress
// and may be called from several goroutines.
func (s *Spinner) Record(o pipeline.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished++
	if o.Err != nil {
		s.failed++
	}
}

// status is the text drawn next to the frame.
func (s *Spinner) status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.total <= 0 {
		return s.label + "..."
	}
	msg := fmt.Sprintf("%s %d/%d", s.label, s.finished, s.total)
	if s.failed > 0 {
		msg += fmt.Sprintf(" (%d failed)", s.failed)
	}
	return msg
}

// Start begins the animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				msg := s.status()
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", styleSpinner.Render(frame), StyleDim.Render(msg))
				s.mu.Lock()
				s.width = max(s.width, len(msg))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and clears the line. It may be called more than
// once.
func (s *Spinner) Stop() {
	s.cancel()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", max(s.width, len(s.label)+16)+2))
}

// StopWithError stops the spinner and prints message as an error.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context is done.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
