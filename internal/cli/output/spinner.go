package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates progress for one long-running step. Only meaningful in
// text mode on a terminal; callers skip it otherwise.
type Spinner struct {
	out    io.Writer
	msg    string
	styles *Styles
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewSpinner creates a spinner bound to the renderer's output stream.
func (r *Renderer) NewSpinner(msg string) *Spinner {
	return &Spinner{out: r.out, msg: msg, styles: r.styles}
}

// Start begins the animation. It must be paired with Success or Fail.
func (s *Spinner) Start() {
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				_, _ = fmt.Fprintf(s.out, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], s.msg)
				i++
			}
		}
	}()
}

// Success stops the spinner and replaces it with a checkmarked line.
func (s *Spinner) Success(msg string) {
	s.finish(s.styles.StatusSuccess.String(), msg)
}

// Fail stops the spinner and replaces it with a failure line.
func (s *Spinner) Fail(msg string) {
	s.finish(s.styles.StatusFailed.String(), msg)
}

func (s *Spinner) finish(icon, msg string) {
	if s.stop != nil {
		close(s.stop)
		s.wg.Wait()
		s.stop = nil
	}
	_, _ = fmt.Fprintf(s.out, "\r\x1b[2K%s %s\n", icon, msg)
}
