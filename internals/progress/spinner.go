package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/minepkg/minelaunch/internals/cmdlog"
)

// SpinnerSink is a spinner that can also just log text
type SpinnerSink struct {
	Spin    bool
	Spinner *spinner.Spinner
	out     io.Writer

	mu    sync.Mutex
	speed int64
}

// NewSpinnerSink returns a new SpinnerSink. With spin set to false every
// phase change is printed as a plain line instead.
func NewSpinnerSink(out io.Writer, spin bool) *SpinnerSink {
	s := &SpinnerSink{
		Spin:    spin,
		Spinner: spinner.New(spinner.CharSets[9], 300*time.Millisecond, spinner.WithWriter(out)),
		out:     out,
	}
	s.Spinner.Prefix = " "
	return s
}

func (s *SpinnerSink) Phase(step Step) {
	s.update(step.String() + " …")
	if s.Spin {
		s.Spinner.Start()
	}
}

func (s *SpinnerSink) Progress(p Progress) {
	if !s.Spin {
		return
	}
	s.mu.Lock()
	speed := s.speed
	s.mu.Unlock()

	text := fmt.Sprintf("%s %d / %d", p.Step, p.Completed, p.Total)
	if p.Step == StepDownload && speed > 0 {
		text += " (" + cmdlog.HumanRate(speed) + ")"
	}
	s.update(text)
}

func (s *SpinnerSink) Speed(bps int64) {
	s.mu.Lock()
	s.speed = bps
	s.mu.Unlock()
}

func (s *SpinnerSink) Finish(step Step, err error) {
	if s.Spin {
		s.Spinner.Stop()
	}
	if err != nil {
		fmt.Fprintf(s.out, "│ %s failed\n", step)
		return
	}
	fmt.Fprintf(s.out, "│ %s ✓\n", step)
}

// update will update the spinner text
func (s *SpinnerSink) update(t string) {
	if s.Spin {
		s.Spinner.Lock()
		s.Spinner.Suffix = " " + t
		s.Spinner.Unlock()
		return
	}
	fmt.Fprintln(s.out, "│ "+t)
}
