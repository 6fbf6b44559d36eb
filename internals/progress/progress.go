// Package progress defines how install phases report what they are doing.
package progress

import (
	"fmt"
	"sync"
)

// Step is one phase of an installation
type Step uint8

const (
	// StepFetchMetadata resolves versions and fetches asset indexes
	StepFetchMetadata Step = iota + 1
	// StepHashCheck verifies existing files
	StepHashCheck
	// StepDownload downloads missing files
	StepDownload
	// StepInstallModLoader runs the mod loader installer
	StepInstallModLoader
)

func (s Step) String() string {
	switch s {
	case StepFetchMetadata:
		return "fetch metadata"
	case StepHashCheck:
		return "verify files"
	case StepDownload:
		return "download"
	case StepInstallModLoader:
		return "install mod loader"
	}
	return fmt.Sprintf("step %d", s)
}

// Progress is a snapshot of a running phase
type Progress struct {
	Step      Step
	Completed int
	Total     int
	InFlight  int
}

// Sink receives progress notifications. Implementations must be safe for concurrent use
type Sink interface {
	Phase(step Step)
	Progress(p Progress)
	// Speed reports the current throughput in bytes per second
	Speed(bytesPerSecond int64)
	// Finish is called once per phase. err is nil on success
	Finish(step Step, err error)
}

// Nop discards everything
type Nop struct{}

func (Nop) Phase(Step) {}
func (Nop) Progress(Progress) {}
func (Nop) Speed(int64) {}
func (Nop) Finish(Step, error) {}

// Event is one notification captured by a Recorder
type Event struct {
	Kind     string
	Step     Step
	Progress Progress
	Speed    int64
	Err      error
}

// Recorder keeps every notification in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) Phase(step Step) { r.add(Event{Kind: "phase", Step: step}) }
func (r *Recorder) Progress(p Progress) { r.add(Event{Kind: "progress", Step: p.Step, Progress: p}) }
func (r *Recorder) Speed(bps int64) { r.add(Event{Kind: "speed", Speed: bps}) }
func (r *Recorder) Finish(s Step, e error) { r.add(Event{Kind: "finish", Step: s, Err: e}) }

// Events returns a copy of all recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Last returns the last recorded progress snapshot
func (r *Recorder) Last() (Progress, bool) {
	events := r.Events()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == "progress" {
			return events[i].Progress, true
		}
	}
	return Progress{}, false
}
