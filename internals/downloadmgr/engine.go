package downloadmgr

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/minepkg/minelaunch/internals/progress"
)

const (
	// DefaultAttempts is how often a file is tried before the session fails
	DefaultAttempts = 5
	// DefaultConcurrency is the default number of parallel transfers
	DefaultConcurrency = 64
	// DefaultTransferSize is the chunk size used to copy response bodies to disk
	DefaultTransferSize = 32 * 1024
	// RateLimitFloor is the smallest MaxRate that enables rate limiting
	RateLimitFloor = 1024

	reportInterval = 100 * time.Millisecond
	speedWindow    = 2 * time.Second
	rateBackoff    = 10 * time.Millisecond
)

// Result is the outcome of a download session
type Result struct {
	Total   int
	Fetched int
	Failed  int
	// Skipped files were never started because the session failed
	Skipped int
	Bytes   int64
}

// Engine downloads planned files
type Engine struct {
	Fetchers Fetchers
	Sink     progress.Sink
	// MaxConcurrency is the maximum number of parallel transfers
	MaxConcurrency int
	// MaxRate limits the throughput in bytes per second. Values up to RateLimitFloor disable the limit
	MaxRate int64
	// Attempts per file. Defaults to DefaultAttempts
	Attempts int
	// Transfer is the chunk size in bytes
	Transfer int
}

// session is the state shared by all transfers of one Run
type session struct {
	total     int
	completed atomic.Int64
	inFlight  atomic.Int64
	failed    atomic.Int64
	skipped   atomic.Int64
	bytes     atomic.Int64
	// window counts bytes since the last speed tick
	window  atomic.Int64
	ceiling int64
	aborted atomic.Bool
}

func (e *Engine) attempts() int {
	if e.Attempts <= 0 {
		return DefaultAttempts
	}
	return e.Attempts
}

func (e *Engine) sink() progress.Sink {
	if e.Sink == nil {
		return progress.Nop{}
	}
	return e.Sink
}

// Run downloads all files. Completion order is not defined.
// When a file fails all attempts, files that did not start yet are skipped,
// running transfers finish and a SessionFailedError is returned.
func (e *Engine) Run(ctx context.Context, files []PlannedFile) (*Result, error) {
	s := &session{total: len(files)}
	if e.MaxRate > RateLimitFloor {
		s.ceiling = e.MaxRate * int64(speedWindow/time.Second)
	}

	concurrency := e.MaxConcurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	telemetryCtx, stopTelemetry := context.WithCancel(ctx)
	telemetryDone := make(chan struct{}, 2)
	go e.report(telemetryCtx, s, telemetryDone)
	go e.account(telemetryCtx, s, telemetryDone)

	g := errgroup.Group{}
	g.SetLimit(concurrency)
	for i := range files {
		if s.aborted.Load() || ctx.Err() != nil {
			s.skipped.Add(int64(len(files)-i))
			break
		}
		f := files[i]
		g.Go(func() error {
			return e.download(ctx, s, f)
		})
	}
	err := g.Wait()

	stopTelemetry()
	<-telemetryDone
	<-telemetryDone
	e.publish(s)

	result := &Result{
		Total:   s.total,
		Fetched: int(s.completed.Load()),
		Failed:  int(s.failed.Load()),
		Skipped: int(s.skipped.Load()),
		Bytes:   s.bytes.Load(),
	}
	if err != nil {
		return result, err
	}
	return result, ctx.Err()
}

// download tries one file until it succeeds or runs out of attempts
func (e *Engine) download(ctx context.Context, s *session, f PlannedFile) error {
	if s.aborted.Load() {
		s.skipped.Add(1)
		return nil
	}
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	attempts := e.attempts()
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = e.transfer(ctx, s, f); err == nil {
			s.completed.Add(1)
			return nil
		}
		log.Printf("[WARN] attempt %d/%d of %s failed: %s", attempt, attempts, f.URL, err)
	}

	s.failed.Add(1)
	s.aborted.Store(true)
	return &SessionFailedError{File: f, Attempts: attempts, Err: err}
}

// transfer streams the file to disk in chunks
func (e *Engine) transfer(ctx context.Context, s *session, f PlannedFile) error {
	fetcher, err := e.Fetchers.For(f.URL)
	if err != nil {
		return &TransferError{URL: f.URL, Err: err}
	}
	body, err := fetcher.Fetch(ctx, f.URL)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(f.Target), os.ModePerm); err != nil {
		return err
	}
	dest, err := os.Create(f.Target)
	if err != nil {
		return err
	}

	chunk := e.Transfer
	if chunk <= 0 {
		chunk = DefaultTransferSize
	}
	buf := make([]byte, chunk)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if err := s.waitForWindow(ctx); err != nil {
				dest.Close()
				return err
			}
			if _, err := dest.Write(buf[:n]); err != nil {
				dest.Close()
				return errors.Wrapf(err, "could not write %s", f.Target)
			}
			s.bytes.Add(int64(n))
			s.window.Add(int64(n))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			dest.Close()
			return &TransferError{URL: f.URL, Err: readErr}
		}
	}
	return dest.Close()
}

// waitForWindow blocks while the bytes of the current window exceed the ceiling
func (s *session) waitForWindow(ctx context.Context) error {
	if s.ceiling == 0 {
		return nil
	}
	for s.window.Load() >= s.ceiling {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(rateBackoff):
		}
	}
	return nil
}

// report publishes progress at a fixed cadence
func (e *Engine) report(ctx context.Context, s *session, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.publish(s)
		}
	}
}

func (e *Engine) publish(s *session) {
	e.sink().Progress(progress.Progress{
		Step:      progress.StepDownload,
		Completed: int(s.completed.Load()),
		Total:     s.total,
		InFlight:  int(s.inFlight.Load()),
	})
}

// account resets the rate window and reports the throughput
func (e *Engine) account(ctx context.Context, s *session, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()
	ticker := time.NewTicker(speedWindow)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			transferred := s.window.Swap(0)
			e.sink().Speed(transferred / int64(speedWindow/time.Second))
		}
	}
}
