package downloadmgr

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/minepkg/minelaunch/internals/progress"
)

// Filter finds planned files that need to be downloaded
type Filter struct {
	// Workers is the number of files hashed in parallel. Defaults to the number of CPUs
	Workers int
	// Abort is checked before every file. Returning true stops the scan with ErrScanAborted
	Abort func() bool
	// Sink receives hash check progress (optional)
	Sink progress.Sink
}

// Missing returns the planned files that are missing or corrupt, in input order.
// I/O errors never fail the scan, the file is just reported as missing.
func (f *Filter) Missing(ctx context.Context, planned []PlannedFile) ([]PlannedFile, error) {
	workers := f.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sink := f.Sink
	if sink == nil {
		sink = progress.Nop{}
	}

	keep := make([]bool, len(planned))
	var checked int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range planned {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if f.Abort != nil && f.Abort() {
				return ErrScanAborted
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			keep[i] = NeedsDownload(planned[i])

			done := atomic.AddInt64(&checked, 1)
			if done%64 == 0 || int(done) == len(planned) {
				sink.Progress(progress.Progress{Step: progress.StepHashCheck, Completed: int(done), Total: len(planned)})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	missing := make([]PlannedFile, 0)
	for i, k := range keep {
		if k {
			missing = append(missing, planned[i])
		}
	}
	return missing, nil
}
