package downloadmgr

import (
	"context"
	"log"
)

// DownloadAndVerify downloads a single file and checks its sha1 afterwards.
// Transfer errors are retried like in Run, a hash mismatch is not.
func (e *Engine) DownloadAndVerify(ctx context.Context, f PlannedFile) error {
	s := &session{total: 1}
	attempts := e.attempts()

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = e.transfer(ctx, s, f); err == nil {
			break
		}
		log.Printf("[WARN] attempt %d/%d of %s failed: %s", attempt, attempts, f.URL, err)
	}
	if err != nil {
		return &SessionFailedError{File: f, Attempts: attempts, Err: err}
	}

	if f.Sha1 == "" {
		return nil
	}
	return VerifyFile(f.Target, f.Sha1)
}
