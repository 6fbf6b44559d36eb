package downloadmgr

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrScanAborted is returned when the integrity scan was aborted (the active instance changed)
var ErrScanAborted = errors.New("integrity scan aborted")

// ErrNoFetcher is returned for urls with an unsupported scheme
var ErrNoFetcher = errors.New("no fetcher for url scheme")

// TransferError is a failed transfer attempt of a single file
type TransferError struct {
	URL string
	// StatusCode is 0 for errors that are not caused by a http status
	StatusCode int
	Err        error
}

func (e *TransferError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s failed: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s failed: %s", e.URL, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// SessionFailedError is returned when one file failed all attempts. No new transfers are started after it
type SessionFailedError struct {
	File     PlannedFile
	Attempts int
	Err      error
}

func (e *SessionFailedError) Error() string {
	return fmt.Sprintf("download of %s failed after %d attempts: %s", e.File.URL, e.Attempts, e.Err)
}

func (e *SessionFailedError) Unwrap() error { return e.Err }

// InvalidShaError is returned when the downloaded file's sha1 sum does not match the expected one
type InvalidShaError struct {
	FileName    string
	ExpectedSha string
	ActualSha   string
}

func (e *InvalidShaError) Error() string {
	return fmt.Sprintf(
		"File corrupted: %s sha1 is invalid.\n\texpected to be \"%s\"\n\tbut actually is \"%s\"\n",
		e.FileName,
		e.ExpectedSha,
		e.ActualSha,
	)
}
