package sync

import (
	"errors"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Bulk Job Errors
// ---------------------------------------------------------------------------

var (
	// ErrJobNotFound means the platform reports no current bulk job
	ErrJobNotFound = errors.New("sync: no current bulk job")
	// ErrPollTimeout means the bulk job did not finish within the bounded
	// polling window; the external job may still complete later
	ErrPollTimeout = errors.New("sync: bulk job polling exceeded max attempts")
	// ErrMissingDownloadURL means the job completed without a result URL,
	// which happens when the query matched no records
	ErrMissingDownloadURL = errors.New("sync: bulk job completed without download url")
)

// SubmissionError is returned when the platform rejects a bulk query at
// submission time. The platform's field-level messages are carried verbatim.
type SubmissionError struct {
	Messages []string
}

// Error implements the error interface
func (e *SubmissionError) Error() string {
	return fmt.Sprintf("sync: bulk query rejected: %s", strings.Join(e.Messages, "; "))
}

// JobFailedError is returned when a submitted bulk job ends in FAILED state.
type JobFailedError struct {
	JobID     string
	ErrorCode string
}

// Error implements the error interface
func (e *JobFailedError) Error() string {
	return fmt.Sprintf("sync: bulk job %s failed with code %s", e.JobID, e.ErrorCode)
}

// ---------------------------------------------------------------------------
// BulkJobStatus represents the lifecycle state of a bulk export job
// ---------------------------------------------------------------------------

// BulkJobStatus represents the lifecycle state of a bulk export job,
// taken verbatim from the platform.
type BulkJobStatus string

const (
	// BulkJobStatusCreated indicates the job was accepted but not started
	BulkJobStatusCreated BulkJobStatus = "CREATED"
	// BulkJobStatusRunning indicates the export is in progress
	BulkJobStatusRunning BulkJobStatus = "RUNNING"
	// BulkJobStatusCompleted indicates the export finished and a result is available
	BulkJobStatusCompleted BulkJobStatus = "COMPLETED"
	// BulkJobStatusFailed indicates the export failed platform-side
	BulkJobStatusFailed BulkJobStatus = "FAILED"
	// BulkJobStatusCanceled indicates the job was canceled platform-side
	BulkJobStatusCanceled BulkJobStatus = "CANCELED"
	// BulkJobStatusExpired indicates the job expired before running
	BulkJobStatusExpired BulkJobStatus = "EXPIRED"
)

// IsValid returns true if the status is a known platform status
func (s BulkJobStatus) IsValid() bool {
	switch s {
	case BulkJobStatusCreated, BulkJobStatusRunning, BulkJobStatusCompleted,
		BulkJobStatusFailed, BulkJobStatusCanceled, BulkJobStatusExpired:
		return true
	default:
		return false
	}
}

// String returns the string representation of BulkJobStatus
func (s BulkJobStatus) String() string {
	return string(s)
}

// IsTerminal returns true once the job can no longer make progress
func (s BulkJobStatus) IsTerminal() bool {
	switch s {
	case BulkJobStatusCompleted, BulkJobStatusFailed,
		BulkJobStatusCanceled, BulkJobStatusExpired:
		return true
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// BulkJob
// ---------------------------------------------------------------------------

// BulkJob is the platform's view of an export job at one poll.
type BulkJob struct {
	// ID is the platform-assigned job id
	ID string
	// Status is the current lifecycle state
	Status BulkJobStatus
	// ErrorCode is set when Status is FAILED
	ErrorCode string
	// URL is the transient download location, set when Status is COMPLETED
	// and the query matched at least one record
	URL string
}

// Result validates a terminal job and returns its download URL.
// A failed, canceled or expired job returns JobFailedError; a completed
// job without a URL returns ErrMissingDownloadURL.
func (j *BulkJob) Result() (string, error) {
	switch j.Status {
	case BulkJobStatusCompleted:
		if j.URL == "" {
			return "", ErrMissingDownloadURL
		}
		return j.URL, nil
	case BulkJobStatusFailed, BulkJobStatusCanceled, BulkJobStatusExpired:
		code := j.ErrorCode
		if code == "" {
			code = j.Status.String()
		}
		return "", &JobFailedError{JobID: j.ID, ErrorCode: code}
	default:
		return "", fmt.Errorf("sync: bulk job %s is not terminal (status %s)", j.ID, j.Status)
	}
}
