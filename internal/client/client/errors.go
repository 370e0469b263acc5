package client

import (
	"errors"
	"fmt"
)

var (
	ErrSubmissionFailed      = errors.New("submission failed")
	ErrUnavailable           = errors.New("server unavailable")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// SubmissionError describes one failed backend call. StatusCode is zero when
// no HTTP response was received, in which case Unreachable is set.
type SubmissionError struct {
	Action      string
	StatusCode  int
	Unreachable bool
	Err         error
}

func (e *SubmissionError) Error() string {
	switch {
	case e.Unreachable:
		return fmt.Sprintf("%s: backend unreachable: %v", e.Action, e.Err)
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Action, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Action, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Action, e.Err)
	}
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) Is(target error) bool {
	switch target {
	case ErrSubmissionFailed:
		return true
	case ErrUnavailable:
		return e.Unreachable
	case ErrUnauthorized:
		return e.StatusCode == 401 || e.StatusCode == 403
	}
	return false
}
