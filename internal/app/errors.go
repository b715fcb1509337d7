package service

import "errors"

// ErrLocked is returned when a passphrase is configured and the context
// carries no unlocked session.
var ErrLocked = errors.New("journal locked")

// ErrSubmissionInFlight is returned when another request with the same
// submission ID has not finished saving. The caller should retry.
var ErrSubmissionInFlight = errors.New("submission in flight")
