package parallel

import "errors"

// ErrClosed is returned by Run when the pool was closed before every job
// ran.
var ErrClosed = errors.New("parallel: worker pool closed")
