package loop

import "errors"

// ErrClosed is returned by Do when the loop has stopped.
var ErrClosed = errors.New("loop: closed")
