package storage

import "errors"

// ErrWrite wraps filesystem failures during audit writes.
var ErrWrite = errors.New("audit write failed")
