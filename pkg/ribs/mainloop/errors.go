package mainloop

import "errors"

// ErrAlreadyRunning is returned by Run when another Run is draining the loop.
var ErrAlreadyRunning = errors.New("mainloop: loop is already running")
