package platform

import (
	"errors"
)

// ErrAlreadyRunning is an error returned when run can't be started because previous run of the same source is not finished yet.
var ErrAlreadyRunning = errors.New("seeding already running for this source")
