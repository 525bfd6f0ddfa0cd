package application

import "errors"

// ErrUnknownReport is returned for a report kind the service cannot render.
var ErrUnknownReport = errors.New("unknown report kind")
