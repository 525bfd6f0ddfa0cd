package application

import "errors"

// ErrInvalidCredentials is returned when the username/password pair does not
// match a known account. It deliberately does not reveal which part failed.
var ErrInvalidCredentials = errors.New("invalid credentials")
