package errs

import "errors"

var (
	InternalError   = errors.New("internal error")
	InvalidToken    = errors.New("invalid token")
	MissingIdentity = errors.New("token does not carry a user id")
)
