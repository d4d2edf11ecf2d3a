package api

import "errors"

// ErrInvalidRequest marks request problems found before the codec runs,
// such as an unparsable query value or a malformed JSON body. Handlers
// answer it with a 400 and no cart error code.
var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string { return e.msg }

func (e invalidRequestError) Unwrap() error { return ErrInvalidRequest }

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}
