package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a failed gateway call.
type Kind string

const (
	// KindValidation: input rejected before any request was sent.
	KindValidation Kind = "validation"
	// KindHTTP: the server answered with a non-2xx status.
	KindHTTP Kind = "http"
	// KindServer: a 2xx answer that carries an {error} payload instead of a result.
	KindServer Kind = "server"
	// KindTransport: the request never got an answer.
	KindTransport Kind = "transport"
	// KindDecode: the answer body was not the expected shape.
	KindDecode Kind = "decode"
	// KindUnknownType: a response discriminator the client does not know.
	KindUnknownType Kind = "unknown_type"
)

// Error is the failure half of every gateway result.
type Error struct {
	Kind    Kind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a gateway error, or "" for other errors.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}

func validationErr(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

func httpStatusMessage(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}
