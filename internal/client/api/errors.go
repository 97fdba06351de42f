package api

import "errors"

// ErrUnavailable covers transport failures and unparseable responses.
// The user sees a generic message; details go to the log.
var ErrUnavailable = errors.New("server unavailable")

// RejectedError is returned when the backend answered but reported
// success=false. Its message is the server's own and is shown verbatim.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

// genericRejection is used when the backend rejects without a message.
const genericRejection = "request was not successful"
