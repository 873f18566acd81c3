package errors

import "net/http"

// Messages carried in the error envelope, keyed by status.
const (
	MsgBadRequest         = "bad request"
	MsgNotFound           = "resource not found"
	MsgMethodNotAllowed   = "method not allowed"
	MsgUnprocessable      = "unprocessable"
	MsgInternalError      = "internal server error"
	MsgServiceUnavailable = "service unavailable"
)

// Message returns the envelope message for status.
func Message(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	case http.StatusServiceUnavailable:
		return MsgServiceUnavailable
	case http.StatusInternalServerError:
		return MsgInternalError
	default:
		return http.StatusText(status)
	}
}
