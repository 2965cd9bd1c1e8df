// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "telejoin/internal/platform/net/http"
	"telejoin/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Warn returns a 200 response with data and a warning
func Warn(data any, warning error) Response { return phttp.Warn(data, warning) }

// Form binds T from a form or multipart body before calling fn
func Form[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.FormHandler(fn)
}

// Call adapts a handler that reads no body
// warnings returned as errors keep their data
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.NoBodyHandler(fn)
}

// Handle lets you directly adapt a Response-returning function if you prefer
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}

// File reads the uploaded multipart file named field, capped at max bytes
func File(r *http.Request, field string, max int64) ([]byte, string, error) {
	return bind.File(r, field, max)
}
