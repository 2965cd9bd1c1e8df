package http

import (
	"net/http"

	"telejoin/internal/platform/net/http/bind"
)

// FormHandler binds and validates T from form fields before calling fn
func FormHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseForm[T](r)
		if err != nil {
			return Error(err)
		}
		return Result(fn(r, in))
	})
}

// NoBodyHandler calls fn without reading a request body and wraps the result
func NoBodyHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return Result(fn(r))
	})
}
