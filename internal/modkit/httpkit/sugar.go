package httpkit

import (
	"net/http"

	phttp "telejoin/internal/platform/net/http"
)

// Get registers a no-body handler behind the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// Post registers a no-body handler behind the envelope adapter
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// PostForm registers a form bound handler under POST
func PostForm[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostForm(r, path, h)
}
