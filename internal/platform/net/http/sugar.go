package http

import "net/http"

// GetJSON mounts a no-body handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, NoBodyHandler(h))
}

// PostForm mounts a form-bound handler for POST
func PostForm[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, FormHandler(h))
}
