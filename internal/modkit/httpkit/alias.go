// Package httpkit provides handler and routing helpers that alias the platform http package
// modules use these so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "lawsearch/internal/platform/net/http"
	"lawsearch/internal/platform/net/http/bind"
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

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// JSON binds and validates a T body then calls fn
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.JSONHandler(fn)
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}

// URLParam reads a chi path parameter
func URLParam(r *http.Request, name string) string { return phttp.URLParam(r, name) }

// QueryString reads a query parameter with a default
func QueryString(r *http.Request, name, def string) string { return bind.QueryString(r, name, def) }

// QueryInt reads an integer query parameter with a default
func QueryInt(r *http.Request, name string, def int) (int, error) { return bind.QueryInt(r, name, def) }

// Validate runs struct validation on v
func Validate(v any) error { return bind.Validate(v) }
