package modkit

import (
	"net/http"

	"lawsearch/internal/modkit/httpkit"
)

// Option adjusts how a module is named, mounted and wired
type Option func(*buildCfg)

type buildCfg struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	ports    any
	register func(httpkit.Router)
}

// WithName names the module for logs and the port registry
func WithName(name string) Option { return func(c *buildCfg) { c.name = name } }

// WithPrefix sets the route prefix under /api/v1
func WithPrefix(prefix string) Option { return func(c *buildCfg) { c.prefix = prefix } }

// WithMiddlewares appends middleware that only wraps this module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts hands a module the ports it needs from modules built before it
// T is declared by the receiving module, e.g. search/module.Needs
func WithPorts[T any](p T) Option { return func(c *buildCfg) { c.ports = p } }

// WithRegister mounts extra routes after the module's own
func WithRegister(fn func(httpkit.Router)) Option { return func(c *buildCfg) { c.register = fn } }
