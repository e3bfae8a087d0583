// package server contains middleware & handlers for the music library API
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, panic recovery, CORS, and rate limiting.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the music library service.
// Implementations own one route prefix each (users, playlists, songs, health).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path prefixes this handler serves
}

// handleExact registers fn for a fixed path under both its bare and
// trailing-slash spellings. ServeMux treats the two as distinct patterns
// and never redirects between them, so both are documented and served.
func handleExact(mux *http.ServeMux, method, path string, fn http.HandlerFunc) {
	mux.HandleFunc(method+" "+path, fn)
	mux.HandleFunc(method+" "+path+"/{$}", fn)
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and dispatch requests.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(pattern string, handler http.Handler)      // Handle registers a handler for a ServeMux pattern
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}
