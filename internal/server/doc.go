// Package server provides HTTP routing, middleware, and the request handlers
// for the music library API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. Handlers
// register method-qualified patterns ("GET /songs/{id}") and read path
// parameters with [http.Request.PathValue].
//
// # Handlers
//
// Each entity gets one [Handler] implementation owning a route prefix:
//   - [UserHandler] : /users/ including the password-change endpoint
//   - [PlaylistHandler] : /playlists/ including playlist-song association,
//     bulk add/remove, and export
//   - [SongHandler] : /songs/ including title search
//   - [HealthHandler] : /health
//
// Request bodies are decoded into typed request structs and validated with
// go-playground/validator before any database access. Responses are JSON:
// mutation acknowledgments as {"msg": ...}, failures as {"error": ...},
// reads as the entity itself. A get-by-id on an absent row answers 200 with
// a JSON null body rather than 404; update and delete of an absent id are
// acknowledged no-ops.
package server
