// Package models defines the domain entities of the music library service.
//
// Persistent entities map one-to-one onto the relational schema:
//   - [User] : accounts with a bcrypt password hash (never serialized)
//   - [Playlist] : named song collections owned by a user
//   - [Song] : library tracks with optional album and duration
//   - [PlaylistSong] : junction rows linking playlists to songs with an order field
//
// [PlaylistExport] is a transient shape used by the formatter package to render
// a playlist and its songs to CSV, Markdown, or plain text.
//
// Each entity carries a Validate method checking the invariants the database
// cannot express; repositories call it before every insert or update.
package models
