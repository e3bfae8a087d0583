// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository wraps a *sql.DB and exposes CRUD operations for one table:
//   - [UserRepository] : user accounts with unique-email enforcement
//   - [PlaylistRepository] : playlists with user-ownership foreign keys
//   - [SongRepository] : library songs with title substring search
//   - [PlaylistSongRepository] : the playlist-song junction table, including
//     transactional bulk add/remove
//
// Rows are identified by auto-increment integer ids assigned by SQLite on
// insert. Constraint failures from the driver are translated into the shared
// sentinel errors ([shared.ErrDuplicateEmail], [shared.ErrConstraint]) so
// callers can branch with errors.Is. Absent rows surface as
// [shared.ErrNotFound] from Get operations; Update and Delete of an absent id
// are silent no-ops, matching the HTTP contract.
package repositories
