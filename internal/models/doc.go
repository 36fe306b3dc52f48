// Package models defines domain entities and persistence interfaces for the course video toolkit.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs describing local files and remote resources
//   - [Video] : A local video file with probed duration
//   - [FolderTotal] : Aggregated duration for one folder of a course tree
//   - [DuplicateGroup] : Paths sharing a content digest
//   - [Playlist] / [PlaylistVideo] : Channel playlist metadata and entries
//   - [RenameEntry] : One row of a rename manifest
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [UploadJob] : A bulk upload run with resume index and status transitions
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
