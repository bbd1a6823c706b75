// Package models turns raw site configuration records into Repository,
// Archive and Item values.
//
// Records may use camelCase or snake_case keys; they are normalized with
// the casing package before decoding. Optional fields receive defaults:
//
//	slug        percent-encoded name
//	description ""
//	avatar      assets/images/default-avatar.png
//	filetype    "unknown"
//	collections empty slices
//
// One trailing slash is stripped from every URL. A record that cannot be
// decoded still produces a value, with Error set to true; callers must check
// Error before trusting any other field.
//
// Parents own their children by ID. Use a Builder to assemble an immutable
// Index:
//
//	b := models.NewBuilder()
//	repoID, err := b.AddRepository(raw)
//	...
//	idx := b.Build()
//	archive, ok := idx.FindArchive("papers", "2024")
package models
