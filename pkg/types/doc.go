// Package types defines the core types and interfaces used throughout sedit.
// This includes the EditOperation request model, per-mode parameter structs,
// backup and diff records, and the FS interface that the engine and the
// backup store operate against.
package types
