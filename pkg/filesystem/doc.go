// Package filesystem provides filesystem implementations for sedit.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero adapter, plus the
// atomic write primitive the engine and backup store build on.
package filesystem
