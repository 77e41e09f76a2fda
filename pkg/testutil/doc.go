// Package testutil provides test helpers for sedit: an in-memory
// types.FS with error injection and operation counters, plus small
// file fixture helpers for tests that need the real filesystem.
package testutil
