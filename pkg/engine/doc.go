// Package engine runs edit operations end to end: validate, snapshot,
// transform, write, report. Each stage can fail independently and the
// result records which stage did.
//
// Operations against the same target path are serialized on a per-path
// lock; distinct paths proceed in parallel. Transformers run under an
// enforced timeout so a hung script cannot hold a path lock forever.
package engine
