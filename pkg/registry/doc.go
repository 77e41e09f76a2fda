// Package registry provides a generic, type-safe registry for
// named components. The transform package uses it to hold the
// mode-keyed set of content transformers, registered through
// init() functions.
package registry
