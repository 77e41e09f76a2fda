// Package transform defines the Transformer interface and the
// mode-keyed registry the edit engine dispatches through. Concrete
// transformers live in subpackages (substitute, lineedit, columns,
// literal, script) and register themselves at init; importing a
// subpackage is what makes its mode available.
package transform
