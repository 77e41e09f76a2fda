package main

import (
	"os"

	"github.com/arthur-debert/sedit/cmd/sedit"
	"github.com/arthur-debert/sedit/pkg/core"
)

func main() {
	// Register the built-in transformers before any command runs
	core.MustInitialize()

	os.Exit(sedit.Main())
}
