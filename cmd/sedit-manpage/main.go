package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/sedit/cmd/sedit"
	"github.com/arthur-debert/sedit/internal/version"
)

func main() {
	rootCmd := sedit.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SEDIT",
		Section: "1",
		Source:  "sedit " + version.Version,
		Manual:  "sedit manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
