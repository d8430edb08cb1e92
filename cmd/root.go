package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amiaverse/amiablog/internal/version"
)

func main() {
	var root = &cobra.Command{
		Use:     "amiablog",
		Short:   "Content-driven publishing engine with full-text search",
		Version: version.Version,
	}

	root.AddCommand(serveCMD(), exportCMD())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
