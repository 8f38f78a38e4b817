// Command cgox is the compiler's command-line entry point.
package main

import (
	"fmt"
	"os"

	"github.com/ysuzuki/cgox/cmd/cgox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cgox: %v\n", err)
		os.Exit(1)
	}
}
