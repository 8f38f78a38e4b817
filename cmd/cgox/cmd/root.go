// Package cmd holds the Cobra command tree for the cgox CLI: one file
// per subcommand, grounded on CWBudde-go-dws/cmd/dwscript/cmd's shape
// (a package-level rootCmd, one init() per file registering its
// subcommand, and a single exported Execute()).
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set by build flags; it has no effect on the core
// compiler and exists only for `cgox version`/`cgox --version`.
var Version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:   "cgox",
	Short: "A single-pass compiler for a subset of C targeting x86-64",
	Long: `cgox compiles a subset of the C programming language directly to
GNU-assembler, Intel-syntax, x86-64 assembly for the System V AMD64
calling convention.

It supports int and char scalars, pointers, control flow (if/while/for),
functions of up to six arguments, and the usual arithmetic, bitwise,
shift, comparison, and logical operators. It does not implement struct,
union, typedef, enum, floating point, or the preprocessor.`,
	Version: Version,
}

// Execute runs the root command, dispatching to whichever subcommand
// the arguments name.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print extra diagnostic commentary")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable ANSI color in diagnostics")
}

// colorEnabled reports whether diagnostics should carry ANSI color:
// off under --no-color, and off when the NO_COLOR environment variable
// is set to anything non-empty.
func colorEnabled(cmd *cobra.Command) bool {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		return false
	}
	return os.Getenv("NO_COLOR") == ""
}

func verbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}
