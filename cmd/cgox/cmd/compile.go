package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ysuzuki/cgox/compiler"
	"github.com/ysuzuki/cgox/diag"
)

var (
	compileOutput string
	compileDebug  bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file...]",
	Short: "Compile one or more C-subset source files to assembly",
	Long: `compile runs the full pipeline — lex, parse, annotate, generate — over
one or more input files, treating them as a single translation unit
that shares one function-arity table, and writes the resulting
GNU-assembler text to standard output (or to a file given with -o).

Examples:
  # Compile a single file, assembly printed to stdout
  cgox compile prog.c

  # Compile several files sharing one translation unit
  cgox compile util.c main.c

  # Write the assembly to a file instead of stdout
  cgox compile prog.c -o prog.s`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write assembly here instead of stdout")
	compileCmd.Flags().BoolVar(&compileDebug, "debug", false, "emit extra commentary identifying each function's assembly block and a breakpoint at main's entry")
}

func runCompile(cmd *cobra.Command, args []string) error {
	out, err := compiler.CompileFiles(cmd.Context(), args, compileDebug)
	if err != nil {
		if e, ok := err.(*diag.Error); ok {
			return fmt.Errorf("%s", e.Format(colorEnabled(cmd)))
		}
		return err
	}

	if verbose(cmd) {
		fmt.Fprintf(os.Stderr, "cgox: compiled %d file(s)\n", len(args))
	}

	if compileOutput == "" {
		_, err = fmt.Fprint(os.Stdout, out)
		return err
	}
	return os.WriteFile(compileOutput, []byte(out), 0o644)
}
