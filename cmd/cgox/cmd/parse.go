package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ysuzuki/cgox/ast"
	"github.com/ysuzuki/cgox/diag"
	"github.com/ysuzuki/cgox/lexer"
	"github.com/ysuzuki/cgox/parser"
	"github.com/ysuzuki/cgox/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and print its AST",
	Long: `parse runs the lexer and parser (including local-variable layout and
the on-demand type annotator) and prints a textual dump of the
resulting AST, one indented line per node, without generating assembly.

Example:
  cgox parse prog.c`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	set := source.NewSet()
	file, err := set.AddFile(args[0])
	if err != nil {
		return err
	}

	head, err := lexer.Lex(file)
	if err != nil {
		if e, ok := err.(*diag.Error); ok {
			return fmt.Errorf("%s", e.Format(colorEnabled(cmd)))
		}
		return err
	}

	funcs, err := parser.New(set, head, parser.NewArities()).Parse()
	if err != nil {
		if e, ok := err.(*diag.Error); ok {
			return fmt.Errorf("%s", e.Format(colorEnabled(cmd)))
		}
		return err
	}

	for _, fn := range funcs {
		dumpNode(fn, 0)
	}
	return nil
}

func dumpNode(n *ast.Node, depth int) {
	if n == nil {
		return
	}
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), n)

	for _, child := range []*ast.Node{n.Left, n.Right, n.Init, n.Enter, n.Routine, n.Branch, n.Else} {
		dumpNode(child, depth+1)
	}
	for _, c := range n.Children {
		dumpNode(c, depth+1)
	}
	for _, a := range n.Args {
		dumpNode(a, depth+1)
	}
	for _, s := range n.Stmts {
		dumpNode(s, depth+1)
	}
}
