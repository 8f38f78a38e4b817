package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ysuzuki/cgox/diag"
	"github.com/ysuzuki/cgox/lexer"
	"github.com/ysuzuki/cgox/source"
	"github.com/ysuzuki/cgox/token"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file and print the resulting tokens",
	Long: `lex runs only the lexical-analysis stage and prints each token it
produces, one per line. It is useful for debugging the scanner without
invoking the parser or code generator.

Examples:
  # Tokenize a file
  cgox lex prog.c

  # Tokenize and show each token's source position
  cgox lex --show-pos prog.c`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show each token's file:line:col")
}

func runLex(cmd *cobra.Command, args []string) error {
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

	for tok := head.Next; tok != nil; tok = tok.Next {
		if showPos {
			fmt.Printf("%s  %s\n", tok.Pos.String(), tok)
		} else {
			fmt.Println(tok)
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}
