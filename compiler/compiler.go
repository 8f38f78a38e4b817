// Package compiler contains the core of the compiler: a driver that
// lexes and parses a set of input files into one set of function
// declarations, shares one function-arity table across all of them,
// and then walks the resulting AST to produce System V AMD64 assembly.
//
// Grounded on the teacher's own compiler.go: a Unit/Compiler value
// owning the pipeline's state with a small public surface (New,
// SetDebug, Compile) and the three-step tokenize/build/emit shape,
// generalized here from a single math expression to a multi-file
// translation unit sharing one arity table (DESIGN.md's Open Question
// decision 6 on multi-file compilation).
package compiler

import (
	"context"
	"fmt"

	"github.com/ysuzuki/cgox/ast"
	"github.com/ysuzuki/cgox/lexer"
	"github.com/ysuzuki/cgox/parser"
	"github.com/ysuzuki/cgox/source"
)

// Unit holds all state for one compilation: the registered source
// files and the function-arity table every file's parser shares, so a
// call in a later file can see a function declared in an earlier one.
type Unit struct {
	set     *source.Set
	arities *parser.Arities
	debug   bool
}

// New returns an empty compilation unit.
func New() *Unit {
	return &Unit{set: source.NewSet(), arities: parser.NewArities()}
}

// SetDebug toggles whether generated assembly carries extra comments
// identifying which function each block of instructions belongs to,
// plus an "int 03" breakpoint at main's entry.
func (u *Unit) SetDebug(v bool) {
	u.debug = v
}

// AddFile reads path from disk and registers it for compilation.
func (u *Unit) AddFile(path string) error {
	_, err := u.set.AddFile(path)
	return err
}

// AddSource registers text under name without touching the
// filesystem, for tests and any in-memory entry point.
func (u *Unit) AddSource(name, text string) {
	u.set.AddString(name, text)
}

// Compile lexes and parses every registered file, in registration
// order, then generates assembly for every function declaration
// found across all of them. The first diagnostic encountered — lexical,
// syntactic, or semantic — is fatal and is returned as an error; there
// is no recovery and no multi-error reporting (§7).
func (u *Unit) Compile() (string, error) {
	var funcs []*ast.Node

	for _, file := range u.set.Files() {
		head, err := lexer.Lex(file)
		if err != nil {
			return "", err
		}

		p := parser.New(u.set, head, u.arities)
		fs, err := p.Parse()
		if err != nil {
			return "", err
		}
		funcs = append(funcs, fs...)
	}

	if len(funcs) == 0 {
		return "", fmt.Errorf("compiler: no function declarations found")
	}

	g := newGenerator(u.debug)
	return g.compile(funcs)
}

// CompileFiles is a convenience wrapper for callers that just want to
// turn a list of paths into assembly in one call, without needing to
// inspect per-file registration errors separately — the cmd/cgox
// compile subcommand, mainly. ctx is consulted only between file
// reads: compilation proper has no suspension points to cancel.
func CompileFiles(ctx context.Context, paths []string, debug bool) (string, error) {
	u := New()
	u.SetDebug(debug)
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := u.AddFile(p); err != nil {
			return "", err
		}
	}
	return u.Compile()
}
