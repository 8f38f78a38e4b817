// Package ast defines the compiler's abstract syntax tree.
//
// The data model is deliberately a single flat struct tagged by Kind,
// not a family of per-kind node types behind an interface — this
// mirrors the original Rust implementation's single Node struct with
// optional fields for every shape, and is mandated by the
// specification's data model rather than being an idiomatic-Go choice
// that was skipped. Desugared nodes (synthetic assigns, anonymous
// temporaries) reuse the same struct and simply leave most fields at
// their zero value.
package ast

import (
	"fmt"
	"strings"

	"github.com/ysuzuki/cgox/token"
	"github.com/ysuzuki/cgox/types"
)

// Kind tags what a Node represents.
type Kind int

// Node kinds, exhaustive per the specification's data model.
const (
	NumNd Kind = iota
	LvarNd
	AddrNd
	DerefNd
	AssignNd
	CommaNd

	AddNd
	SubNd
	MulNd
	DivNd
	ModNd

	BitAndNd
	BitOrNd
	BitXorNd
	BitNotNd

	LShiftNd
	RShiftNd

	EqNd
	NEqNd
	LThanNd
	LEqNd

	LogAndNd
	LogOrNd
	LogNotNd

	IfNd
	WhileNd
	ForNd
	ReturnNd
	BlockNd

	FuncNd
	FuncDecNd

	// IndexNd is reserved: array *types* are represented throughout the
	// type model and array locals reserve the right amount of frame
	// space, but nothing in the grammar ever constructs this node kind
	// (there is no "ident '[' expr ']'" production in primary). It
	// exists so the generator has a named, explicitly-erroring case to
	// fall into rather than silently mishandling an unanticipated kind.
	IndexNd
)

var kindNames = map[Kind]string{
	NumNd: "NumNd", LvarNd: "LvarNd", AddrNd: "AddrNd", DerefNd: "DerefNd",
	AssignNd: "AssignNd", CommaNd: "CommaNd",
	AddNd: "AddNd", SubNd: "SubNd", MulNd: "MulNd", DivNd: "DivNd", ModNd: "ModNd",
	BitAndNd: "BitAndNd", BitOrNd: "BitOrNd", BitXorNd: "BitXorNd", BitNotNd: "BitNotNd",
	LShiftNd: "LShiftNd", RShiftNd: "RShiftNd",
	EqNd: "EqNd", NEqNd: "NEqNd", LThanNd: "LThanNd", LEqNd: "LEqNd",
	LogAndNd: "LogAndNd", LogOrNd: "LogOrNd", LogNotNd: "LogNotNd",
	IfNd: "IfNd", WhileNd: "WhileNd", ForNd: "ForNd", ReturnNd: "ReturnNd", BlockNd: "BlockNd",
	FuncNd: "FuncNd", FuncDecNd: "FuncDecNd", IndexNd: "IndexNd",
}

// String renders a kind by name, for debug dumps and error messages.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownNd"
}

// Node is the single AST node shape. Most fields are meaningful only
// for particular kinds; see the field comments.
type Node struct {
	Kind  Kind
	Token *token.Token // source token, for diagnostics; synthetic nodes may carry the token of the construct that produced them
	Type  *types.Type  // result type, set at most once by the annotator

	// generic binary/unary slots
	Left  *Node
	Right *Node

	// control-flow slots, used only by if/while/for
	Init    *Node // for-loop init clause
	Enter   *Node // condition shared by if/while/for
	Routine *Node // for-loop step clause
	Branch  *Node // then-branch (if) / body (while, for)
	Else    *Node // else-branch (if only)

	Children []*Node // block statements
	Args     []*Node // call arguments / declared parameters
	Stmts    []*Node // function body statements

	Value    int // NumNd literal value
	HasValue bool

	Offset    int // LvarNd frame offset
	HasOffset bool

	Name string // identifier: LvarNd, FuncNd, FuncDecNd

	MaxOffset int // FuncDecNd: total frame size required
}

// NewNum builds a numeric-literal leaf.
func NewNum(val int, tok *token.Token) *Node {
	return &Node{Kind: NumNd, Value: val, HasValue: true, Token: tok}
}

// NewLvar builds a local-variable-reference leaf at a known frame offset.
func NewLvar(name string, offset int, typ types.Type, tok *token.Token) *Node {
	return &Node{Kind: LvarNd, Name: name, Offset: offset, HasOffset: true, Type: &typ, Token: tok}
}

// NewUnary builds a single-child node of the given kind.
func NewUnary(kind Kind, left *Node, tok *token.Token) *Node {
	return &Node{Kind: kind, Left: left, Token: tok}
}

// NewBinary builds a two-child node of the given kind.
func NewBinary(kind Kind, left, right *Node, tok *token.Token) *Node {
	return &Node{Kind: kind, Left: left, Right: right, Token: tok}
}

// NewBlock builds a block of statements.
func NewBlock(children []*Node) *Node {
	return &Node{Kind: BlockNd, Children: children}
}

// NewCtrl builds an if/while/for control node. kind must be one of
// IfNd, WhileNd, ForNd; any other kind is an internal invariant
// violation and panics, mirroring the source's own hard check.
func NewCtrl(kind Kind, init, enter, routine, branch, els *Node) *Node {
	if kind != IfNd && kind != WhileNd && kind != ForNd {
		panic(fmt.Sprintf("ast: NewCtrl called with non-control kind %s", kind))
	}
	return &Node{Kind: kind, Init: init, Enter: enter, Routine: routine, Branch: branch, Else: els}
}

// NewFunc builds a call-site node.
func NewFunc(name string, args []*Node, tok *token.Token) *Node {
	return &Node{Kind: FuncNd, Name: name, Args: args, Token: tok}
}

// NewFuncDecl builds a function-declaration node.
func NewFuncDecl(name string, args []*Node, stmts []*Node, maxOffset int, tok *token.Token) *Node {
	return &Node{Kind: FuncDecNd, Name: name, Args: args, Stmts: stmts, MaxOffset: maxOffset, Token: tok}
}

// Walk visits n and every reachable descendant in a fixed order,
// matching the order the original implementation's debug printer used:
// left, right, init, enter, routine, branch, else, children, args, stmts.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	Walk(n.Left, visit)
	Walk(n.Right, visit)
	Walk(n.Init, visit)
	Walk(n.Enter, visit)
	Walk(n.Routine, visit)
	Walk(n.Branch, visit)
	Walk(n.Else, visit)
	for _, c := range n.Children {
		Walk(c, visit)
	}
	for _, a := range n.Args {
		Walk(a, visit)
	}
	for _, s := range n.Stmts {
		Walk(s, visit)
	}
}

// String gives a one-line summary of n, used by debug dumps.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(n.Kind.String())
	if n.Name != "" {
		fmt.Fprintf(&b, "(%s)", n.Name)
	}
	if n.HasValue {
		fmt.Fprintf(&b, "(%d)", n.Value)
	}
	if n.HasOffset {
		fmt.Fprintf(&b, "[offset=%d]", n.Offset)
	}
	return b.String()
}
