// Package parser implements the recursive-descent parser: token list in,
// one AST root per top-level function declaration out. It also owns the
// per-function locals table, the process-wide declared-function arity
// table, and the on-demand type annotator described alongside it in the
// design notes, since all three are interleaved with parsing rather than
// separate passes.
//
// Grounded on the original implementation's parser.rs for grammar shape
// and desugarings, and on the teacher's habit of keeping a compiler
// stage's state as fields on a struct rather than package globals.
package parser

import (
	"fmt"

	"github.com/ysuzuki/cgox/ast"
	"github.com/ysuzuki/cgox/diag"
	"github.com/ysuzuki/cgox/source"
	"github.com/ysuzuki/cgox/stack"
	"github.com/ysuzuki/cgox/token"
	"github.com/ysuzuki/cgox/types"
)

// Arities is the process-wide table of declared function names to their
// argument count. It persists across every file in one compilation (a
// later file's calls must see an earlier file's declarations), so it is
// constructed once and shared by every *Parser in that compilation.
type Arities struct {
	table map[string]int
}

// NewArities returns an empty arity table.
func NewArities() *Arities {
	return &Arities{table: make(map[string]int)}
}

// Lookup reports the declared arity of name, if any.
func (a *Arities) Lookup(name string) (int, bool) {
	n, ok := a.table[name]
	return n, ok
}

// Declare records name's argument count. Call sites are responsible for
// rejecting a redeclaration before calling this.
func (a *Arities) Declare(name string, n int) {
	a.table[name] = n
}

// localInfo is what the locals table remembers about one name.
type localInfo struct {
	offset int
	typ    types.Type
}

// Parser holds all state for one file's worth of recursive descent: the
// current token cursor, the shared arity table, the current function's
// locals table and frame watermark, and a nesting tracker for
// brace/paren matching.
type Parser struct {
	set     *source.Set
	cur     *token.Token
	arities *Arities

	locals    map[string]localInfo
	maxOffset int
	tmpSeq    int

	nesting *stack.Stack[*token.Token]
}

// New returns a Parser positioned at the first real token after head (the
// head sentinel itself is never consumed).
func New(set *source.Set, head *token.Token, arities *Arities) *Parser {
	return &Parser{
		set:     set,
		cur:     head.Next,
		arities: arities,
		nesting: stack.New[*token.Token](),
	}
}

// Parse consumes the whole token stream and returns one AST root per
// top-level function declaration. The first diagnostic encountered is
// fatal: parsing does not attempt to recover and continue.
func (p *Parser) Parse() (funcs []*ast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*diag.Error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	for !p.atEOF() {
		funcs = append(funcs, p.funcDecl())
	}
	return funcs, nil
}

// errorTok raises the one fatal diagnostic this parse will ever produce,
// anchored at tok's position. Every grammar function that detects a
// syntax or semantic error calls this instead of returning an error,
// since threading an error return through ~20 mutually recursive grammar
// functions would obscure the grammar shape for no behavioral gain: the
// first error is always fatal (§7), so there is nothing for an
// intermediate caller to do with it except propagate it unchanged.
func (p *Parser) errorTok(tok *token.Token, format string, args ...interface{}) {
	panic(diag.FromSet(p.set, tok.Pos, format, args...))
}

// --- token cursor helpers ---

func (p *Parser) atEOF() bool {
	return p.cur.Is(token.EOF)
}

func (p *Parser) advance() *token.Token {
	t := p.cur
	if t.Next != nil {
		p.cur = t.Next
	}
	return t
}

func (p *Parser) is(k token.Type) bool {
	return p.cur.Is(k)
}

func (p *Parser) consume(k token.Type) bool {
	if p.is(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Type) *token.Token {
	if !p.is(k) {
		p.errorTok(p.cur, "expected %q but found %s", string(k), p.cur)
	}
	return p.advance()
}

func (p *Parser) consumeIdent() (string, bool) {
	if p.is(token.IDENT) {
		return p.advance().Literal, true
	}
	return "", false
}

func (p *Parser) expectIdent() (string, *token.Token) {
	if !p.is(token.IDENT) {
		p.errorTok(p.cur, "expected an identifier but found %s", p.cur)
	}
	tok := p.advance()
	return tok.Literal, tok
}

func (p *Parser) expectNumber() int {
	if !p.is(token.NUMBER) {
		p.errorTok(p.cur, "expected a number but found %s", p.cur)
	}
	return p.advance().Value
}

func (p *Parser) isType() bool {
	return p.is(token.INT) || p.is(token.CHAR)
}

// consumeType reads ("int"|"char") {"*"}, reporting whether a type was
// present at all.
func (p *Parser) consumeType() (types.Type, bool) {
	var base types.Type
	switch {
	case p.consume(token.INT):
		base = types.IntType
	case p.consume(token.CHAR):
		base = types.CharType
	default:
		return types.Type{}, false
	}
	for p.consume(token.STAR) {
		base = types.NewPointer(base)
	}
	return base, true
}

func (p *Parser) expectType() types.Type {
	t, ok := p.consumeType()
	if !ok {
		p.errorTok(p.cur, "expected a type specifier but found %s", p.cur)
	}
	return t
}

// --- nesting tracker (§4.2) ---

func (p *Parser) enterNested(open *token.Token) {
	p.nesting.Push(open)
}

func (p *Parser) leaveNested() {
	p.nesting.Pop()
}

// openParen consumes a required "(" and records it on the nesting
// stack so a missing close can be reported against it.
func (p *Parser) openParen() {
	p.enterNested(p.expect(token.LPAREN))
}

// closeParen consumes the ")" matching the most recent open paren;
// reaching end of input first is reported against the opening token's
// position rather than as a bare unexpected-EOF.
func (p *Parser) closeParen() {
	if p.atEOF() {
		if open, err := p.nesting.Peek(); err == nil {
			p.errorTok(open, "unmatched %q: reached end of input looking for its closing %q", "(", ")")
		}
	}
	p.expect(token.RPAREN)
	p.leaveNested()
}

// --- locals table ---

// declareLocal records name at the current frame watermark the first
// time it is seen in this function, and returns its (possibly
// pre-existing) offset.
func (p *Parser) declareLocal(name string, typ types.Type) int {
	if info, ok := p.locals[name]; ok {
		return info.offset
	}
	p.maxOffset += 8
	p.locals[name] = localInfo{offset: p.maxOffset, typ: typ}
	return p.maxOffset
}

func (p *Parser) lookupLocal(name string) (localInfo, bool) {
	info, ok := p.locals[name]
	return info, ok
}

// newTemp allocates a fresh, never-reused local to back one compound
// assignment or increment/decrement site. Unlike the source this is
// grounded on, every site gets its own named slot ("$tmp1", "$tmp2",
// ...) rather than all of them collapsing onto one shared empty-string
// key.
func (p *Parser) newTemp(typ types.Type, tok *token.Token) *ast.Node {
	p.tmpSeq++
	name := fmt.Sprintf("$tmp%d", p.tmpSeq)
	offset := p.declareLocal(name, typ)
	return ast.NewLvar(name, offset, typ, tok)
}

// --- program / function declarations ---

// funcDecl parses: type ident "(" func-args ")" "{" { stmt } "}"
func (p *Parser) funcDecl() *ast.Node {
	_ = p.expectType() // return type is grammatically required but not otherwise checked: the language has no void/int mismatch diagnostics
	name, nameTok := p.expectIdent()

	if _, exists := p.arities.Lookup(name); exists {
		p.errorTok(nameTok, "%q is already declared", name)
	}

	p.locals = make(map[string]localInfo)
	p.maxOffset = 0
	p.tmpSeq = 0

	p.openParen()
	args := p.funcArgs()
	p.closeParen()

	p.arities.Declare(name, len(args))

	open := p.expect(token.LBRACE)
	stmts := p.blockStmts(open)

	if !hasTopLevelReturn(stmts) {
		stmts = append(stmts, ast.NewUnary(ast.ReturnNd, ast.NewNum(0, nameTok), nameTok))
	}

	return ast.NewFuncDecl(name, args, stmts, p.maxOffset, nameTok)
}

func hasTopLevelReturn(stmts []*ast.Node) bool {
	for _, s := range stmts {
		if s.Kind == ast.ReturnNd {
			return true
		}
	}
	return false
}

// funcArgs parses: [ type ident { "," type ident } ]
func (p *Parser) funcArgs() []*ast.Node {
	var args []*ast.Node
	if p.is(token.RPAREN) {
		return args
	}
	args = append(args, p.funcArg())
	for p.consume(token.COMMA) {
		args = append(args, p.funcArg())
	}
	if len(args) > 6 {
		p.errorTok(p.cur, "a function may declare no more than 6 parameters")
	}
	return args
}

func (p *Parser) funcArg() *ast.Node {
	typ := p.expectType()
	name, tok := p.expectIdent()
	offset := p.declareLocal(name, typ)
	return ast.NewLvar(name, offset, typ, tok)
}

// --- statements ---

func (p *Parser) block() *ast.Node {
	open := p.expect(token.LBRACE)
	return ast.NewBlock(p.blockStmts(open))
}

// blockStmts parses the statement list between an already-consumed "{"
// and its matching "}", reporting an unmatched-brace diagnostic anchored
// at open's position (not a bare "unexpected EOF") if input runs out
// first.
func (p *Parser) blockStmts(open *token.Token) []*ast.Node {
	p.enterNested(open)
	var stmts []*ast.Node
	for !p.consume(token.RBRACE) {
		if p.atEOF() {
			p.errorTok(open, "unmatched %q: reached end of input looking for its closing %q", "{", "}")
		}
		stmts = append(stmts, p.stmt())
	}
	p.leaveNested()
	return stmts
}

func (p *Parser) stmt() *ast.Node {
	tok := p.cur

	switch {
	case p.consume(token.SEMI):
		return ast.NewNum(0, tok)

	case p.isType():
		n := p.declStmt()
		p.expect(token.SEMI)
		return n

	case p.is(token.LBRACE):
		return p.block()

	case p.consume(token.IF):
		p.openParen()
		cond := p.expr()
		p.annotate(cond)
		p.closeParen()
		branch := p.stmt()
		var els *ast.Node
		if p.consume(token.ELSE) {
			els = p.stmt()
		}
		return ast.NewCtrl(ast.IfNd, nil, cond, nil, branch, els)

	case p.consume(token.WHILE):
		p.openParen()
		cond := p.expr()
		p.annotate(cond)
		p.closeParen()
		branch := p.stmt()
		return ast.NewCtrl(ast.WhileNd, nil, cond, nil, branch, nil)

	case p.consume(token.FOR):
		p.openParen()
		var init, enter, routine *ast.Node
		if !p.consume(token.SEMI) {
			init = p.expr()
			p.annotate(init)
			p.expect(token.SEMI)
		}
		if !p.consume(token.SEMI) {
			enter = p.expr()
			p.annotate(enter)
			p.expect(token.SEMI)
		}
		if !p.is(token.RPAREN) {
			routine = p.expr()
			p.annotate(routine)
		}
		p.closeParen()
		branch := p.stmt()
		return ast.NewCtrl(ast.ForNd, init, enter, routine, branch, nil)

	case p.consume(token.RETURN):
		var left *ast.Node
		if p.consume(token.SEMI) {
			left = ast.NewNum(0, tok)
		} else {
			left = p.expr()
			p.annotate(left)
			p.expect(token.SEMI)
		}
		return ast.NewUnary(ast.ReturnNd, left, tok)

	default:
		n := p.expr()
		p.annotate(n)
		p.expect(token.SEMI)
		return n
	}
}

// declStmt parses: type ident { "," ident } and desugars it into a
// comma-chain of no-op local-variable-introduction references, so the
// declaration reserves frame slots but is otherwise inert as a
// statement value.
func (p *Parser) declStmt() *ast.Node {
	typ := p.expectType()
	n := p.declareOne(typ)
	for p.consume(token.COMMA) {
		n = ast.NewBinary(ast.CommaNd, n, p.declareOne(typ), p.cur)
	}
	p.annotate(n)
	return n
}

func (p *Parser) declareOne(typ types.Type) *ast.Node {
	name, tok := p.expectIdent()
	offset := p.declareLocal(name, typ)
	return ast.NewLvar(name, offset, typ, tok)
}

// --- expressions ---

// expr parses: assign [ "," expr ]  (comma is right-associative)
func (p *Parser) expr() *ast.Node {
	n := p.assign()
	if p.is(token.COMMA) {
		tok := p.advance()
		return ast.NewBinary(ast.CommaNd, n, p.expr(), tok)
	}
	return n
}

// assign parses: logor [ assign-op assign ]  (right-associative)
func (p *Parser) assign() *ast.Node {
	n := p.logor()
	tok := p.cur
	switch {
	case p.consume(token.ASSIGN):
		return ast.NewBinary(ast.AssignNd, n, p.assign(), tok)
	case p.consume(token.ADDASSIGN):
		return p.assignOp(ast.AddNd, n, p.assign(), tok)
	case p.consume(token.SUBASSIGN):
		return p.assignOp(ast.SubNd, n, p.assign(), tok)
	case p.consume(token.MULASSIGN):
		return p.assignOp(ast.MulNd, n, p.assign(), tok)
	case p.consume(token.DIVASSIGN):
		return p.assignOp(ast.DivNd, n, p.assign(), tok)
	case p.consume(token.MODASSIGN):
		return p.assignOp(ast.ModNd, n, p.assign(), tok)
	case p.consume(token.ANDASSIGN):
		return p.assignOp(ast.BitAndNd, n, p.assign(), tok)
	case p.consume(token.XORASSIGN):
		return p.assignOp(ast.BitXorNd, n, p.assign(), tok)
	case p.consume(token.ORASSIGN):
		return p.assignOp(ast.BitOrNd, n, p.assign(), tok)
	case p.consume(token.SHLASSIGN):
		return p.assignOp(ast.LShiftNd, n, p.assign(), tok)
	case p.consume(token.SHRASSIGN):
		return p.assignOp(ast.RShiftNd, n, p.assign(), tok)
	default:
		return n
	}
}

// assignOp desugars "a OP= b" into (tmp = &a), (*tmp = *tmp OP b), per
// §4.2. kind is always one of the arithmetic/bitwise/shift kinds, never
// AssignNd: plain "=" is built directly by assign() and never reaches
// here.
func (p *Parser) assignOp(kind ast.Kind, left, right *ast.Node, tok *token.Token) *ast.Node {
	p.annotate(left)
	p.annotate(right)

	tmp := p.newTemp(types.NewPointer(*left.Type), tok)
	tmpRef := func() *ast.Node {
		return ast.NewLvar(tmp.Name, tmp.Offset, *tmp.Type, tok)
	}

	storeAddr := ast.NewBinary(ast.AssignNd, tmpRef(), ast.NewUnary(ast.AddrNd, left, tok), tok)
	applyOp := ast.NewBinary(
		ast.AssignNd,
		ast.NewUnary(ast.DerefNd, tmpRef(), tok),
		ast.NewBinary(kind, ast.NewUnary(ast.DerefNd, tmpRef(), tok), right, tok),
		tok,
	)
	n := ast.NewBinary(ast.CommaNd, storeAddr, applyOp, tok)
	p.annotate(n)
	return n
}

func (p *Parser) logor() *ast.Node {
	n := p.logand()
	for p.is(token.OR) {
		tok := p.advance()
		n = ast.NewBinary(ast.LogOrNd, n, p.logand(), tok)
	}
	return n
}

func (p *Parser) logand() *ast.Node {
	n := p.bitor()
	for p.is(token.AND) {
		tok := p.advance()
		n = ast.NewBinary(ast.LogAndNd, n, p.bitor(), tok)
	}
	return n
}

func (p *Parser) bitor() *ast.Node {
	n := p.bitxor()
	for p.is(token.PIPE) {
		tok := p.advance()
		n = ast.NewBinary(ast.BitOrNd, n, p.bitxor(), tok)
	}
	return n
}

func (p *Parser) bitxor() *ast.Node {
	n := p.bitand()
	for p.is(token.CARET) {
		tok := p.advance()
		n = ast.NewBinary(ast.BitXorNd, n, p.bitand(), tok)
	}
	return n
}

func (p *Parser) bitand() *ast.Node {
	n := p.equality()
	for p.is(token.AMP) {
		tok := p.advance()
		n = ast.NewBinary(ast.BitAndNd, n, p.equality(), tok)
	}
	return n
}

// equality parses: relational [ ("==" | "!=") relational ]  — note this
// level is single-shot, unlike the repeating levels above and below it.
func (p *Parser) equality() *ast.Node {
	n := p.relational()
	tok := p.cur
	switch {
	case p.consume(token.EQ):
		return ast.NewBinary(ast.EqNd, n, p.relational(), tok)
	case p.consume(token.NEQ):
		return ast.NewBinary(ast.NEqNd, n, p.relational(), tok)
	default:
		return n
	}
}

// relational parses: shift { ("<" | "<=" | ">" | ">=") shift }. ">" and
// ">=" are desugared by swapping operands into "<" and "<=" so the
// generator only ever implements two comparison directions.
func (p *Parser) relational() *ast.Node {
	n := p.shift()
	for {
		tok := p.cur
		switch {
		case p.consume(token.LT):
			n = ast.NewBinary(ast.LThanNd, n, p.shift(), tok)
		case p.consume(token.LEQ):
			n = ast.NewBinary(ast.LEqNd, n, p.shift(), tok)
		case p.consume(token.GT):
			n = ast.NewBinary(ast.LThanNd, p.shift(), n, tok)
		case p.consume(token.GEQ):
			n = ast.NewBinary(ast.LEqNd, p.shift(), n, tok)
		default:
			return n
		}
	}
}

func (p *Parser) shift() *ast.Node {
	n := p.add()
	for {
		tok := p.cur
		switch {
		case p.consume(token.SHL):
			n = ast.NewBinary(ast.LShiftNd, n, p.add(), tok)
		case p.consume(token.SHR):
			n = ast.NewBinary(ast.RShiftNd, n, p.add(), tok)
		default:
			return n
		}
	}
}

func (p *Parser) add() *ast.Node {
	n := p.mul()
	for {
		tok := p.cur
		switch {
		case p.consume(token.PLUS):
			n = ast.NewBinary(ast.AddNd, n, p.mul(), tok)
		case p.consume(token.MINUS):
			n = ast.NewBinary(ast.SubNd, n, p.mul(), tok)
		default:
			return n
		}
	}
}

func (p *Parser) mul() *ast.Node {
	n := p.unary()
	for {
		tok := p.cur
		switch {
		case p.consume(token.STAR):
			n = ast.NewBinary(ast.MulNd, n, p.unary(), tok)
		case p.consume(token.SLASH):
			n = ast.NewBinary(ast.DivNd, n, p.unary(), tok)
		case p.consume(token.PERCENT):
			n = ast.NewBinary(ast.ModNd, n, p.unary(), tok)
		default:
			return n
		}
	}
}

// unary parses the prefix operators. Unary "+x"/"-x" desugar to "0+x"/
// "0-x" so "&+x" is rejected by the annotator as an address-of a
// non-lvalue, exactly as a plain "&(0+x)" would be. Prefix "++"/"--"
// desugar directly through assignOp, matching "++x" == "x += 1".
func (p *Parser) unary() *ast.Node {
	tok := p.cur
	switch {
	case p.consume(token.TILDE):
		return ast.NewUnary(ast.BitNotNd, p.unary(), tok)
	case p.consume(token.BANG):
		return ast.NewUnary(ast.LogNotNd, p.unary(), tok)
	case p.consume(token.STAR):
		return ast.NewUnary(ast.DerefNd, p.unary(), tok)
	case p.consume(token.AMP):
		return ast.NewUnary(ast.AddrNd, p.unary(), tok)
	case p.consume(token.PLUS):
		return ast.NewBinary(ast.AddNd, ast.NewNum(0, tok), p.primary(), tok)
	case p.consume(token.MINUS):
		return ast.NewBinary(ast.SubNd, ast.NewNum(0, tok), p.primary(), tok)
	case p.consume(token.INC):
		return p.assignOp(ast.AddNd, p.unary(), ast.NewNum(1, tok), tok)
	case p.consume(token.DEC):
		return p.assignOp(ast.SubNd, p.unary(), ast.NewNum(1, tok), tok)
	case p.consume(token.SIZEOF):
		return p.sizeofExpr(tok)
	default:
		return p.tailed()
	}
}

// sizeofExpr parses "sizeof" applied to a parenthesized type name, a
// parenthesized expression, or a bare unary expression, producing an
// int literal of the operand's byte size. The language subset has no
// other place an int literal needs to carry a non-token provenance, so
// this simply returns a NumNd whose token is "sizeof" itself.
func (p *Parser) sizeofExpr(tok *token.Token) *ast.Node {
	if p.is(token.LPAREN) {
		p.openParen()
		if typ, ok := p.consumeType(); ok {
			p.closeParen()
			return ast.NewNum(typ.Size(), tok)
		}
		n := p.expr()
		p.closeParen()
		p.annotate(n)
		return ast.NewNum(n.Type.Size(), tok)
	}
	n := p.unary()
	p.annotate(n)
	return ast.NewNum(n.Type.Size(), tok)
}

// tailed parses: primary [ "++" | "--" ], desugaring the postfix forms
// through assignOp: "x++" == "(x += 1) - 1".
func (p *Parser) tailed() *ast.Node {
	n := p.primary()
	tok := p.cur
	switch {
	case p.consume(token.INC):
		return p.postfixIncDec(n, true, tok)
	case p.consume(token.DEC):
		return p.postfixIncDec(n, false, tok)
	default:
		return n
	}
}

func (p *Parser) postfixIncDec(n *ast.Node, isInc bool, tok *token.Token) *ast.Node {
	kind, opposite := ast.SubNd, ast.AddNd
	if isInc {
		kind, opposite = ast.AddNd, ast.SubNd
	}
	return ast.NewBinary(opposite, p.assignOp(kind, n, ast.NewNum(1, tok), tok), ast.NewNum(1, tok), tok)
}

// primary parses: integer-literal | ident [ "(" args ")" ] | "(" expr ")"
func (p *Parser) primary() *ast.Node {
	tok := p.cur

	if p.is(token.LPAREN) {
		p.openParen()
		n := p.expr()
		p.closeParen()
		return n
	}

	if name, ok := p.consumeIdent(); ok {
		if p.is(token.LPAREN) {
			p.openParen()
			args := p.callArgs()
			if arity, declared := p.arities.Lookup(name); declared && arity != len(args) {
				p.errorTok(tok, "%q takes %d argument(s) but %d given", name, arity, len(args))
			}
			return ast.NewFunc(name, args, tok)
		}
		info, ok := p.lookupLocal(name)
		if !ok {
			p.errorTok(tok, "%q is not declared", name)
		}
		return ast.NewLvar(name, info.offset, info.typ, tok)
	}

	return ast.NewNum(p.expectNumber(), tok)
}

// callArgs parses: [ assign { "," assign } ] ")" — it owns consuming the
// closing paren since an empty call consumes it immediately. The caller
// has already pushed the opening paren onto the nesting stack.
func (p *Parser) callArgs() []*ast.Node {
	var args []*ast.Node
	if p.is(token.RPAREN) {
		p.closeParen()
		return args
	}
	args = append(args, p.assign())
	for p.consume(token.COMMA) {
		args = append(args, p.assign())
	}
	p.closeParen()
	if len(args) > 6 {
		p.errorTok(p.cur, "a call may pass no more than 6 arguments")
	}
	return args
}

// --- type annotation (§4.3) ---

// annotate fills in n's Type, recursively, for every node kind that
// participates in an expression's value. Once set a node's Type is
// never overwritten.
//
// This differs from the source's confirm_type in one respect: that
// function is invoked only at a handful of call sites (return,
// assign_op, inc_dec) and leaves plain expression-statement and
// loop-control subtrees unannotated, which would later crash the
// generator's register-width selection on a nil type. Every statement
// that evaluates an expression here calls annotate before the generator
// ever sees it, and annotate itself assigns a concrete type to every
// arithmetic/bitwise/comparison kind rather than only the five the
// source's version covers — see DESIGN.md's Open Question decision 1.
func (p *Parser) annotate(n *ast.Node) {
	if n == nil || n.Type != nil {
		return
	}
	p.annotate(n.Left)
	p.annotate(n.Right)

	switch n.Kind {
	case ast.NumNd:
		t := types.IntType
		n.Type = &t

	case ast.LvarNd:
		if n.Type == nil {
			t := types.IntType
			n.Type = &t
		}

	case ast.AddrNd:
		left := n.Left
		if left.Kind != ast.DerefNd && left.Kind != ast.LvarNd {
			p.errorTok(n.Token, "\"&\" may only be applied to a declared variable or a dereference")
		}
		t := types.NewPointer(*left.Type)
		n.Type = &t

	case ast.DerefNd:
		left := n.Left
		if left.Type == nil || !left.Type.IsPointer() {
			p.errorTok(n.Token, "\"*\" may only be applied to a pointer")
		}
		t, err := left.Type.Deref()
		if err != nil {
			p.errorTok(n.Token, "%s", err)
		}
		n.Type = &t

	case ast.CommaNd:
		n.Type = n.Right.Type

	case ast.AssignNd:
		n.Type = n.Left.Type

	case ast.AddNd, ast.SubNd:
		n.Type = pointerArithType(n.Left, n.Right)

	default:
		// the remaining operator kinds (mul/div/mod, the bitwise and
		// shift ops, comparisons, logicals) always produce a plain int
		// regardless of their operands' types; a call is left untyped.
		if isValueKind(n.Kind) {
			t := types.IntType
			n.Type = &t
		}
	}
}

// pointerArithType implements "+"/"-" result typing: a pointer operand
// (the left one preferentially) makes the result a pointer of that
// same type; otherwise the result is a plain int.
func pointerArithType(left, right *ast.Node) *types.Type {
	if left.Type != nil && left.Type.IsPointer() {
		t := *left.Type
		return &t
	}
	if right.Type != nil && right.Type.IsPointer() {
		t := *right.Type
		return &t
	}
	t := types.IntType
	return &t
}

func isValueKind(k ast.Kind) bool {
	switch k {
	case ast.MulNd, ast.DivNd, ast.ModNd,
		ast.BitAndNd, ast.BitOrNd, ast.BitXorNd, ast.BitNotNd,
		ast.LShiftNd, ast.RShiftNd,
		ast.EqNd, ast.NEqNd, ast.LThanNd, ast.LEqNd,
		ast.LogAndNd, ast.LogOrNd, ast.LogNotNd:
		return true
	default:
		return false
	}
}
