package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ysuzuki/cgox/ast"
	"github.com/ysuzuki/cgox/lexer"
	"github.com/ysuzuki/cgox/source"
)

func parseSrc(t *testing.T, src string) ([]*ast.Node, error) {
	t.Helper()
	set := source.NewSet()
	file := set.AddString("t.c", src)

	head, err := lexer.Lex(file)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return New(set, head, NewArities()).Parse()
}

func mustParse(t *testing.T, src string) []*ast.Node {
	t.Helper()
	funcs, err := parseSrc(t, src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return funcs
}

func TestParseSimpleFunction(t *testing.T) {
	funcs := mustParse(t, "int main(){ return 1+2*3-4/2+3%2; }")
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	f := funcs[0]
	if f.Kind != ast.FuncDecNd || f.Name != "main" {
		t.Fatalf("expected FuncDecNd(main), got %s(%s)", f.Kind, f.Name)
	}
	if len(f.Stmts) != 1 || f.Stmts[0].Kind != ast.ReturnNd {
		t.Fatalf("expected a single return statement, got %v", f.Stmts)
	}
}

func TestDeclarationReservesFrameSlots(t *testing.T) {
	funcs := mustParse(t, "int main(){ int a; int b; return a+b; }")
	f := funcs[0]
	if f.MaxOffset != 16 {
		t.Errorf("expected max offset 16 for two locals, got %d", f.MaxOffset)
	}
}

func TestMultiVarDeclChain(t *testing.T) {
	funcs := mustParse(t, "int main(){ int a, b, c; return a+b+c; }")
	f := funcs[0]
	if f.MaxOffset != 24 {
		t.Fatalf("expected 3 locals to reserve 24 bytes, got %d", f.MaxOffset)
	}

	decl := f.Stmts[0]
	var names []string
	ast.Walk(decl, func(n *ast.Node) {
		if n.Kind == ast.LvarNd {
			names = append(names, n.Name)
		}
	})
	if strings.Join(names, ",") != "a,b,c" {
		t.Errorf("expected declaration order a,b,c, got %v", names)
	}
}

func TestDuplicateFunctionDeclarationErrors(t *testing.T) {
	_, err := parseSrc(t, "int f(){ return 0; } int f(){ return 1; }")
	if err == nil {
		t.Fatal("expected an error declaring the same function twice")
	}
}

func TestUndeclaredVariableErrors(t *testing.T) {
	_, err := parseSrc(t, "int main(){ return x; }")
	if err == nil {
		t.Fatal("expected an error referencing an undeclared variable")
	}
}

func TestCallArityMismatchErrors(t *testing.T) {
	_, err := parseSrc(t, "int f(int a){ return a; } int main(){ return f(1,2); }")
	if err == nil {
		t.Fatal("expected an arity mismatch error")
	}
}

func TestCallToUnknownNameIsAccepted(t *testing.T) {
	funcs, err := parseSrc(t, "int main(){ return external(1,2,3); }")
	if err != nil {
		t.Fatalf("expected a call to an undeclared name to be accepted, got %v", err)
	}
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
}

func TestSelfRecursiveCallSeesOwnArity(t *testing.T) {
	_, err := parseSrc(t, "int fib(int n){ if(n<=2) return 1; return fib(n-1)+fib(n-2); } int main(){ return fib(10); }")
	if err != nil {
		t.Fatalf("expected recursive self-call to validate against its own declared arity, got %v", err)
	}
}

func TestTooManyParametersErrors(t *testing.T) {
	_, err := parseSrc(t, "int f(int a,int b,int c,int d,int e,int g,int h){ return a; }")
	if err == nil {
		t.Fatal("expected an error for more than 6 declared parameters")
	}
}

func TestTooManyArgumentsErrors(t *testing.T) {
	_, err := parseSrc(t, "int f(){ return 1; } int main(){ return f(1,2,3,4,5,6,7); }")
	if err == nil {
		t.Fatal("expected an error for more than 6 call arguments")
	}
}

func TestRelationalGtSwapsOperands(t *testing.T) {
	funcs := mustParse(t, "int main(){ int a; int b; return a>b; }")
	var retNode *ast.Node
	for _, s := range funcs[0].Stmts {
		if s.Kind == ast.ReturnNd {
			retNode = s
			break
		}
	}
	if retNode == nil {
		t.Fatal("expected a return statement")
	}
	cmp := retNode.Left
	if cmp.Kind != ast.LThanNd {
		t.Fatalf("expected \"a>b\" to desugar to LThanNd, got %s", cmp.Kind)
	}
	if cmp.Left.Name != "b" || cmp.Right.Name != "a" {
		t.Errorf("expected operands swapped (b < a), got left=%s right=%s", cmp.Left.Name, cmp.Right.Name)
	}
}

func TestUnaryMinusDesugarsToZeroMinus(t *testing.T) {
	funcs := mustParse(t, "int main(){ int a; return -a; }")
	var retNode *ast.Node
	for _, s := range funcs[0].Stmts {
		if s.Kind == ast.ReturnNd {
			retNode = s
		}
	}
	sub := retNode.Left
	if sub.Kind != ast.SubNd {
		t.Fatalf("expected unary minus to desugar to SubNd, got %s", sub.Kind)
	}
	if sub.Left.Kind != ast.NumNd || sub.Left.Value != 0 {
		t.Errorf("expected left operand to be the literal 0, got %v", sub.Left)
	}
}

func TestCompoundAssignDesugarsToCommaOfTwoAssigns(t *testing.T) {
	funcs := mustParse(t, "int main(){ int a; a+=1; return a; }")
	var stmt *ast.Node
	for _, s := range funcs[0].Stmts {
		if s.Kind == ast.CommaNd {
			stmt = s
		}
	}
	if stmt == nil {
		t.Fatal("expected the compound-assignment statement to desugar to a CommaNd")
	}
	if stmt.Left.Kind != ast.AssignNd || stmt.Right.Kind != ast.AssignNd {
		t.Fatalf("expected both halves of the comma to be assignments, got %s / %s", stmt.Left.Kind, stmt.Right.Kind)
	}
	// left half stores the address of "a" into a synthetic temp
	if stmt.Left.Left.Kind != ast.LvarNd || !strings.HasPrefix(stmt.Left.Left.Name, "$tmp") {
		t.Errorf("expected the comma's left half to assign into a synthetic temp, got %v", stmt.Left.Left)
	}
	if stmt.Left.Right.Kind != ast.AddrNd {
		t.Errorf("expected the comma's left half to store &a, got %s", stmt.Left.Right.Kind)
	}
	// right half is *tmp = *tmp + 1
	if stmt.Right.Left.Kind != ast.DerefNd || stmt.Right.Right.Kind != ast.AddNd {
		t.Errorf("expected the comma's right half to be *tmp = *tmp + 1, got %v / %v", stmt.Right.Left, stmt.Right.Right)
	}
}

func TestEachCompoundAssignSiteGetsADistinctTemp(t *testing.T) {
	funcs := mustParse(t, "int main(){ int a; int b; a+=1; b+=1; return a+b; }")
	var temps []string
	for _, s := range funcs[0].Stmts {
		if s.Kind != ast.CommaNd {
			continue
		}
		ast.Walk(s, func(n *ast.Node) {
			if n.Kind == ast.LvarNd && strings.HasPrefix(n.Name, "$tmp") {
				temps = append(temps, n.Name)
			}
		})
	}
	seen := map[string]bool{}
	for _, name := range temps {
		seen[name] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected two compound-assign sites to allocate distinct temporaries, got %v", temps)
	}
}

func TestPrefixIncrementDesugarsThroughAssignOp(t *testing.T) {
	funcs := mustParse(t, "int main(){ int a; a=1; ++a; return a; }")
	var stmt *ast.Node
	for _, s := range funcs[0].Stmts {
		if s.Kind == ast.CommaNd {
			stmt = s
		}
	}
	if stmt == nil {
		t.Fatal("expected prefix ++ to desugar to a CommaNd via assignOp")
	}
	if stmt.Right.Right.Kind != ast.AddNd {
		t.Errorf("expected prefix ++ to apply AddNd, got %s", stmt.Right.Right.Kind)
	}
}

func TestPostfixIncrementWrapsAssignOpWithCorrection(t *testing.T) {
	funcs := mustParse(t, "int main(){ int a; a=1; a++; return a; }")
	var stmt *ast.Node
	for _, s := range funcs[0].Stmts {
		if s.Kind == ast.SubNd {
			stmt = s
		}
	}
	if stmt == nil {
		t.Fatal("expected postfix a++ to desugar to (a += 1) - 1, rooted at SubNd")
	}
	if stmt.Left.Kind != ast.CommaNd {
		t.Errorf("expected the subtracted term to be the assignOp comma, got %s", stmt.Left.Kind)
	}
	if stmt.Right.Kind != ast.NumNd || stmt.Right.Value != 1 {
		t.Errorf("expected to subtract the literal 1, got %v", stmt.Right)
	}
}

func TestShortCircuitOperatorsParse(t *testing.T) {
	funcs := mustParse(t, "int main(){ int a; int b; a=0; b=!a && 1 || 0; return b; }")
	var assign *ast.Node
	for _, s := range funcs[0].Stmts {
		if s.Kind == ast.AssignNd && s.Left.Name == "b" {
			assign = s
		}
	}
	if assign == nil {
		t.Fatal("expected an assignment to b")
	}
	if assign.Right.Kind != ast.LogOrNd {
		t.Fatalf("expected top-level ||, got %s", assign.Right.Kind)
	}
	if assign.Right.Left.Kind != ast.LogAndNd {
		t.Fatalf("expected && to bind tighter than ||, got %s", assign.Right.Left.Kind)
	}
	if assign.Right.Left.Left.Kind != ast.LogNotNd {
		t.Fatalf("expected ! to bind tighter than &&, got %s", assign.Right.Left.Left.Kind)
	}
}

func TestSizeofType(t *testing.T) {
	funcs := mustParse(t, "int main(){ return sizeof(int); }")
	var retNode *ast.Node
	for _, s := range funcs[0].Stmts {
		if s.Kind == ast.ReturnNd {
			retNode = s
		}
	}
	if retNode.Left.Kind != ast.NumNd || retNode.Left.Value != 4 {
		t.Fatalf("expected sizeof(int) to desugar to the literal 4, got %v", retNode.Left)
	}
}

func TestSizeofPointerExpression(t *testing.T) {
	funcs := mustParse(t, "int main(){ int x; int *y; y=&x; return sizeof(y); }")
	var retNode *ast.Node
	for _, s := range funcs[0].Stmts {
		if s.Kind == ast.ReturnNd {
			retNode = s
		}
	}
	if retNode.Left.Kind != ast.NumNd || retNode.Left.Value != 8 {
		t.Fatalf("expected sizeof(pointer) to desugar to the literal 8, got %v", retNode.Left)
	}
}

func TestSizeofBareExpression(t *testing.T) {
	funcs := mustParse(t, "int main(){ return sizeof 1+2; }")
	// "sizeof 1" binds at the unary level, so this is (sizeof 1) + 2
	var retNode *ast.Node
	for _, s := range funcs[0].Stmts {
		if s.Kind == ast.ReturnNd {
			retNode = s
		}
	}
	if retNode.Left.Kind != ast.AddNd {
		t.Fatalf("expected sizeof to bind tighter than +, got %s", retNode.Left.Kind)
	}
	if retNode.Left.Left.Value != 4 {
		t.Errorf("expected sizeof 1 to desugar to 4, got %d", retNode.Left.Left.Value)
	}
}

func TestMissingReturnGetsSyntheticZero(t *testing.T) {
	funcs := mustParse(t, "int main(){ int a; a=1; }")
	last := funcs[0].Stmts[len(funcs[0].Stmts)-1]
	if last.Kind != ast.ReturnNd || last.Left.Kind != ast.NumNd || last.Left.Value != 0 {
		t.Fatalf("expected a synthetic \"return 0;\" to be appended, got %v", last)
	}
}

func TestUnmatchedBraceReportsOpeningPosition(t *testing.T) {
	_, err := parseSrc(t, "int main(){ return 1;")
	if err == nil {
		t.Fatal("expected an unmatched-brace error")
	}
	if !strings.Contains(err.Error(), "1:11") {
		t.Errorf("expected the error to point at the opening brace's position, got %q", err.Error())
	}
}

func TestUnmatchedParenReportsOpeningPosition(t *testing.T) {
	_, err := parseSrc(t, "int main(){ return (1+2")
	if err == nil {
		t.Fatal("expected an unmatched-paren error")
	}
	if !strings.Contains(err.Error(), "1:20") {
		t.Errorf("expected the error to point at the opening paren's position, got %q", err.Error())
	}
}

func TestAddressOfNonLvalueErrors(t *testing.T) {
	_, err := parseSrc(t, "int main(){ return &(1+2); }")
	if err == nil {
		t.Fatal("expected \"&\" over a non-lvalue to be a hard error")
	}
}

func TestDereferenceOfNonPointerErrors(t *testing.T) {
	_, err := parseSrc(t, "int main(){ int a; return *a; }")
	if err == nil {
		t.Fatal("expected \"*\" over a non-pointer to be a hard error")
	}
}

func TestPointerChainAnnotation(t *testing.T) {
	funcs := mustParse(t, "int main(){ int x; int *y; int **z; x=3; y=&x; z=&y; return *&**z; }")
	require.Len(t, funcs, 1)

	var yAssign, zAssign *ast.Node
	for _, s := range funcs[0].Stmts {
		if s.Kind != ast.AssignNd {
			continue
		}
		switch s.Left.Name {
		case "y":
			yAssign = s
		case "z":
			zAssign = s
		}
	}
	require.NotNil(t, yAssign)
	require.NotNil(t, zAssign)

	require.True(t, yAssign.Left.Type.IsPointer())
	require.Equal(t, 1, yAssign.Left.Type.ChainDepth)

	require.True(t, zAssign.Left.Type.IsPointer())
	require.Equal(t, 2, zAssign.Left.Type.ChainDepth)
}
