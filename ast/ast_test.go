package ast

import (
	"testing"

	"github.com/ysuzuki/cgox/types"
)

func TestNewCtrlRejectsNonControlKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected NewCtrl to panic for a non-control kind")
		}
	}()
	NewCtrl(AddNd, nil, nil, nil, nil, nil)
}

func TestNewCtrlAcceptsControlKinds(t *testing.T) {
	for _, k := range []Kind{IfNd, WhileNd, ForNd} {
		n := NewCtrl(k, nil, NewNum(1, nil), nil, NewBlock(nil), nil)
		if n.Kind != k {
			t.Errorf("expected kind %s, got %s", k, n.Kind)
		}
	}
}

func TestWalkVisitsEveryReachableNode(t *testing.T) {
	leftLeaf := NewNum(1, nil)
	rightLeaf := NewNum(2, nil)
	add := NewBinary(AddNd, leftLeaf, rightLeaf, nil)
	block := NewBlock([]*Node{add, NewNum(3, nil)})

	var seen []Kind
	Walk(block, func(n *Node) { seen = append(seen, n.Kind) })

	if len(seen) != 5 {
		t.Fatalf("expected 5 nodes visited, got %d: %v", len(seen), seen)
	}
}

func TestNodeString(t *testing.T) {
	num := NewNum(42, nil)
	if got := num.String(); got != "NumNd(42)" {
		t.Errorf("unexpected string: %s", got)
	}

	lvar := NewLvar("x", 8, types.IntType, nil)
	if got := lvar.String(); got != "LvarNd(x)[offset=8]" {
		t.Errorf("unexpected string: %s", got)
	}

	var nilNode *Node
	if nilNode.String() != "<nil>" {
		t.Errorf("expected <nil> for nil node")
	}
}

func TestNewFuncDecl(t *testing.T) {
	fn := NewFuncDecl("main", nil, []*Node{NewNum(0, nil)}, 16, nil)
	if fn.Kind != FuncDecNd || fn.Name != "main" || fn.MaxOffset != 16 {
		t.Errorf("unexpected func decl node: %+v", fn)
	}
}
