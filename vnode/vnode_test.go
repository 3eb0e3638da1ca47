package vnode

import "testing"

func TestNodeKeySentinel(t *testing.T) {
	if !None.IsNone() {
		t.Fatalf("None.IsNone() = false")
	}
	if None.IsSome() {
		t.Fatalf("None.IsSome() = true")
	}
	k := NewNodeKey(5)
	if !k.IsSome() || k.IsNone() {
		t.Fatalf("NewNodeKey(5) should be some, got %v", k)
	}
}

func TestNewNodeKeyRejectsSentinel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic constructing NodeKey from sentinel value")
		}
	}()
	NewNodeKey(uint32(None))
}

func TestTextNodeHasNoKey(t *testing.T) {
	n := Text("hello")
	if n.Key() != None {
		t.Fatalf("text node key = %v, want None", n.Key())
	}
}

func TestElementKey(t *testing.T) {
	k := NewNodeKey(3)
	n := Element(k, "div", nil, nil, nil, "")
	if n.Key() != k {
		t.Fatalf("element key = %v, want %v", n.Key(), k)
	}
}

func TestVolatileAttributes(t *testing.T) {
	cases := map[string]bool{
		"value":    true,
		"checked":  true,
		"selected": true,
		"id":       false,
		"class":    false,
	}
	for name, want := range cases {
		a := Attribute{Name: name, Value: "x"}
		if got := a.IsVolatile(); got != want {
			t.Errorf("Attribute{%q}.IsVolatile() = %v, want %v", name, got, want)
		}
	}
}
