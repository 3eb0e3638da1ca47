package changelist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decode(e *Emitter) [][]uint32 {
	var ops [][]uint32
	e.EachInstructionSequence(func(words []uint32) {
		for i := 0; i < len(words); {
			op := Opcode(words[i])
			n := Arity(op)
			ops = append(ops, append([]uint32{words[i]}, words[i+1:i+1+n]...))
			i += 1 + n
		}
	})
	return ops
}

func TestEmitterEncodesFixedArityWords(t *testing.T) {
	e := NewEmitter()
	e.CreateElement(7)
	e.SetAttribute(1, 2)
	e.AppendChild()
	e.Pop()

	got := decode(e)
	want := [][]uint32{
		{uint32(OpCreateElement), 7},
		{uint32(OpSetAttribute), 1, 2},
		{uint32(OpAppendChild)},
		{uint32(OpPop)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded opcodes mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitterResetClears(t *testing.T) {
	e := NewEmitter()
	e.Pop()
	e.Reset()
	if got := decode(e); len(got) != 0 {
		t.Fatalf("expected no opcodes after Reset, got %v", got)
	}
}

func TestOpcodeNameCoversEveryOpcode(t *testing.T) {
	for op := Opcode(0); op <= OpPushTemplate; op++ {
		if OpcodeName(op) == "unknown" {
			t.Errorf("opcode %d has no name", op)
		}
	}
}
