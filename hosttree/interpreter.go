package hosttree

import (
	"github.com/forgelogic/vtree/changelist"
	"github.com/forgelogic/vtree/logging"
)

// Interpreter walks a decoded change list and drives a Tree, exactly as the
// original ChangeListInterpreter drives a real DOM. It owns the three
// pieces of state a session's worth of opcodes read and write: a stack of
// nodes under construction or being navigated, a set of named temporary
// slots (populated by save_children_to_temporaries, read by
// push_temporary), and a cache of host nodes registered as templates.
type Interpreter struct {
	tree        Tree
	container   Node
	stack       []Node
	temporaries []Node
	templates   map[uint32]Node
}

// NewInterpreter returns an Interpreter that will mutate tree, rooted at
// container. The host-side dispatch wiring (what AddEventListener's event
// trampoline actually calls) is the Tree implementation's own concern,
// fixed at the Tree's construction rather than the Interpreter's.
func NewInterpreter(tree Tree, container Node) *Interpreter {
	return &Interpreter{
		tree:      tree,
		container: container,
		templates: make(map[uint32]Node),
	}
}

// Unmount discards all interpreter-owned state. The underlying tree nodes
// are left to the caller (typically: remove container's children).
func (in *Interpreter) Unmount() {
	in.stack = nil
	in.temporaries = nil
	in.templates = make(map[uint32]Node)
}

// Start begins a session: the interpreter's cursor starts at container's
// first child, the already-mounted root from a previous session (or from
// whatever initial markup the host shipped).
func (in *Interpreter) Start() {
	if child, ok := in.tree.FirstChild(in.container); ok {
		in.stack = append(in.stack[:0], child)
	}
}

// Reset clears the stack and temporaries between sessions, without
// forgetting registered templates.
func (in *Interpreter) Reset() {
	in.stack = in.stack[:0]
	in.temporaries = in.temporaries[:0]
}

func (in *Interpreter) top() Node {
	return in.stack[len(in.stack)-1]
}

func (in *Interpreter) push(n Node) { in.stack = append(in.stack, n) }

func (in *Interpreter) pop() Node {
	n := in.stack[len(in.stack)-1]
	in.stack = in.stack[:len(in.stack)-1]
	return n
}

func (in *Interpreter) temp(i uint32) Node {
	for uint32(len(in.temporaries)) <= i {
		in.temporaries = append(in.temporaries, nil)
	}
	return in.temporaries[i]
}

func (in *Interpreter) setTemp(i uint32, n Node) {
	for uint32(len(in.temporaries)) <= i {
		in.temporaries = append(in.temporaries, nil)
	}
	in.temporaries[i] = n
}

// Apply decodes and executes, in order, every instruction state's emitter
// holds: everything emitted since the emitter was last reset.
func (in *Interpreter) Apply(state *changelist.PersistentState) {
	strings := state.Strings()
	lookup := func(key uint32) string {
		s, ok := strings.LookupKey(changelist.StringKey(key))
		if !ok {
			logging.Warn("hosttree: unknown string key %d in opcode stream", key)
			return ""
		}
		return s
	}

	state.Emitter().EachInstructionSequence(func(words []uint32) {
		i := 0
		for i < len(words) {
			op := changelist.Opcode(words[i])
			i++
			arity := changelist.Arity(op)
			args := words[i : i+arity]
			i += arity
			in.exec(op, args, lookup)
		}
	})
}

func (in *Interpreter) exec(op changelist.Opcode, args []uint32, lookup func(uint32) string) {
	switch op {
	case changelist.OpSetText:
		in.tree.SetTextContent(in.top(), lookup(args[0]))

	case changelist.OpRemoveSelfAndNextSiblings:
		node := in.pop()
		if parent, ok := in.tree.ParentNode(node); ok {
			siblings := in.tree.ChildNodes(parent)
			if idx := indexOf(siblings, node); idx >= 0 {
				for _, s := range siblings[idx+1:] {
					in.tree.Remove(s)
				}
			}
		}
		in.tree.Remove(node)

	case changelist.OpReplaceWith:
		newNode := in.pop()
		oldNode := in.pop()
		if parent, ok := in.tree.ParentNode(oldNode); ok {
			in.tree.InsertBefore(parent, newNode, oldNode)
			in.tree.Remove(oldNode)
		}
		in.push(newNode)

	case changelist.OpSetAttribute:
		in.tree.SetAttribute(in.top(), lookup(args[0]), lookup(args[1]))

	case changelist.OpRemoveAttribute:
		in.tree.RemoveAttribute(in.top(), lookup(args[0]))

	case changelist.OpPushReverseChild:
		children := in.tree.ChildNodes(in.top())
		in.push(children[uint32(len(children))-1-args[0]])

	case changelist.OpPopPushChild:
		in.pop()
		children := in.tree.ChildNodes(in.top())
		in.push(children[args[0]])

	case changelist.OpPop:
		in.pop()

	case changelist.OpAppendChild:
		child := in.pop()
		in.tree.AppendChild(in.top(), child)

	case changelist.OpCreateTextNode:
		in.push(in.tree.CreateTextNode(lookup(args[0])))

	case changelist.OpCreateElement:
		in.push(in.tree.CreateElement(lookup(args[0])))

	case changelist.OpNewEventListener:
		event := lookup(args[0])
		in.tree.AddEventListener(in.top(), event, args[1], args[2])

	case changelist.OpUpdateEventListener:
		event := lookup(args[0])
		in.tree.AddEventListener(in.top(), event, args[1], args[2])

	case changelist.OpRemoveEventListener:
		in.tree.RemoveEventListener(in.top(), lookup(args[0]))

	case changelist.OpAddCachedString, changelist.OpDropCachedString:
		// vtree resolves strings back through the StringCache directly
		// (see changelist.StringCache.EnsureString); these opcodes exist
		// for wire-format parity with a real cross-language host and
		// carry nothing this interpreter needs to act on.

	case changelist.OpCreateElementNS:
		in.push(in.tree.CreateElementNS(lookup(args[0]), lookup(args[1])))

	case changelist.OpSaveChildrenToTemporaries:
		children := in.tree.ChildNodes(in.top())
		tempBase := args[0]
		for idx, offset := args[1], uint32(0); idx < args[2]; idx, offset = idx+1, offset+1 {
			in.setTemp(tempBase+offset, children[idx])
		}

	case changelist.OpPushChild:
		children := in.tree.ChildNodes(in.top())
		in.push(children[args[0]])

	case changelist.OpPushTemporary:
		in.push(in.temp(args[0]))

	case changelist.OpInsertBefore:
		before := in.pop()
		after := in.pop()
		if parent, ok := in.tree.ParentNode(after); ok {
			in.tree.InsertBefore(parent, before, after)
		}
		in.push(before)

	case changelist.OpPopPushReverseChild:
		in.pop()
		children := in.tree.ChildNodes(in.top())
		in.push(children[uint32(len(children))-1-args[0]])

	case changelist.OpRemoveChild:
		children := in.tree.ChildNodes(in.top())
		in.tree.Remove(children[args[0]])

	case changelist.OpSetClass:
		in.tree.SetClassName(in.top(), lookup(args[0]))

	case changelist.OpSaveTemplate:
		in.templates[args[0]] = in.tree.CloneNodeDeep(in.top())

	case changelist.OpPushTemplate:
		template, ok := in.templates[args[0]]
		if !ok {
			logging.Warn("hosttree: push_template referenced unknown template %d", args[0])
			return
		}
		in.push(in.tree.CloneNodeDeep(template))

	default:
		logging.Warn("hosttree: unknown opcode %d in change-list stream", op)
	}
}

func indexOf(nodes []Node, target Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}
