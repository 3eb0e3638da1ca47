// Package hosttree defines the contract vtree's change-list interpreter
// expects from whatever tree it is ultimately mutating, and ships two
// implementations: JSTree, a syscall/js binding to a real browser DOM, and
// DumpTree, an in-memory tree usable in tests and from the CLI without a
// browser. Both are driven the same way, by Interpreter walking a decoded
// change-list and calling Tree's primitive operations in turn.
package hosttree

// Node is an opaque handle to a host tree node. Its only valid uses are as
// an argument back into the Tree that produced it.
type Node any

// Tree is the host-tree contract: the primitive operations the interpreter
// needs to realize a change list against some actual tree structure,
// mirroring the original dodrio crate's ChangeListInterpreter one-to-one.
type Tree interface {
	// CreateTextNode creates a detached text node.
	CreateTextNode(text string) Node
	// CreateElement creates a detached, non-namespaced element.
	CreateElement(tagName string) Node
	// CreateElementNS creates a detached element in the given namespace.
	CreateElementNS(tagName, namespace string) Node

	AppendChild(parent, child Node)
	InsertBefore(parent, newNode, reference Node)
	Remove(node Node)

	SetTextContent(node Node, text string)
	SetAttribute(node Node, name, value string)
	RemoveAttribute(node Node, name string)
	SetClassName(node Node, class string)

	// AddEventListener installs the shared trampoline dispatch for
	// eventName on node (if not already installed for that event name on
	// that node) and records the (a, b) listener identity as the node's
	// dodrio-a-<event>/dodrio-b-<event> attributes, per the event
	// trampoline contract.
	AddEventListener(node Node, eventName string, a, b uint32)
	// RemoveEventListener tears down the listener installed by
	// AddEventListener for eventName, along with its (a, b) attributes.
	RemoveEventListener(node Node, eventName string)

	// CloneNodeDeep returns a deep copy of node, detached from its
	// original parent, for template instantiation.
	CloneNodeDeep(node Node) Node

	ChildNodes(node Node) []Node
	ParentNode(node Node) (Node, bool)
	// FirstChild returns container's first child, if any. The interpreter
	// calls this exactly once, at the start of a session, to find the
	// already-mounted root it will begin patching.
	FirstChild(container Node) (Node, bool)
}
