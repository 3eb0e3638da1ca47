package hosttree

import (
	"sort"
	"strconv"
	"strings"

	"github.com/forgelogic/vtree/events"
)

// dumpNode is a host tree node for DumpTree: either a text node (tag == "")
// or an element, with its own attributes, class, installed listeners, and
// children. Equality for indexOf purposes is pointer identity.
type dumpNode struct {
	tag        string
	namespace  string
	text       string
	class      string
	attributes map[string]string
	listeners  map[string][2]uint32
	parent     *dumpNode
	children   []*dumpNode
}

// DumpTree is an in-memory Tree good for tests and for the CLI's render
// command: it never touches a real display, so it runs anywhere the Go
// toolchain does. Its String method renders an indented, readable sketch of
// the tree, loosely in the spirit of the original's html_string dump
// (original_source/src/node.rs) but over the host tree rather than a vnode
// tree, since by the time DumpTree sees a node the vnode that produced it is
// long gone.
type DumpTree struct {
	root       *dumpNode
	trampoline events.Trampoline
}

// NewDumpTree returns a DumpTree whose mount point (container, in Tree
// terms) already has a single child: an empty placeholder root element, so
// Interpreter.Start always finds something to patch against, matching how
// a real page ships a mount `<div id="app">` for the first render to
// replace. trampoline is invoked by Fire to simulate a host event arriving.
func NewDumpTree(trampoline events.Trampoline) *DumpTree {
	container := &dumpNode{tag: "#mount"}
	placeholder := &dumpNode{tag: "div", attributes: map[string]string{}}
	container.children = []*dumpNode{placeholder}
	placeholder.parent = container
	return &DumpTree{root: container, trampoline: trampoline}
}

// Container returns the mount node to pass to NewInterpreter.
func (d *DumpTree) Container() Node { return d.root }

func asDumpNode(n Node) *dumpNode { return n.(*dumpNode) }

func (d *DumpTree) CreateTextNode(text string) Node {
	return &dumpNode{text: text}
}

func (d *DumpTree) CreateElement(tagName string) Node {
	return &dumpNode{tag: tagName, attributes: map[string]string{}}
}

func (d *DumpTree) CreateElementNS(tagName, namespace string) Node {
	return &dumpNode{tag: tagName, namespace: namespace, attributes: map[string]string{}}
}

func (d *DumpTree) AppendChild(parent, child Node) {
	p, c := asDumpNode(parent), asDumpNode(child)
	p.children = append(p.children, c)
	c.parent = p
}

func (d *DumpTree) InsertBefore(parent, newNode, reference Node) {
	p, n, ref := asDumpNode(parent), asDumpNode(newNode), asDumpNode(reference)
	idx := indexOfDump(p.children, ref)
	if idx < 0 {
		p.children = append(p.children, n)
	} else {
		p.children = append(p.children[:idx], append([]*dumpNode{n}, p.children[idx:]...)...)
	}
	n.parent = p
}

func (d *DumpTree) Remove(node Node) {
	n := asDumpNode(node)
	if n.parent == nil {
		return
	}
	idx := indexOfDump(n.parent.children, n)
	if idx < 0 {
		return
	}
	n.parent.children = append(n.parent.children[:idx], n.parent.children[idx+1:]...)
	n.parent = nil
}

func (d *DumpTree) SetTextContent(node Node, text string) {
	n := asDumpNode(node)
	n.text = text
	n.children = nil
}

func (d *DumpTree) SetAttribute(node Node, name, value string) {
	n := asDumpNode(node)
	if n.attributes == nil {
		n.attributes = make(map[string]string)
	}
	n.attributes[name] = value
}

func (d *DumpTree) RemoveAttribute(node Node, name string) {
	delete(asDumpNode(node).attributes, name)
}

func (d *DumpTree) SetClassName(node Node, class string) {
	asDumpNode(node).class = class
}

func (d *DumpTree) AddEventListener(node Node, eventName string, a, b uint32) {
	n := asDumpNode(node)
	if n.listeners == nil {
		n.listeners = make(map[string][2]uint32)
	}
	n.listeners[eventName] = [2]uint32{a, b}
	d.SetAttribute(node, "dodrio-a-"+eventName, strconv.FormatUint(uint64(a), 10))
	d.SetAttribute(node, "dodrio-b-"+eventName, strconv.FormatUint(uint64(b), 10))
}

func (d *DumpTree) RemoveEventListener(node Node, eventName string) {
	n := asDumpNode(node)
	delete(n.listeners, eventName)
	d.RemoveAttribute(node, "dodrio-a-"+eventName)
	d.RemoveAttribute(node, "dodrio-b-"+eventName)
}

func (d *DumpTree) CloneNodeDeep(node Node) Node {
	return cloneDump(asDumpNode(node))
}

func cloneDump(n *dumpNode) *dumpNode {
	clone := &dumpNode{
		tag:       n.tag,
		namespace: n.namespace,
		text:      n.text,
		class:     n.class,
	}
	if n.attributes != nil {
		clone.attributes = make(map[string]string, len(n.attributes))
		for k, v := range n.attributes {
			clone.attributes[k] = v
		}
	}
	if n.listeners != nil {
		clone.listeners = make(map[string][2]uint32, len(n.listeners))
		for k, v := range n.listeners {
			clone.listeners[k] = v
		}
	}
	for _, child := range n.children {
		c := cloneDump(child)
		c.parent = clone
		clone.children = append(clone.children, c)
	}
	return clone
}

func (d *DumpTree) ChildNodes(node Node) []Node {
	n := asDumpNode(node)
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (d *DumpTree) ParentNode(node Node) (Node, bool) {
	n := asDumpNode(node)
	if n.parent == nil {
		return nil, false
	}
	return n.parent, true
}

func (d *DumpTree) FirstChild(container Node) (Node, bool) {
	n := asDumpNode(container)
	if len(n.children) == 0 {
		return nil, false
	}
	return n.children[0], true
}

// Fire simulates a host event named eventName arriving at node: it reads
// back the (a, b) identity AddEventListener recorded and calls the
// trampoline DumpTree was constructed with, exactly as a real browser
// binding's event callback would after reading the dodrio-a-/dodrio-b-
// attributes off the target element.
func (d *DumpTree) Fire(node Node, eventName string, raw any) {
	n := asDumpNode(node)
	id, ok := n.listeners[eventName]
	if !ok || d.trampoline == nil {
		return
	}
	d.trampoline(events.JoinID(id[0], id[1]), eventName, raw)
}

// String renders the tree rooted at container as indented pseudo-markup,
// for test failure messages and the CLI's render output.
func (d *DumpTree) String() string {
	var b strings.Builder
	dumpNodeString(&b, d.root, 0)
	return b.String()
}

func dumpNodeString(b *strings.Builder, n *dumpNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.tag == "" || n.tag == "#mount" {
		if n.tag == "" {
			b.WriteString(indent)
			b.WriteString(strconv.Quote(n.text))
			b.WriteString("\n")
			return
		}
	} else {
		b.WriteString(indent)
		b.WriteString("<")
		b.WriteString(n.tag)
		if n.class != "" {
			b.WriteString(` class="`)
			b.WriteString(n.class)
			b.WriteString(`"`)
		}
		for _, name := range sortedKeys(n.attributes) {
			b.WriteString(" ")
			b.WriteString(name)
			b.WriteString(`="`)
			b.WriteString(n.attributes[name])
			b.WriteString(`"`)
		}
		b.WriteString(">\n")
		if n.text != "" {
			b.WriteString(indent)
			b.WriteString("  ")
			b.WriteString(strconv.Quote(n.text))
			b.WriteString("\n")
		}
	}
	for _, c := range n.children {
		dumpNodeString(b, c, depth+1)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if strings.HasPrefix(k, "dodrio-") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func indexOfDump(nodes []*dumpNode, target *dumpNode) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}
