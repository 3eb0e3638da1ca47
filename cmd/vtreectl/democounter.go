package main

import (
	"fmt"

	"github.com/forgelogic/vtree/events"
	"github.com/forgelogic/vtree/render"
	"github.com/forgelogic/vtree/vnode"
)

// counter is vtreectl's built-in demo component, a direct Go rendition of
// the original project's own counter example
// (examples/counter/src/lib.rs): a <div> with a "+" button, the current
// count as text, and a "-" button, each button wired to a listener that
// mutates the count. The listeners do not schedule a re-render themselves;
// the render command renders again after each simulated click.
type counter struct {
	val int
}

func newCounter() *counter { return &counter{} }

func (c *counter) increment() { c.val++ }
func (c *counter) decrement() { c.val-- }

func (c *counter) Render(cx *render.RenderContext) vnode.Node {
	return vnode.Element(vnode.None, "div", nil, nil, []vnode.Node{
		vnode.Element(vnode.None, "button", []vnode.Listener{
			{Event: "click", Callback: events.AdaptNoArgEvent(c.increment)},
		}, nil, []vnode.Node{vnode.Text("+")}, ""),
		vnode.Text(fmt.Sprintf("%d", c.val)),
		vnode.Element(vnode.None, "button", []vnode.Listener{
			{Event: "click", Callback: events.AdaptNoArgEvent(c.decrement)},
		}, nil, []vnode.Node{vnode.Text("-")}, ""),
	}, "")
}
