package page

import "github.com/myrjola/constellation/internal/markup"

type op int

const (
	opText op = iota
	opChildren
	opSetAttr
	opRemoveAttr
	opAddClass
	opRemoveClass
)

// Patch is one change to a hooked region. Hydrators return patches and [Page.Apply] commits them.
type Patch struct {
	Hook  Hook
	op    op
	text  string
	nodes []*markup.Node
	key   string
}

// SetText replaces the content of the region with text.
func SetText(h Hook, text string) Patch {
	return Patch{Hook: h, op: opText, text: text}
}

// SetChildren replaces the content of the region with nodes. No nodes clears the region.
func SetChildren(h Hook, nodes ...*markup.Node) Patch {
	return Patch{Hook: h, op: opChildren, nodes: nodes}
}

// SetAttr sets an attribute on the region element.
func SetAttr(h Hook, key, val string) Patch {
	return Patch{Hook: h, op: opSetAttr, key: key, text: val}
}

// RemoveAttr removes an attribute from the region element.
func RemoveAttr(h Hook, key string) Patch {
	return Patch{Hook: h, op: opRemoveAttr, key: key}
}

// Flag sets the boolean attribute key when on, otherwise removes it.
func Flag(h Hook, key string, on bool) Patch {
	if on {
		return SetAttr(h, key, "")
	}
	return RemoveAttr(h, key)
}

// Hidden hides or reveals the region.
func Hidden(h Hook, hidden bool) Patch {
	return Flag(h, "hidden", hidden)
}

// Class adds the class to the region when on, otherwise removes it.
func Class(h Hook, class string, on bool) Patch {
	if on {
		return Patch{Hook: h, op: opAddClass, key: class}
	}
	return Patch{Hook: h, op: opRemoveClass, key: class}
}

// Text returns the text a SetText patch writes.
func (p Patch) Text() (string, bool) {
	return p.text, p.op == opText
}

// Children returns the nodes a SetChildren patch writes.
func (p Patch) Children() ([]*markup.Node, bool) {
	return p.nodes, p.op == opChildren
}

// Attr returns the attribute a SetAttr patch writes.
func (p Patch) Attr() (string, string, bool) {
	return p.key, p.text, p.op == opSetAttr
}

// Removes reports whether the patch removes attribute key.
func (p Patch) Removes(key string) bool {
	return p.op == opRemoveAttr && p.key == key
}

// Adds reports whether the patch adds class.
func (p Patch) Adds(class string) bool {
	return p.op == opAddClass && p.key == class
}

// Find returns the patches for hook h in order.
func Find(patches []Patch, h Hook) []Patch {
	var found []Patch
	for _, p := range patches {
		if p.Hook == h {
			found = append(found, p)
		}
	}
	return found
}
