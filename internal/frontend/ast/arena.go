package ast

import "fmt"

// Arena is the append-only node store of one compilation unit.
type Arena struct {
	nodes []Node
}

func NewArena(capHint int) *Arena {
	return &Arena{nodes: make([]Node, 0, capHint)}
}

// Push appends n and returns its handle. Every child of n must already be
// in the arena, so trees are always built bottom-up.
func (a *Arena) Push(n Node) Handle {
	for _, child := range n.Children() {
		if !a.Valid(child) {
			panic(fmt.Sprintf("ast: %s references handle %d not yet in arena (len %d)", n.Kind(), child, len(a.nodes)))
		}
	}
	a.nodes = append(a.nodes, n)
	return Handle(len(a.nodes) - 1)
}

// Get returns the node for h. It panics on a handle this arena never issued.
func (a *Arena) Get(h Handle) Node {
	if !a.Valid(h) {
		panic(fmt.Sprintf("ast: invalid handle %d (len %d)", h, len(a.nodes)))
	}
	return a.nodes[h]
}

func (a *Arena) Valid(h Handle) bool {
	return h >= 0 && int(h) < len(a.nodes)
}

func (a *Arena) Len() int {
	return len(a.nodes)
}
