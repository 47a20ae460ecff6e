package nametrie

import (
	"sort"
	"unicode"
)

// rootChar marks the root node, which sits on no real key path.
const rootChar = rune(0)

// Node is a single position on a key path. It owns its children, keyed by
// case-folded character, and carries a terminal record only when some
// inserted name ends exactly at this node.
type Node struct {
	char     rune
	depth    int
	children map[rune]*Node
	order    []rune // child characters, kept sorted ascending
	record   map[string]float64
}

func newNode(char rune, depth int) *Node {
	return &Node{
		char:     unicode.ToLower(char),
		depth:    depth,
		children: make(map[rune]*Node),
	}
}

// FindChild returns the child for the case-folded character, or nil when no
// such path exists. A nil result is the normal walk-termination signal,
// never an error.
func (n *Node) FindChild(char rune) *Node {
	return n.children[unicode.ToLower(char)]
}

// addChild attaches child and keeps the order slice sorted, so traversals
// iterate children in ascending character order without re-sorting.
func (n *Node) addChild(child *Node) {
	n.children[child.char] = child
	i := sort.Search(len(n.order), func(i int) bool { return n.order[i] >= child.char })
	n.order = append(n.order, 0)
	copy(n.order[i+1:], n.order[i:])
	n.order[i] = child.char
}

// Char returns the case-folded character this node represents.
func (n *Node) Char() rune { return n.char }

// Depth returns the number of characters from the root to this node.
// The root reports 0.
func (n *Node) Depth() int { return n.depth }

// Record returns the terminal record, or nil when no name ends here.
// The map is the node's own; callers must not mutate it.
func (n *Node) Record() map[string]float64 { return n.record }
