package nametrie

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultKeyFieldWidth is the minimum display width of the name column in
// EnumeratePrefix output.
const DefaultKeyFieldWidth = 20

// Trie owns the root node and implements the public operations on top of a
// single shared prefix walk. It is built once by sequential Insert calls;
// after building stops it is safe for concurrent readers because nothing
// mutates it anymore. There is no internal locking.
type Trie struct {
	root       *Node
	fieldWidth int
}

// New returns an empty trie with the default display field width.
func New() *Trie {
	return NewWithFieldWidth(DefaultKeyFieldWidth)
}

// NewWithFieldWidth returns an empty trie whose EnumeratePrefix output pads
// the name column to at least width characters.
func NewWithFieldWidth(width int) *Trie {
	if width < 1 {
		width = DefaultKeyFieldWidth
	}
	return &Trie{
		root:       newNode(rootChar, 0),
		fieldWidth: width,
	}
}

// Prefix walks from the root and returns the deepest node reachable along
// key: the longest prefix of key already present in the trie. An empty key,
// or a miss on the very first character, yields the root itself. Insert,
// Search and EnumeratePrefix are all built on this walk.
func (t *Trie) Prefix(key string) *Node {
	node := t.root
	for _, r := range key {
		child := node.FindChild(r)
		if child == nil {
			break
		}
		node = child
	}
	return node
}

// Insert records weight for name under category. The name is trimmed of
// surrounding whitespace and case-folded before insertion. Missing path
// nodes are created lazily; a repeated (name, category) pair overwrites the
// previous weight. Insert accepts any name, category and weight, including
// empty strings and non-positive weights, and never fails.
func (t *Trie) Insert(name, category string, weight float64) {
	runes := []rune(strings.ToLower(strings.TrimSpace(name)))
	node := t.Prefix(string(runes))

	if node.depth == len(runes) {
		// The whole name already exists as a path (possibly the root, for
		// an empty name): update in place, last write wins per category.
		if node.record == nil {
			node.record = make(map[string]float64, 1)
		}
		node.record[category] = weight
		return
	}

	for _, r := range runes[node.depth:] {
		child := newNode(r, node.depth+1)
		node.addChild(child)
		node = child
	}
	node.record = map[string]float64{category: weight}
}

// Search returns the per-category weights recorded for name, or false when
// name is not a complete entry. A name present only as a prefix of longer
// names reports false exactly like a name never inserted; the node model
// cannot tell those two apart. The returned map is the trie's own and must
// not be mutated.
func (t *Trie) Search(name string) (map[string]float64, bool) {
	node := t.Prefix(name)
	if node.depth != utf8.RuneCountInString(name) || node.record == nil {
		return nil, false
	}
	return node.record, true
}

// EnumeratePrefix returns one formatted line per stored name that begins
// with prefix, in pre-order, depth-first, ascending-character order:
//
//	samuel              (m:0.0027)
//
// Category pairs inside a line are joined in ascending label order. A name
// exactly equal to prefix is never emitted, even when it is a complete
// entry; enumeration lists strictly longer completions only, and callers
// that need the prefix itself use Search. If prefix is not a path in the
// trie at all, the result is empty.
func (t *Trie) EnumeratePrefix(prefix string) []string {
	node := t.Prefix(prefix)
	if node.depth < utf8.RuneCountInString(prefix) {
		return nil
	}
	return t.collect(node, strings.ToLower(prefix), nil)
}

// collect appends one line per terminal node below n, rebuilding each name
// from the path walked so far.
func (t *Trie) collect(n *Node, key string, lines []string) []string {
	for _, r := range n.order {
		child := n.children[r]
		childKey := key + string(r)
		if child.record != nil {
			lines = append(lines, t.formatLine(childKey, child.record))
		}
		lines = t.collect(child, childKey, lines)
	}
	return lines
}

// formatLine pads the name column to the configured width, always with at
// least one space, then joins category:weight pairs sorted by label.
func (t *Trie) formatLine(name string, record map[string]float64) string {
	pad := t.fieldWidth - utf8.RuneCountInString(name)
	if pad < 1 {
		pad = 1
	}

	labels := make([]string, 0, len(record))
	for label := range record {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	pairs := make([]string, len(labels))
	for i, label := range labels {
		pairs[i] = label + ":" + strconv.FormatFloat(record[label], 'g', -1, 64)
	}
	return name + strings.Repeat(" ", pad) + "(" + strings.Join(pairs, ", ") + ")"
}
