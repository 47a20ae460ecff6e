// Package nametrie is the core, providing the prefix-tree index that stores given names with per-category frequency weights and the traversals behind lookup and enumeration.
package nametrie

// Index defines the operations a name-frequency index exposes
type Index interface {
	// Insert records weight for name under the given category label
	Insert(name, category string, weight float64)

	// Search returns the per-category weights for an exact name
	Search(name string) (map[string]float64, bool)

	// EnumeratePrefix returns one formatted display line per stored name
	// beginning with prefix, in lexicographic order
	EnumeratePrefix(prefix string) []string
}
