package nametrie

import "testing"

func TestFindChildFoldsCase(t *testing.T) {
	parent := newNode(rootChar, 0)
	child := newNode('A', 1)
	parent.addChild(child)

	if child.Char() != 'a' {
		t.Errorf("constructed char = %q, want folded 'a'", child.Char())
	}
	if parent.FindChild('a') != child || parent.FindChild('A') != child {
		t.Error("FindChild must fold the lookup character")
	}
	if parent.FindChild('b') != nil {
		t.Error("FindChild for an absent character must return nil")
	}
}

func TestAddChildKeepsOrder(t *testing.T) {
	parent := newNode(rootChar, 0)
	for _, r := range "dzabc" {
		parent.addChild(newNode(r, 1))
	}

	want := "abcdz"
	if string(parent.order) != want {
		t.Errorf("child order = %q, want %q", string(parent.order), want)
	}
}
