package dict

import (
	"fmt"
	"strconv"
)

// Kind is the structural role of a node.
type Kind uint8

const (
	KindBranch   Kind = iota // children only, no value
	KindLeaf                 // value only, no children
	KindArray                // children are ordinal-named
	KindInstance             // grouping node for named-collection syntax
	KindVariable             // reserved, skipped by queries
	KindRoot                 // exactly one per dictionary
)

func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindLeaf:
		return "leaf"
	case KindArray:
		return "array"
	case KindInstance:
		return "instance"
	case KindVariable:
		return "variable"
	case KindRoot:
		return "root"
	default:
		return "unknown"
	}
}

// Flags carries per-node state bits. The four own-state bits each have an
// inherited counterpart exactly four positions up, so a child's inherited
// set is computed from its parent in constant time.
type Flags uint32

const (
	FlagQuotedName Flags = 1 << iota
	FlagQuotedValue
	FlagIndexed
	FlagModified
	FlagInactive
	FlagRemoved
	FlagAdded
	FlagGenerated
	FlagIInactive
	FlagIRemoved
	FlagIAdded
	FlagIGenerated
)

const (
	ownStateShift           = 4
	ownStateMask            = FlagInactive | FlagRemoved | FlagAdded | FlagGenerated
	inheritedMask           = FlagIInactive | FlagIRemoved | FlagIAdded | FlagIGenerated
)

// inheritedBits derives a new child's inherited set from its parent: a bit
// is inherited when the parent owns it or inherited it.
func inheritedBits(parent Flags) Flags {
	return ((parent & ownStateMask) << ownStateShift) | (parent & inheritedMask)
}

// Node is a single entry in the tree. The name, kind and flags are fixed at
// creation except through the dictionary's mutation operations, which keep
// the hash chain and index consistent.
type Node struct {
	name  string
	value string
	kind  Kind
	flags Flags
	hash  uint32

	dict   *Dict
	parent *Node

	firstChild *Node
	lastChild  *Node
	prev, next *Node
	childCount int
}

func (n *Node) Name() string  { return n.name }
func (n *Node) Value() string { return n.value }
func (n *Node) Kind() Kind    { return n.kind }
func (n *Node) Flags() Flags  { return n.flags }
func (n *Node) Hash() uint32  { return n.hash }
func (n *Node) Parent() *Node { return n.parent }
func (n *Node) Dict() *Dict   { return n.dict }

// HasFlag reports whether all bits in f are set.
func (n *Node) HasFlag(f Flags) bool { return n.flags&f == f }

// SetState sets own-state bits (inactive, removed, added, generated) on the
// node. Descendants created afterwards inherit them; existing descendants
// are not rescanned.
func (n *Node) SetState(f Flags) { n.flags |= f & ownStateMask }

// ClearState clears own-state bits.
func (n *Node) ClearState(f Flags) { n.flags &^= f & ownStateMask }

// FirstChild returns the first child in declaration order, nil if none.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, nil if none.
func (n *Node) LastChild() *Node { return n.lastChild }

// Next returns the next sibling.
func (n *Node) Next() *Node { return n.next }

// Prev returns the previous sibling.
func (n *Node) Prev() *Node { return n.prev }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return n.childCount }

// Children collects the direct children into a slice.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, n.childCount)
	for c := n.firstChild; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// appendChild links c as the last child of n.
func (n *Node) appendChild(c *Node) {
	c.prev = n.lastChild
	c.next = nil
	if n.lastChild != nil {
		n.lastChild.next = c
	} else {
		n.firstChild = c
	}
	n.lastChild = c
	n.childCount++
}

// unlinkChild detaches c from n's child list. c's subtree is untouched.
func (n *Node) unlinkChild(c *Node) {
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		n.firstChild = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else {
		n.lastChild = c.prev
	}
	c.prev, c.next = nil, nil
	n.childCount--
}

// isAncestorOf reports whether n is a (transitive) parent of other.
func (n *Node) isAncestorOf(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// createNode is the internal constructor used by the parser and the public
// wrappers. A nil parent creates the root. Children of arrays are named by
// their ordinal regardless of the supplied name; the ordinal is assigned
// once and never renumbered, so an array member's identity is stable even
// when earlier siblings are deleted.
func (d *Dict) createNode(parent *Node, kind Kind, name string) *Node {
	n := &Node{kind: kind, dict: d}

	if parent == nil {
		n.kind = KindRoot
		n.hash = rootHashVal
		d.root = n
		d.nodeCount++
		return n
	}

	if parent.kind == KindArray {
		name = strconv.Itoa(parent.childCount)
	}
	n.name = name
	n.parent = parent
	n.hash = mixHash(nameHash(name), parent.hash)
	n.flags = inheritedBits(parent.flags)
	parent.appendChild(n)

	if d.index != nil {
		d.index.put(n)
		n.flags |= FlagIndexed
	}

	d.nodeCount++
	return n
}

// CreateNode creates a named node under parent. Unlike the parser, which
// may attach several equally named siblings, the public constructor refuses
// a duplicate name under the same parent.
func (d *Dict) CreateNode(parent *Node, kind Kind, name string) (*Node, error) {
	if parent == nil {
		return nil, fmt.Errorf("nil parent: %w", ErrFailed)
	}
	if parent.dict != d {
		return nil, fmt.Errorf("parent %q: %w", parent.name, ErrWrongDict)
	}
	if kind == KindRoot {
		return nil, fmt.Errorf("dictionary %q already has a root: %w", d.name, ErrFailed)
	}
	if d.flags&ReadOnly != 0 {
		return nil, fmt.Errorf("dictionary %q is read-only: %w", d.name, ErrFailed)
	}
	if parent.kind != KindArray && d.childByName(parent, name) != nil {
		return nil, fmt.Errorf("%q under %q: %w", name, parent.name, ErrExists)
	}
	return d.createNode(parent, kind, name), nil
}

// SetValue replaces the node's value.
func (d *Dict) SetValue(n *Node, value string) error {
	if err := d.checkOwned(n); err != nil {
		return err
	}
	n.value = value
	n.flags &^= FlagQuotedValue
	n.flags |= FlagModified
	return nil
}

// DeleteNode removes a node and its subtree: children go first, post-order,
// each removed from the index before being unlinked. The root node is
// permanent; deleting it empties the dictionary but keeps the root.
func (d *Dict) DeleteNode(n *Node) error {
	if n == nil {
		return fmt.Errorf("nil node: %w", ErrNotFound)
	}
	if n.dict != d {
		return fmt.Errorf("node %q: %w", n.name, ErrWrongDict)
	}
	if d.flags&ReadOnly != 0 {
		return fmt.Errorf("dictionary %q is read-only: %w", d.name, ErrFailed)
	}
	d.deleteNode(n)
	return nil
}

func (d *Dict) deleteNode(n *Node) {
	if n.flags&FlagIndexed != 0 {
		d.index.delete(n)
		n.flags &^= FlagIndexed
	}
	for c := n.firstChild; c != nil; c = n.firstChild {
		d.deleteNode(c)
	}
	if n.parent != nil {
		n.parent.unlinkChild(n)
		n.dict = nil
		d.nodeCount--
	}
}

// childByName finds a direct child of parent by name, through the index
// when the dictionary has one, otherwise by scanning the child list from
// both ends toward the middle.
func (d *Dict) childByName(parent *Node, name string) *Node {
	if parent == nil || name == "" {
		return nil
	}
	h := mixHash(nameHash(name), parent.hash)

	if d.index != nil {
		for _, n := range d.index.get(h) {
			if n.parent == parent && n.name == name {
				return n
			}
		}
		return nil
	}

	f, b := parent.firstChild, parent.lastChild
	for f != nil {
		if f.hash == h && f.name == name {
			return f
		}
		if b != f && b.hash == h && b.name == name {
			return b
		}
		if f == b || f.next == b {
			break
		}
		f, b = f.next, b.prev
	}
	return nil
}

func (d *Dict) checkOwned(n *Node) error {
	if n == nil {
		return fmt.Errorf("nil node: %w", ErrNotFound)
	}
	if n.dict != d {
		return fmt.Errorf("node %q: %w", n.name, ErrWrongDict)
	}
	if d.flags&ReadOnly != 0 {
		return fmt.Errorf("dictionary %q is read-only: %w", d.name, ErrFailed)
	}
	return nil
}
