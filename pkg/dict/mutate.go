package dict

import (
	"fmt"
	"strconv"
)

// rehash recomputes the subtree's hashes after a rename or move and keeps
// the index in step, removing each node under its stale hash before
// reinserting it under the fresh one.
func (d *Dict) rehash(n *Node) {
	if n.parent != nil {
		if n.flags&FlagIndexed != 0 {
			d.index.delete(n)
			n.flags &^= FlagIndexed
		}
		n.hash = mixHash(nameHash(n.name), n.parent.hash)
		if d.index != nil {
			d.index.put(n)
			n.flags |= FlagIndexed
		}
	}
	for c := n.firstChild; c != nil; c = c.next {
		d.rehash(c)
	}
}

// Rename gives the node a new name. The root cannot be renamed, and neither
// can array members, whose names are their positions. Renaming to the
// current name is a no-op.
func (d *Dict) Rename(n *Node, newName string) error {
	if err := d.checkOwned(n); err != nil {
		return err
	}
	if n.parent == nil {
		return fmt.Errorf("cannot rename the root node: %w", ErrFailed)
	}
	if n.parent.kind == KindArray {
		return fmt.Errorf("array members are named by position: %w", ErrFailed)
	}
	if newName == n.name {
		return nil
	}
	if d.childByName(n.parent, newName) != nil {
		return fmt.Errorf("node %q already exists under %q: %w", newName, n.parent.name, ErrExists)
	}
	newHash := mixHash(nameHash(newName), n.parent.hash)
	n.name = newName
	n.flags &^= FlagQuotedName
	n.flags |= FlagModified
	if newHash != n.hash {
		d.rehash(n)
	}
	return nil
}

// Move reparents the node, keeping its name unless the new parent is an
// array, where it takes the next ordinal. Moving a node into its own
// subtree is refused. The whole subtree is rehashed under the new path.
func (d *Dict) Move(n, newParent *Node) error {
	if err := d.checkOwned(n); err != nil {
		return err
	}
	if newParent == nil {
		return fmt.Errorf("nil target: %w", ErrNotFound)
	}
	if newParent.dict != d {
		return fmt.Errorf("target %q: %w", newParent.name, ErrWrongDict)
	}
	if n.parent == nil {
		return fmt.Errorf("cannot move the root node: %w", ErrFailed)
	}
	if newParent == n.parent {
		return nil
	}
	if n.isAncestorOf(newParent) {
		return fmt.Errorf("cannot move %q into its own subtree: %w", n.name, ErrFailed)
	}
	if newParent.kind != KindArray && d.childByName(newParent, n.name) != nil {
		return fmt.Errorf("node %q already exists under %q: %w", n.name, newParent.name, ErrExists)
	}
	n.parent.unlinkChild(n)
	if newParent.kind == KindArray {
		n.name = strconv.Itoa(newParent.childCount)
		n.flags &^= FlagQuotedName
	}
	n.parent = newParent
	newParent.appendChild(n)
	n.flags |= FlagModified
	d.rehash(n)
	return nil
}

// Copy duplicates the subtree rooted at n under newParent, named newName
// (or the source's name when empty). The source may belong to another
// dictionary; the destination may not be inside the source subtree, since
// the copy would then feed on its own output.
func (d *Dict) Copy(n, newParent *Node, newName string) (*Node, error) {
	if n == nil {
		return nil, fmt.Errorf("nil source: %w", ErrNotFound)
	}
	if err := d.checkOwned(newParent); err != nil {
		return nil, err
	}
	name := newName
	if name == "" {
		name = n.name
	}
	if newParent.kind != KindArray && d.childByName(newParent, name) != nil {
		return nil, fmt.Errorf("node %q already exists under %q: %w", name, newParent.name, ErrExists)
	}
	if n.isAncestorOf(newParent) {
		return nil, fmt.Errorf("cannot copy %q into its own subtree: %w", n.name, ErrFailed)
	}
	cp := d.copySubtree(n, newParent, name)
	cp.flags |= FlagModified
	return cp, nil
}

// copySubtree clones src under parent. Kind, value, quoting and own-state
// bits carry over; hashes, index entries and inherited bits are rebuilt
// for the new location by createNode.
func (d *Dict) copySubtree(src, parent *Node, name string) *Node {
	n := d.createNode(parent, src.kind, name)
	n.value = src.value
	n.flags |= src.flags & (FlagQuotedValue | ownStateMask)
	if parent.kind != KindArray {
		n.flags |= src.flags & FlagQuotedName
	}
	for c := src.firstChild; c != nil; c = c.next {
		d.copySubtree(c, n, c.name)
	}
	return n
}
