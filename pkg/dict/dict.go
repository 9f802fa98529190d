// Package dict implements a parser for Juniper/gated-style hierarchical
// configuration text (tolerant of JSON-like input) and the searchable
// dictionary it produces: a labeled tree indexed by rolling path hashes,
// with path queries, mutation and re-serialization.
//
// All operations assume a single writer; concurrent readers are safe only
// while no mutation is in flight.
package dict

// DictFlags configure a dictionary at creation time.
type DictFlags uint32

const (
	// NoIndex disables the hash index; queries fall back to walking the
	// tree level by level.
	NoIndex DictFlags = 1 << iota
	// ReadOnly rejects mutation through the public API. Parsing into the
	// dictionary is still allowed, so loaded content can be frozen.
	ReadOnly
)

// Dict owns a tree of nodes and, unless created with NoIndex, a hash index
// over them. The root node is created with the dictionary and lives as
// long as it does.
type Dict struct {
	name      string
	flags     DictFlags
	root      *Node
	index     *index
	pathSep   byte
	nodeCount int
}

// New creates a dictionary with a root node and, unless NoIndex is given,
// an empty index.
func New(name string, flags DictFlags) *Dict {
	d := &Dict{
		name:    name,
		flags:   flags,
		pathSep: DefaultPathSep,
	}
	if flags&NoIndex == 0 {
		d.index = newIndex()
	}
	d.createNode(nil, KindRoot, "")
	return d
}

// NewWithPathSep creates a dictionary whose path queries use sep instead
// of the default separator.
func NewWithPathSep(name string, flags DictFlags, sep byte) *Dict {
	d := New(name, flags)
	d.pathSep = sep
	return d
}

func (d *Dict) Name() string     { return d.name }
func (d *Dict) Flags() DictFlags { return d.flags }
func (d *Dict) Root() *Node      { return d.root }

// NodeCount returns the number of nodes in the tree, root included.
func (d *Dict) NodeCount() int { return d.nodeCount }

// Clear removes every node except the permanent root.
func (d *Dict) Clear() {
	for c := d.root.firstChild; c != nil; c = d.root.firstChild {
		d.deleteNode(c)
	}
}

// Duplicate deep-copies src into a fresh dictionary with its own name and
// flags. The copy walk threads each freshly created parent down to the
// calls that copy its children, so no source-to-destination map is needed.
func Duplicate(src *Dict, name string, flags DictFlags) *Dict {
	dest := New(name, flags&^ReadOnly)
	for c := src.root.firstChild; c != nil; c = c.next {
		dest.copySubtree(c, dest.root, c.name)
	}
	dest.flags = flags
	return dest
}
