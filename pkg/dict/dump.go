package dict

import (
	"fmt"
	"io"
	"strings"
)

// dumper wraps the output writer with a sticky error so the recursive
// emitters do not have to thread one through every call.
type dumper struct {
	w   io.Writer
	err error
}

func (dm *dumper) writef(format string, args ...any) {
	if dm.err != nil {
		return
	}
	_, dm.err = fmt.Fprintf(dm.w, format, args...)
}

func indent(level int) string {
	return strings.Repeat(" ", level*indentWidth)
}

// emitName renders a name or value, quoting it when it was quoted in the
// source or when it contains bytes a bare token cannot carry, and escaping
// whatever needs escaping inside the quotes.
func emitName(s string, quoted bool) string {
	if !quoted {
		quoted = s == ""
		for i := 0; i < len(s) && !quoted; i++ {
			if !chclass(s[i], clToken|clExt) {
				quoted = true
			}
		}
		if !quoted {
			return s
		}
	}
	var b strings.Builder
	b.WriteByte(quoteChar)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if chclass(c, clEscOut) && c != quoteAltChar {
			b.WriteByte(escapeChar)
			b.WriteByte(escOut[c])
			continue
		}
		b.WriteByte(c)
	}
	b.WriteByte(quoteChar)
	return b.String()
}

// Dump serializes the subtree rooted at n to w in the text format the
// parser reads, so output re-parses to an equivalent tree.
func (n *Node) Dump(w io.Writer) error {
	dm := &dumper{w: w}
	dm.node(n, 0, "")
	return dm.err
}

// Dump serializes the whole dictionary.
func (d *Dict) Dump(w io.Writer) error {
	return d.root.Dump(w)
}

// String renders the dictionary as text.
func (d *Dict) String() string {
	var b strings.Builder
	d.Dump(&b)
	return b.String()
}

// node emits one node. prefix carries accumulated instance names: an
// instance node itself emits nothing, instead prepending its name to each
// member, which reproduces the "car vw { ... }" form the parser folds into
// an instance on the way in.
func (dm *dumper) node(n *Node, level int, prefix string) {
	switch n.kind {
	case KindRoot:
		for c := n.firstChild; c != nil; c = c.next {
			dm.node(c, level, "")
		}
	case KindInstance:
		p := prefix + emitName(n.name, n.flags&FlagQuotedName != 0) + " "
		for c := n.firstChild; c != nil; c = c.next {
			dm.node(c, level, p)
		}
	case KindBranch:
		// an instance member holding a single leaf collapses back to the
		// inline "a b c value;" form it was parsed from
		if prefix != "" && n.childCount == 1 && n.firstChild.kind == KindLeaf {
			leaf := n.firstChild
			dm.writef("%s%s%s %s", indent(level), prefix,
				emitName(n.name, n.flags&FlagQuotedName != 0),
				emitName(leaf.name, leaf.flags&FlagQuotedName != 0))
			if leaf.value != "" {
				dm.writef(" %s", emitName(leaf.value, leaf.flags&FlagQuotedValue != 0))
			}
			dm.writef("%c\n", endValChar)
			return
		}
		dm.writef("%s%s%s %c\n", indent(level), prefix,
			emitName(n.name, n.flags&FlagQuotedName != 0), startBlockChar)
		for c := n.firstChild; c != nil; c = c.next {
			dm.node(c, level+1, "")
		}
		dm.writef("%s%c\n", indent(level), endBlockChar)
	case KindArray:
		dm.writef("%s%s%s %c", indent(level), prefix,
			emitName(n.name, n.flags&FlagQuotedName != 0), startArrayChar)
		for c := n.firstChild; c != nil; c = c.next {
			dm.member(c, level)
		}
		dm.writef(" %c%c\n", endArrayChar, endValChar)
	default:
		dm.writef("%s%s%s", indent(level), prefix,
			emitName(n.name, n.flags&FlagQuotedName != 0))
		if n.value != "" {
			dm.writef(" %s", emitName(n.value, n.flags&FlagQuotedValue != 0))
		}
		dm.writef("%c\n", endValChar)
	}
}

// member emits one array element. Elements are anonymous, so leaves print
// just their value, and nested blocks and arrays print without names or
// terminators.
func (dm *dumper) member(n *Node, level int) {
	switch n.kind {
	case KindBranch, KindInstance:
		dm.writef(" %c\n", startBlockChar)
		for c := n.firstChild; c != nil; c = c.next {
			dm.node(c, level+1, "")
		}
		dm.writef("%s%c", indent(level), endBlockChar)
	case KindArray:
		dm.writef(" %c", startArrayChar)
		for c := n.firstChild; c != nil; c = c.next {
			dm.member(c, level)
		}
		dm.writef(" %c", endArrayChar)
	default:
		dm.writef(" %s", emitName(n.value, n.flags&FlagQuotedValue != 0))
	}
}
