package dict

import "strings"

// nextSegment scans the next separator-delimited segment of a query
// starting at pos, expanding escape sequences (the separator itself can be
// escaped, so names containing it round-trip). Returns the cleaned segment,
// the position to resume from, and whether a segment was found.
func nextSegment(q string, pos int, sep byte) (string, int, bool) {
	// skip separators and anything a segment cannot start with; an escape
	// can start a segment since it may encode the separator itself
	for pos < len(q) && (q[pos] == sep || (q[pos] != escapeChar && !chclass(q[pos], clToken|clExt))) {
		pos++
	}
	if pos >= len(q) {
		return "", pos, false
	}
	var b strings.Builder
	for pos < len(q) && q[pos] != sep {
		c := q[pos]
		if c == escapeChar && pos+1 < len(q) {
			// same rule as quoted strings: mapped escapes expand, anything
			// else keeps the byte and drops the backslash
			b.WriteByte(escIn[q[pos+1]])
			pos += 2
			continue
		}
		b.WriteByte(c)
		pos++
	}
	if pos < len(q) {
		pos++ // consume the separator
	}
	return b.String(), pos, true
}

// cleanQuery rewrites a query as unescaped segments joined by single
// separators, matching what Path produces, so the two can be compared
// byte for byte.
func cleanQuery(q string, sep byte) string {
	var b strings.Builder
	pos := 0
	for {
		seg, np, ok := nextSegment(q, pos, sep)
		pos = np
		if !ok {
			break
		}
		if seg == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(seg)
	}
	return b.String()
}

// pathHash folds each query segment into start's hash with the same mix
// used at node creation, yielding the hash the target node must carry.
func pathHash(start *Node, q string, sep byte) uint32 {
	h := start.hash
	pos := 0
	for {
		seg, np, ok := nextSegment(q, pos, sep)
		pos = np
		if !ok {
			break
		}
		h = mixHash(nameHash(seg), h)
	}
	return h
}

// Path returns the node's full path from the root, segments joined by the
// dictionary's separator. The root's path is empty. Names are emitted raw;
// use PathEscaped when the result must be parseable as a query.
func (n *Node) Path() string {
	return n.path(false)
}

// PathEscaped is Path with escape sequences applied, including for the
// separator, so names containing it survive a round trip through Get.
func (n *Node) PathEscaped() string {
	return n.path(true)
}

func (n *Node) path(escaped bool) string {
	if n == nil || n.parent == nil {
		return ""
	}
	sep := byte(DefaultPathSep)
	if n.dict != nil {
		sep = n.dict.pathSep
	}
	var segs []string
	for w := n; w.parent != nil; w = w.parent {
		name := w.name
		if escaped {
			name = escapeSegment(name, sep)
		}
		segs = append(segs, name)
	}
	var b strings.Builder
	for i := len(segs) - 1; i >= 0; i-- {
		b.WriteString(segs[i])
		if i > 0 {
			b.WriteByte(sep)
		}
	}
	return b.String()
}

func escapeSegment(name string, sep byte) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if chclass(c, clEscOut) || c == sep {
			b.WriteByte(escapeChar)
			b.WriteByte(escOut[c])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Get resolves a path query against the dictionary root. A nil result
// means no node matched.
func (d *Dict) Get(query string) *Node {
	return d.getNode(d.root, query)
}

// Get resolves a path query relative to the node.
func (n *Node) Get(query string) *Node {
	if n == nil || n.dict == nil {
		return nil
	}
	return n.dict.getNode(n, query)
}

// getNode resolves a query starting at start. With an index present the
// compound hash selects a collision chain and each candidate is confirmed
// by a full-path comparison, so colliding hashes can never satisfy the
// wrong query. Without one the tree is walked a segment at a time.
func (d *Dict) getNode(start *Node, query string) *Node {
	sep := d.pathSep
	clean := cleanQuery(query, sep)
	if clean == "" {
		return start
	}

	if d.index != nil {
		want := clean
		if start.parent != nil {
			if sp := start.Path(); sp != "" {
				want = sp + string(sep) + clean
			}
		}
		for _, cand := range d.index.get(pathHash(start, query, sep)) {
			if cand.kind == KindVariable {
				continue
			}
			if cand.Path() == want {
				return cand
			}
		}
		return nil
	}

	cur := start
	pos := 0
	for cur != nil {
		seg, np, ok := nextSegment(query, pos, sep)
		pos = np
		if !ok {
			break
		}
		cur = d.childByName(cur, seg)
	}
	if cur == nil || cur.kind == KindVariable {
		return nil
	}
	return cur
}
