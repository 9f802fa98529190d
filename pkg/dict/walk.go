package dict

// WalkFunc is invoked for every node visited by Walk. The feedback argument
// carries whatever the callback returned when visiting the node's parent,
// which lets a walk thread per-branch state (an accumulated path, a copy
// target) down the tree without any external bookkeeping. Returning false
// stops the walk.
type WalkFunc func(n *Node, feedback any) (out any, cont bool)

// Walk traverses the subtree rooted at n depth first, parents before
// children. It returns the node the callback stopped at, or nil if the
// walk ran to completion.
func (n *Node) Walk(feedback any, fn WalkFunc) *Node {
	out, cont := fn(n, feedback)
	if !cont {
		return n
	}
	for c := n.firstChild; c != nil; c = c.next {
		if stop := c.Walk(out, fn); stop != nil {
			return stop
		}
	}
	return nil
}

// Walk traverses the whole dictionary starting at the root.
func (d *Dict) Walk(feedback any, fn WalkFunc) *Node {
	return d.root.Walk(feedback, fn)
}

// WalkKind visits every node of the given kind. Variable nodes are only
// visited when explicitly asked for.
func (d *Dict) WalkKind(kind Kind, fn func(n *Node) bool) *Node {
	return d.root.Walk(nil, func(n *Node, _ any) (any, bool) {
		if n.kind != kind {
			return nil, true
		}
		return nil, fn(n)
	})
}

// WalkPaths visits every node below the root along with its full path,
// building each path incrementally from its parent's.
func (d *Dict) WalkPaths(fn func(path string, n *Node) bool) *Node {
	sep := string(d.pathSep)
	return d.root.Walk("", func(n *Node, feedback any) (any, bool) {
		if n.parent == nil {
			return "", true
		}
		path := feedback.(string)
		if path != "" {
			path += sep
		}
		path += n.name
		return path, fn(path, n)
	})
}
