package dict

// index maps a node hash to its collision chain. Lookups are always
// confirmed against the full path by the caller; the index never assumes a
// hash is unique. The builtin map replaces the ordered tree the design
// allows for because no consumer iterates keys in order.
type index struct {
	m map[uint32][]*Node
}

func newIndex() *index {
	return &index{m: make(map[uint32][]*Node)}
}

// put appends n to the chain for its current hash.
func (ix *index) put(n *Node) {
	ix.m[n.hash] = append(ix.m[n.hash], n)
}

// get returns the collision chain for a hash, nil if empty.
func (ix *index) get(hash uint32) []*Node {
	return ix.m[hash]
}

// delete removes exactly n from its chain. Other nodes sharing the hash
// stay put.
func (ix *index) delete(n *Node) {
	chain := ix.m[n.hash]
	for i, c := range chain {
		if c == n {
			chain = append(chain[:i], chain[i+1:]...)
			break
		}
	}
	if len(chain) == 0 {
		delete(ix.m, n.hash)
		return
	}
	ix.m[n.hash] = chain
}

func (ix *index) len() int {
	total := 0
	for _, chain := range ix.m {
		total += len(chain)
	}
	return total
}
