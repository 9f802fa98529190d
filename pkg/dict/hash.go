package dict

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// rootHashVal seeds every hash chain: a large 32-bit prime with a healthy
// bit mix. All non-root hashes are derived from it through mixHash, so a
// node's hash is a function of its whole path.
const rootHashVal = 0xace6cabd

// nameHash hashes a node name. xxhash is 64-bit; the tree only needs 32
// bits of it, which keeps the mix function cheap and the index keys small.
func nameHash(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

// mixHash folds a name hash into the parent's rolling hash.
func mixHash(name, parent uint32) uint32 {
	return name ^ bits.RotateLeft32(parent, 31)
}
