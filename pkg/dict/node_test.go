package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashChain(t *testing.T) {
	d := mustParse(t, "a { b { c 1; } }")

	root := d.Root()
	assert.Equal(t, uint32(rootHashVal), root.Hash())

	// every hash is the name hash folded into the parent's
	stopped := d.Walk(nil, func(n *Node, _ any) (any, bool) {
		if n.Parent() != nil {
			assert.Equal(t, mixHash(nameHash(n.Name()), n.Parent().Hash()), n.Hash(), n.Name())
		}
		return nil, true
	})
	assert.Nil(t, stopped)
}

func TestCreateNode(t *testing.T) {
	d := New("test", 0)

	br, err := d.CreateNode(d.Root(), KindBranch, "system")
	require.NoError(t, err)
	leaf, err := d.CreateNode(br, KindLeaf, "hostname")
	require.NoError(t, err)
	require.NoError(t, d.SetValue(leaf, "router1"))

	assert.Equal(t, "router1", d.Get("system/hostname").Value())
	assert.Equal(t, 3, d.NodeCount())

	_, err = d.CreateNode(br, KindLeaf, "hostname")
	assert.ErrorIs(t, err, ErrExists)

	_, err = d.CreateNode(nil, KindLeaf, "x")
	assert.ErrorIs(t, err, ErrFailed)

	_, err = d.CreateNode(d.Root(), KindRoot, "x")
	assert.ErrorIs(t, err, ErrFailed)

	other := New("other", 0)
	_, err = other.CreateNode(br, KindLeaf, "x")
	assert.ErrorIs(t, err, ErrWrongDict)
}

func TestArrayOrdinals(t *testing.T) {
	d := New("test", 0)
	arr, err := d.CreateNode(d.Root(), KindArray, "list")
	require.NoError(t, err)

	// the supplied name is ignored, members are numbered at creation
	for _, name := range []string{"x", "y", "z"} {
		n, err := d.CreateNode(arr, KindLeaf, name)
		require.NoError(t, err)
		require.NoError(t, d.SetValue(n, name))
	}
	assert.Equal(t, "0", arr.FirstChild().Name())
	assert.Equal(t, "2", arr.LastChild().Name())

	// deleting a member never renumbers the survivors
	require.NoError(t, d.DeleteNode(d.Get("list/1")))
	assert.Equal(t, "0", arr.FirstChild().Name())
	assert.Equal(t, "2", arr.LastChild().Name())
	assert.Equal(t, "z", d.Get("list/2").Value())
	assert.Nil(t, d.Get("list/1"))
}

func TestDeleteNode(t *testing.T) {
	d := mustParse(t, "a { b 1; c { d 2; } } e 3;")
	total := d.NodeCount()

	require.NoError(t, d.DeleteNode(d.Get("a/c")))
	assert.Nil(t, d.Get("a/c"))
	assert.Nil(t, d.Get("a/c/d"))
	assert.NotNil(t, d.Get("a/b"))
	assert.Equal(t, total-2, d.NodeCount())
	// the index forgets the subtree too
	assert.Equal(t, d.NodeCount()-1, d.index.len())

	// the root is permanent: deleting it just clears the tree
	require.NoError(t, d.DeleteNode(d.Root()))
	assert.NotNil(t, d.Root())
	assert.Equal(t, 1, d.NodeCount())
	assert.Equal(t, 0, d.index.len())
}

func TestClear(t *testing.T) {
	d := mustParse(t, "a 1; b { c 2; }")
	d.Clear()
	assert.Equal(t, 1, d.NodeCount())
	assert.Nil(t, d.Get("a"))
	require.NoError(t, d.Parse([]byte("fresh 1;")))
	assert.Equal(t, "1", d.Get("fresh").Value())
}

func TestReadOnly(t *testing.T) {
	d := New("frozen", ReadOnly)
	// parsing into a read-only dictionary is allowed, mutation is not
	require.NoError(t, d.Parse([]byte("a { b 1; }")))

	_, err := d.CreateNode(d.Root(), KindLeaf, "x")
	assert.ErrorIs(t, err, ErrFailed)
	assert.ErrorIs(t, d.DeleteNode(d.Get("a")), ErrFailed)
	assert.ErrorIs(t, d.SetValue(d.Get("a/b"), "2"), ErrFailed)
	assert.ErrorIs(t, d.Rename(d.Get("a"), "z"), ErrFailed)
	assert.Equal(t, "1", d.Get("a/b").Value())
}

func TestStateInheritance(t *testing.T) {
	d := New("test", 0)
	parent, err := d.CreateNode(d.Root(), KindBranch, "p")
	require.NoError(t, err)
	parent.SetState(FlagRemoved)

	child, err := d.CreateNode(parent, KindLeaf, "c")
	require.NoError(t, err)
	grand, err := d.CreateNode(child, KindLeaf, "g")
	require.NoError(t, err)

	assert.True(t, child.HasFlag(FlagIRemoved))
	assert.False(t, child.HasFlag(FlagRemoved))
	// inherited bits propagate whether the ancestor owns or inherits
	assert.True(t, grand.HasFlag(FlagIRemoved))

	// own-state setters never touch inherited bits
	child.ClearState(FlagIRemoved)
	assert.True(t, child.HasFlag(FlagIRemoved))
}
