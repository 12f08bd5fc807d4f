package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEmptyRoot(t *testing.T) {
	tr := New()
	rendered, err := tr.List("/")
	require.NoError(t, err)
	assert.Equal(t, "", rendered)
}

func TestCreateThenList(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/b/"))
	require.NoError(t, tr.Create("/a/c/"))

	rendered, err := tr.List("/")
	require.NoError(t, err)
	assert.Equal(t, "a,b", rendered)

	rendered, err = tr.List("/a/")
	require.NoError(t, err)
	assert.Equal(t, "c", rendered)
}

func TestCreateDuplicateFails(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	err := tr.Create("/a/")
	require.Error(t, err)
	assert.Equal(t, KindExists, KindOf(err))
}

func TestCreateMissingParentFails(t *testing.T) {
	tr := New()
	err := tr.Create("/a/b/")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateRootFails(t *testing.T) {
	tr := New()
	err := tr.Create("/")
	require.Error(t, err)
	assert.Equal(t, KindExists, KindOf(err))
}

func TestCreateInvalidPathFails(t *testing.T) {
	tr := New()
	err := tr.Create("no-slashes")
	require.Error(t, err)
	assert.Equal(t, KindInvalid, KindOf(err))
}

func TestRemoveLeaf(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Remove("/a/"))

	rendered, err := tr.List("/")
	require.NoError(t, err)
	assert.Equal(t, "", rendered)
}

func TestRemoveNonEmptyFails(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))

	err := tr.Remove("/a/")
	require.Error(t, err)
	assert.Equal(t, KindNotEmpty, KindOf(err))
}

func TestRemoveRootFails(t *testing.T) {
	tr := New()
	err := tr.Remove("/")
	require.Error(t, err)
	assert.Equal(t, KindBusy, KindOf(err))
}

func TestRemoveMissingFails(t *testing.T) {
	tr := New()
	err := tr.Remove("/ghost/")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestMoveSiblingRename(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))

	require.NoError(t, tr.Move("/a/b/", "/a/c/"))

	rendered, err := tr.List("/a/")
	require.NoError(t, err)
	assert.Equal(t, "c", rendered)
}

func TestMoveAcrossDistantParents(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/x/"))
	require.NoError(t, tr.Create("/x/c/"))
	require.NoError(t, tr.Create("/x/c/d/"))
	require.NoError(t, tr.Create("/y/"))

	require.NoError(t, tr.Move("/x/c/", "/y/c/"))

	rendered, err := tr.List("/x/")
	require.NoError(t, err)
	assert.Equal(t, "", rendered)

	rendered, err = tr.List("/y/")
	require.NoError(t, err)
	assert.Equal(t, "c", rendered)

	rendered, err = tr.List("/y/c/")
	require.NoError(t, err)
	assert.Equal(t, "d", rendered)
}

func TestMoveIntoOwnSubtreeFails(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))

	err := tr.Move("/a/", "/a/b/c/")
	require.Error(t, err)
	assert.Equal(t, KindIntoOwnSubtree, KindOf(err))
}

func TestMoveOntoSelfIsNoop(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))

	require.NoError(t, tr.Move("/a/b/", "/a/b/"))

	rendered, err := tr.List("/a/")
	require.NoError(t, err)
	assert.Equal(t, "b", rendered)
}

func TestMoveOntoExistingTargetFails(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/x/"))
	require.NoError(t, tr.Create("/a/y/"))

	err := tr.Move("/a/x/", "/a/y/")
	require.Error(t, err)
	assert.Equal(t, KindExists, KindOf(err))
}

func TestMoveMissingSourceFails(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))

	err := tr.Move("/ghost/", "/a/ghost/")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestMoveRootAsSourceFails(t *testing.T) {
	tr := New()
	err := tr.Move("/", "/a/")
	require.Error(t, err)
	assert.Equal(t, KindBusy, KindOf(err))
}

func TestMoveRootAsTargetFails(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	err := tr.Move("/a/", "/")
	require.Error(t, err)
	assert.Equal(t, KindExists, KindOf(err))
}

func TestMovePreservesSubtree(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))
	require.NoError(t, tr.Create("/a/b/c/"))
	require.NoError(t, tr.Create("/a/b/c/d/"))
	require.NoError(t, tr.Create("/z/"))

	require.NoError(t, tr.Move("/a/b/", "/z/b/"))

	rendered, err := tr.List("/z/b/")
	require.NoError(t, err)
	assert.Equal(t, "c", rendered)

	rendered, err = tr.List("/z/b/c/")
	require.NoError(t, err)
	assert.Equal(t, "d", rendered)

	// The moved subtree survived intact: /z/b/c/ still holds d, so it
	// can be removed only after its own child is removed first.
	err = tr.Remove("/z/b/c/")
	require.Error(t, err)
	assert.Equal(t, KindNotEmpty, KindOf(err))
}

func TestStatReportsChildCount(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))
	require.NoError(t, tr.Create("/a/c/"))

	info, err := tr.Stat("/a/")
	require.NoError(t, err)
	assert.Equal(t, "a", info.Name)
	assert.False(t, info.IsRoot)
	assert.Equal(t, 2, info.ChildCount)

	info, err = tr.Stat("/")
	require.NoError(t, err)
	assert.True(t, info.IsRoot)
}

func TestWalkVisitsWholeSubtree(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))
	require.NoError(t, tr.Create("/a/c/"))
	require.NoError(t, tr.Create("/a/b/d/"))

	var visited []string
	err := tr.Walk("/a/", func(path string) error {
		visited = append(visited, path)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/", "/a/b/", "/a/b/d/", "/a/c/"}, visited)
}
