// Package tree implements an in-memory, concurrently accessible tree of
// named folders addressed by absolute paths.
//
// Every Node carries its own rwlock.RWLock (see internal/rwlock);
// operations descend hand-over-hand, taking a reader protection on each
// ancestor node before consulting its children and only releasing the
// whole chain once the operation's actual write (or read) target has been
// located. Create and Remove take their single writer on the target's
// parent; Move takes a single writer on the lowest common ancestor of its
// source and target paths (on that folder's parent when one path is a
// prefix of the other) and reaches both from there without any further
// per-node locking, since that one writer already excludes every
// operation that could reach into the frozen subtree.
package tree

import (
	"github.com/foldertree/foldertree/internal/namemap"
	"github.com/foldertree/foldertree/internal/pathutil"
	"github.com/foldertree/foldertree/internal/rwlock"
	flog "github.com/foldertree/foldertree/log"
)

// Node is one folder in the tree. Its children map and parent pointer are
// only safe to read while holding at least a reader protection on sync,
// except during the brief unprotected walk beneath an already-held
// writer that Move performs.
type Node struct {
	parent   *Node
	children *namemap.Map
	sync     *rwlock.RWLock
}

func newNode(parent *Node) *Node {
	return &Node{
		parent:   parent,
		children: namemap.New(),
		sync:     rwlock.New(),
	}
}

// Tree is the root of a folder hierarchy.
type Tree struct {
	root *Node
	log  flog.Log
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithLogger attaches l as the Tree's logger. The zero value leaves the
// default flog.NoLog in place.
func WithLogger(l flog.Log) Option {
	return func(t *Tree) {
		if l != nil {
			t.log = l
		}
	}
}

// New returns an empty Tree containing only the root folder "/".
func New(opts ...Option) *Tree {
	t := &Tree{root: newNode(nil), log: flog.NoLog{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// readerDescend walks from the root along relPath, taking a reader
// protection on every node it passes through, including the root but
// excluding the final landed node. It reports ok=false, with every
// reader it had taken released, if some component along the way does not
// exist.
func (t *Tree) readerDescend(relPath string) (cur *Node, ok bool) {
	cur = t.root
	subpath := relPath
	for subpath != "/" {
		component, rest := pathutil.SplitFirst(subpath)
		cur.sync.ReaderEnter()
		t.trace("reader_enter", component)
		childAny, found := cur.children.Get(component)
		if !found {
			cur.sync.ReaderLeave()
			t.trace("reader_leave", component)
			t.releaseReaderChain(cur)
			return nil, false
		}
		cur = childAny.(*Node)
		subpath = rest
	}
	return cur, true
}

// releaseReaderChain releases the reader protection held on every strict
// ancestor of n, from n's parent up to the root.
func (t *Tree) releaseReaderChain(n *Node) {
	for p := n.parent; p != nil; p = p.parent {
		p.sync.ReaderLeave()
		t.trace("reader_leave", "")
	}
}

// walkUnlocked follows relPath from start using plain map lookups, with
// no locking of its own. Callers use it only beneath a writer protection
// they already hold on an ancestor of start, which makes every node on
// the path safe to read without separately entering it.
func walkUnlocked(start *Node, relPath string) (*Node, bool) {
	cur := start
	subpath := relPath
	for subpath != "/" {
		component, rest := pathutil.SplitFirst(subpath)
		childAny, ok := cur.children.Get(component)
		if !ok {
			return nil, false
		}
		cur = childAny.(*Node)
		subpath = rest
	}
	return cur, true
}

func (t *Tree) trace(event, component string) {
	if !t.log.Enabled(flog.TopicTrace) {
		return
	}
	t.log.Log(flog.TopicTrace, event, flog.M{"component": component})
}

func (t *Tree) verdict(op, path string, kind Kind) {
	if !t.log.Enabled(flog.TopicVerdict) {
		return
	}
	t.log.Log(flog.TopicVerdict, "op complete", flog.M{"op": op, "path": path, "kind": kind.String()})
}

// List returns a comma-separated, lexicographically sorted rendering of
// the names directly beneath path. Listing the root uses a zero-length
// descent and a single reader taken directly on the root.
func (t *Tree) List(path string) (string, error) {
	if !pathutil.IsValid(path) {
		t.verdict("list", path, KindInvalid)
		return "", &Error{Op: "list", Path: path, Kind: KindInvalid}
	}
	target, ok := t.readerDescend(path)
	if !ok {
		t.verdict("list", path, KindNotFound)
		return "", &Error{Op: "list", Path: path, Kind: KindNotFound}
	}

	target.sync.ReaderEnter()
	rendered := target.children.Render()
	target.sync.ReaderLeave()
	t.releaseReaderChain(target)

	t.verdict("list", path, KindNone)
	return rendered, nil
}

// Create adds an empty folder at path. Its parent must already exist and
// must not already contain an entry of that name.
func (t *Tree) Create(path string) error {
	if !pathutil.IsValid(path) {
		t.verdict("create", path, KindInvalid)
		return &Error{Op: "create", Path: path, Kind: KindInvalid}
	}
	if pathutil.IsRoot(path) {
		t.verdict("create", path, KindExists)
		return &Error{Op: "create", Path: path, Kind: KindExists}
	}

	parentPath, leaf := pathutil.ParentOf(path)
	parent, ok := t.readerDescend(parentPath)
	if !ok {
		t.verdict("create", path, KindNotFound)
		return &Error{Op: "create", Path: path, Kind: KindNotFound}
	}

	parent.sync.WriterEnter()
	inserted := parent.children.Insert(leaf, newNode(parent))
	parent.sync.WriterLeave()
	t.releaseReaderChain(parent)

	if !inserted {
		t.verdict("create", path, KindExists)
		return &Error{Op: "create", Path: path, Kind: KindExists}
	}
	t.verdict("create", path, KindNone)
	return nil
}

// Remove deletes the (necessarily empty) folder at path.
func (t *Tree) Remove(path string) error {
	if !pathutil.IsValid(path) {
		t.verdict("remove", path, KindInvalid)
		return &Error{Op: "remove", Path: path, Kind: KindInvalid}
	}
	if pathutil.IsRoot(path) {
		t.verdict("remove", path, KindBusy)
		return &Error{Op: "remove", Path: path, Kind: KindBusy}
	}

	parentPath, leaf := pathutil.ParentOf(path)
	parent, ok := t.readerDescend(parentPath)
	if !ok {
		t.verdict("remove", path, KindNotFound)
		return &Error{Op: "remove", Path: path, Kind: KindNotFound}
	}

	parent.sync.WriterEnter()
	defer func() {
		parent.sync.WriterLeave()
		t.releaseReaderChain(parent)
	}()

	childAny, found := parent.children.Get(leaf)
	if !found {
		t.verdict("remove", path, KindNotFound)
		return &Error{Op: "remove", Path: path, Kind: KindNotFound}
	}
	child := childAny.(*Node)
	if child.children.Size() > 0 {
		t.verdict("remove", path, KindNotEmpty)
		return &Error{Op: "remove", Path: path, Kind: KindNotEmpty}
	}

	parent.children.Remove(leaf)
	child.children.Release()

	t.verdict("remove", path, KindNone)
	return nil
}

// Move relocates the folder at source, together with its whole subtree,
// to target. target must not already exist, and must not lie inside
// source's own subtree. Moving a folder onto its own path is a successful
// no-op once source is found to exist.
//
// The two paths may share an arbitrarily deep common ancestor. Move
// locates it, takes a single writer there (freezing the entire
// subtree it roots), and reaches both source and target beneath that one
// protection without descending hand-over-hand a second or third time.
// When one path is a prefix of the other, the common folder is itself one
// of the entries being looked up, so the writer goes on its parent.
func (t *Tree) Move(source, target string) error {
	if !pathutil.IsValid(source) || !pathutil.IsValid(target) {
		t.verdict("move", source, KindInvalid)
		return &Error{Op: "move", Path: source, Path2: target, Kind: KindInvalid}
	}
	if pathutil.IsRoot(source) {
		t.verdict("move", source, KindBusy)
		return &Error{Op: "move", Path: source, Path2: target, Kind: KindBusy}
	}
	if pathutil.IsRoot(target) {
		t.verdict("move", source, KindExists)
		return &Error{Op: "move", Path: source, Path2: target, Kind: KindExists}
	}
	if !pathutil.Equal(source, target) && pathutil.HasPrefix(target, source) {
		t.verdict("move", source, KindIntoOwnSubtree)
		return &Error{Op: "move", Path: source, Path2: target, Kind: KindIntoOwnSubtree}
	}

	lcaPath := pathutil.CommonPrefix(source, target)
	if pathutil.Equal(lcaPath, source) || pathutil.Equal(lcaPath, target) {
		lcaPath, _ = pathutil.ParentOf(lcaPath)
	}

	var lcaBase string
	var lcaNode *Node
	if pathutil.IsRoot(lcaPath) {
		lcaBase = "/"
		lcaNode = t.root
	} else {
		node, ok := t.readerDescend(lcaPath)
		if !ok {
			t.verdict("move", source, KindNotFound)
			return &Error{Op: "move", Path: source, Path2: target, Kind: KindNotFound}
		}
		lcaBase = lcaPath
		lcaNode = node
	}

	lcaNode.sync.WriterEnter()
	defer func() {
		lcaNode.sync.WriterLeave()
		t.releaseReaderChain(lcaNode)
	}()

	sourceRel := relativeTo(source, lcaBase)
	sourceParentRel, sourceLeaf := pathutil.ParentOf(sourceRel)
	sourceParent, ok := walkUnlocked(lcaNode, sourceParentRel)
	if !ok {
		t.verdict("move", source, KindNotFound)
		return &Error{Op: "move", Path: source, Path2: target, Kind: KindNotFound}
	}
	sourceChildAny, ok := sourceParent.children.Get(sourceLeaf)
	if !ok {
		t.verdict("move", source, KindNotFound)
		return &Error{Op: "move", Path: source, Path2: target, Kind: KindNotFound}
	}
	sourceNode := sourceChildAny.(*Node)

	if pathutil.Equal(source, target) {
		t.verdict("move", source, KindNone)
		return nil
	}

	targetRel := relativeTo(target, lcaBase)
	targetParentRel, targetLeaf := pathutil.ParentOf(targetRel)
	targetParent, ok := walkUnlocked(lcaNode, targetParentRel)
	if !ok {
		t.verdict("move", source, KindNotFound)
		return &Error{Op: "move", Path: source, Path2: target, Kind: KindNotFound}
	}
	if _, exists := targetParent.children.Get(targetLeaf); exists {
		t.verdict("move", source, KindExists)
		return &Error{Op: "move", Path: source, Path2: target, Kind: KindExists}
	}

	sourceParent.children.Remove(sourceLeaf)
	sourceNode.parent = targetParent
	targetParent.children.Insert(targetLeaf, sourceNode)

	t.verdict("move", source, KindNone)
	return nil
}

// relativeTo rewrites path, known to lie under base, as a path rooted at
// base instead of at "/".
func relativeTo(path, base string) string {
	if base == "/" {
		return path
	}
	return "/" + path[len(base):]
}

// Info is a snapshot of a single folder's metadata, returned by Stat.
type Info struct {
	Path       string
	Name       string
	IsRoot     bool
	ChildCount int
}

// Stat reports the number of direct children path has, without listing
// their names.
func (t *Tree) Stat(path string) (Info, error) {
	if !pathutil.IsValid(path) {
		return Info{}, &Error{Op: "stat", Path: path, Kind: KindInvalid}
	}
	target, ok := t.readerDescend(path)
	if !ok {
		return Info{}, &Error{Op: "stat", Path: path, Kind: KindNotFound}
	}

	target.sync.ReaderEnter()
	count := target.children.Size()
	target.sync.ReaderLeave()
	t.releaseReaderChain(target)

	info := Info{Path: path, IsRoot: pathutil.IsRoot(path), ChildCount: count}
	if !info.IsRoot {
		_, info.Name = pathutil.ParentOf(path)
	}
	return info, nil
}

// Walk calls fn once for path and once for every folder in its subtree,
// in pre-order: a folder first, then each child's subtree in sorted name
// order. Throughout the walk it holds reader protection on every strict
// ancestor of path; beneath that, it holds a visited node's reader only
// while copying out its children, so fn runs with no protection on the
// visited node and a concurrent writer inside the subtree may interleave
// with it. fn returning an error aborts the walk and Walk returns that
// error.
func (t *Tree) Walk(path string, fn func(path string) error) error {
	if !pathutil.IsValid(path) {
		return &Error{Op: "walk", Path: path, Kind: KindInvalid}
	}
	target, ok := t.readerDescend(path)
	if !ok {
		return &Error{Op: "walk", Path: path, Kind: KindNotFound}
	}
	err := t.walkNode(target, path, fn)
	t.releaseReaderChain(target)
	return err
}

type namedChild struct {
	name string
	node *Node
}

func (t *Tree) walkNode(n *Node, path string, fn func(string) error) error {
	n.sync.ReaderEnter()
	names := n.children.SortedNames()
	children := make([]namedChild, 0, len(names))
	for _, name := range names {
		childAny, _ := n.children.Get(name)
		children = append(children, namedChild{name: name, node: childAny.(*Node)})
	}
	n.sync.ReaderLeave()

	if err := fn(path); err != nil {
		return err
	}

	for _, c := range children {
		childPath := path + c.name + "/"
		if err := t.walkNode(c.node, childPath, fn); err != nil {
			return err
		}
	}
	return nil
}
