package gsuffix

import "github.com/pkg/errors"

// NodeHandle is a dense integer reference into the tree store's node array.
// Handles are never reused and the store never deletes a node, so a handle
// stays valid for the lifetime of the tree.
type NodeHandle int

// noLink marks a node with no suffix link.
const noLink NodeHandle = -1

// RootHandle is the handle of the distinguished root node.
const RootHandle NodeHandle = 0

type nodeRecord struct {
	suffixLink NodeHandle

	// depth is the total number of symbols on the path of edges from the
	// root to this node.
	depth int
}

// edge labels the substring S[start..end] (inclusive) connecting source to
// target.
type edge struct {
	start, end int
	source     NodeHandle
	target     NodeHandle
}

func (e *edge) length() int {
	return e.end - e.start + 1
}

// edgeKey identifies an edge by its source node and the first symbol of its
// label; this pair must be unique across the whole tree.
type edgeKey struct {
	source NodeHandle
	first  Symbol
}

// labeledEdge pairs an edge with the first symbol of its label, kept sorted
// per source node so iteration order is deterministic.
type labeledEdge struct {
	first Symbol
	e     *edge
}

// treeStore owns every node and edge created during construction. Nodes are
// addressed by handle; edges are addressed by (source, first symbol) through
// both a hash index (expected O(1) lookup) and a per-node sorted slice
// (deterministic traversal).
type treeStore struct {
	nodes []nodeRecord
	index map[edgeKey]*edge
	out   [][]labeledEdge // out[h] holds node h's outgoing edges, sorted by first.sortKey()
}

func newTreeStore() *treeStore {
	return &treeStore{
		nodes: []nodeRecord{{suffixLink: noLink, depth: 0}},
		index: make(map[edgeKey]*edge),
		out:   [][]labeledEdge{nil},
	}
}

// newNode appends a fresh node with no suffix link at the given depth and
// returns its handle. Depth is supplied by the caller so no node is ever
// briefly inconsistent with invariant 2.
func (t *treeStore) newNode(depth int) NodeHandle {
	t.nodes = append(t.nodes, nodeRecord{suffixLink: noLink, depth: depth})
	t.out = append(t.out, nil)
	return NodeHandle(len(t.nodes) - 1)
}

func (t *treeStore) depth(n NodeHandle) int {
	return t.nodes[n].depth
}

func (t *treeStore) suffixLink(n NodeHandle) (NodeHandle, bool) {
	link := t.nodes[n].suffixLink
	return link, link != noLink
}

func (t *treeStore) setSuffixLink(n, target NodeHandle) {
	t.nodes[n].suffixLink = target
}

// search returns the index in node h's sorted out slice where an edge keyed
// by first sits, or would sit if inserted.
func search(es []labeledEdge, first Symbol) int {
	key := first.sortKey()
	i, j := 0, len(es)
	for i < j {
		h := int(uint(i+j) >> 1) // avoid overflow when computing h.
		if es[h].first.sortKey() < key {
			i = h + 1
		} else {
			j = h
		}
	}
	return i
}

// getEdge performs the (source, first symbol) lookup.
func (t *treeStore) getEdge(source NodeHandle, first Symbol) (*edge, bool) {
	e, ok := t.index[edgeKey{source, first}]
	return e, ok
}

// putEdge inserts a new edge; overwriting an existing (source, first) key
// is a programmer error and is reported, never silently allowed.
func (t *treeStore) putEdge(first Symbol, e *edge) error {
	key := edgeKey{e.source, first}
	if _, exists := t.index[key]; exists {
		return errors.WithStack(&DuplicateEdgeKeyError{Source: e.source, First: first})
	}
	t.index[key] = e

	out := t.out[e.source]
	num := len(out)
	idx := search(out, first)
	out = append(out, labeledEdge{})
	if idx != num {
		copy(out[idx+1:], out[idx:num])
	}
	out[idx] = labeledEdge{first: first, e: e}
	t.out[e.source] = out
	return nil
}

// removeEdge drops the (source, first symbol) entry; used only by split,
// which immediately reinserts a shortened edge under the same key.
func (t *treeStore) removeEdge(source NodeHandle, first Symbol) {
	delete(t.index, edgeKey{source, first})

	out := t.out[source]
	num := len(out)
	idx := search(out, first)
	if idx < num && out[idx].first == first {
		copy(out[idx:], out[idx+1:])
		out[len(out)-1] = labeledEdge{}
		t.out[source] = out[:len(out)-1]
	}
}

// iterEdges yields every edge exactly once, ordered by node handle and then
// by first symbol within each node. The order is deterministic but callers
// should not rely on it beyond that.
func (t *treeStore) iterEdges(fn func(first Symbol, e *edge)) {
	for h := range t.out {
		for _, le := range t.out[h] {
			fn(le.first, le.e)
		}
	}
}
