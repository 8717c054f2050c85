package gsuffix

import "github.com/pkg/errors"

// activePoint is the triple (base, head, tail): starting at base and
// walking tail-head+1 symbols down the edge beginning with S[head]. It is
// explicit (at a node) when tail < head.
type activePoint struct {
	base NodeHandle
	head int
	tail int
}

func (a activePoint) length() int {
	return a.tail - a.head + 1
}

func (a activePoint) explicit() bool {
	return a.tail < a.head
}

// Tree is the finished, read-only generalized suffix tree produced by
// Build. The sole mutation primitive, edge-split, only ever runs during
// construction; once Build returns, every method on Tree is read-only and
// safe to call concurrently with other Tree methods.
type Tree struct {
	seq   *SequenceStore
	store *treeStore
}

// Sequence returns the concatenated symbol store the tree was built over.
func (t *Tree) Sequence() *SequenceStore {
	return t.seq
}

// Depth returns a node's distance, in symbols, from the root.
func (t *Tree) Depth(n NodeHandle) int {
	return t.store.depth(n)
}

// SuffixLink returns the node n's suffix link target, if any.
func (t *Tree) SuffixLink(n NodeHandle) (NodeHandle, bool) {
	return t.store.suffixLink(n)
}

// NumNodes returns the number of nodes in the tree, including the root.
func (t *Tree) NumNodes() int {
	return len(t.store.nodes)
}

// Edge is the read-only view of a tree edge that Walk hands to its callers
// (the query, the tests and code outside this package); it mirrors the
// internal edge without leaking the builder's pointer representation.
type Edge struct {
	Start, End     int
	Source, Target NodeHandle
}

// Length returns end-start+1, the number of symbols the edge's label spans.
func (e Edge) Length() int {
	return e.End - e.Start + 1
}

// Walk visits every edge in the tree exactly once, in an unspecified but
// deterministic order.
func (t *Tree) Walk(fn func(first Symbol, e Edge)) {
	t.store.iterEdges(func(first Symbol, e *edge) {
		fn(first, Edge{Start: e.start, End: e.end, Source: e.source, Target: e.target})
	})
}

// Leaves returns every leaf node (a node that is never the source of an
// edge, excluding the root itself). For any built tree this count equals
// the length of the sequence store: every position starts exactly one
// suffix, and every suffix ends at exactly one leaf.
func (t *Tree) Leaves() []NodeHandle {
	outDegree := make(map[NodeHandle]int)
	t.Walk(func(_ Symbol, e Edge) {
		outDegree[e.Source]++
	})
	var leaves []NodeHandle
	for h := 1; h < t.NumNodes(); h++ {
		n := NodeHandle(h)
		if outDegree[n] == 0 {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// builder runs Ukkonen's online construction over a SequenceStore, mutating
// a treeStore, advancing the active point, and maintaining suffix links.
// It is discarded once Build returns the finished Tree.
type builder struct {
	seq      *SequenceStore
	tree     *treeStore
	active   activePoint
	phaseEnd int
}

// Build runs the online construction over inputs and returns the finished
// tree. It is deterministic: the same inputs yield a tree identical up to
// node-handle renumbering.
func Build(inputs [][]byte) (*Tree, error) {
	seq := NewSequenceStore(inputs)
	b := &builder{
		seq:    seq,
		tree:   newTreeStore(),
		active: activePoint{base: RootHandle, head: 0, tail: -1},
	}

	inputIdx := 0
	for i := 0; i < seq.Len(); i++ {
		for inputIdx < seq.NumInputs() && i > seq.TerminatorPos(inputIdx) {
			inputIdx++
		}
		b.phaseEnd = seq.TerminatorPos(inputIdx)
		if err := b.extend(i); err != nil {
			return nil, err
		}
	}

	return &Tree{seq: seq, store: b.tree}, nil
}

// symbolAt bounds-checks a position derived from active-point arithmetic
// before reading it, turning an invariant violation into an OutOfRangeError
// instead of a slice panic.
func (b *builder) symbolAt(pos int) (Symbol, error) {
	if pos < 0 || pos >= b.seq.Len() {
		return Symbol{}, errors.WithStack(&OutOfRangeError{Pos: pos, Len: b.seq.Len()})
	}
	return b.seq.At(pos), nil
}

// extend inserts the symbol at position i into the tree (Ukkonen's
// Extend(i) step): it walks the active point forward, splitting an edge or
// appending a leaf as needed, and wires suffix links behind it.
func (b *builder) extend(i int) error {
	lastSplitParent := noLink

	for {
		parent := b.active.base
		matched := false

		if b.active.explicit() {
			sym, err := b.symbolAt(i)
			if err != nil {
				return err
			}
			if _, ok := b.tree.getEdge(b.active.base, sym); ok {
				matched = true
			}
		} else {
			headSym, err := b.symbolAt(b.active.head)
			if err != nil {
				return err
			}
			e, ok := b.tree.getEdge(b.active.base, headSym)
			if !ok {
				return errors.WithStack(&MissingEdgeError{Source: b.active.base, First: headSym})
			}
			nextSym, err := b.symbolAt(e.start + b.active.length())
			if err != nil {
				return err
			}
			iSym, err := b.symbolAt(i)
			if err != nil {
				return err
			}
			if nextSym == iSym {
				matched = true
			} else {
				parent, err = b.splitEdge(e, b.active)
				if err != nil {
					return err
				}
			}
		}

		if matched {
			if lastSplitParent != noLink && lastSplitParent != RootHandle {
				b.tree.setSuffixLink(lastSplitParent, parent)
			}
			b.active.tail++
			return b.canonicalize()
		}

		iSym, err := b.symbolAt(i)
		if err != nil {
			return err
		}
		leafLen := b.phaseEnd - i + 1
		leaf := b.tree.newNode(b.tree.depth(parent) + leafLen)
		if err := b.tree.putEdge(iSym, &edge{start: i, end: b.phaseEnd, source: parent, target: leaf}); err != nil {
			return err
		}

		if lastSplitParent != noLink && lastSplitParent != RootHandle {
			b.tree.setSuffixLink(lastSplitParent, parent)
		}
		lastSplitParent = parent

		if b.active.base == RootHandle {
			b.active.head++
		} else if link, ok := b.tree.suffixLink(b.active.base); ok {
			b.active.base = link
		} else {
			b.active.base = RootHandle
		}

		if err := b.canonicalize(); err != nil {
			return err
		}
	}
}

// splitEdge splits e at the active point, allocating a new internal node m
// and replacing e with (active.base -> m) and (m -> e.target). It returns m.
func (b *builder) splitEdge(e *edge, active activePoint) (NodeHandle, error) {
	firstSym, err := b.symbolAt(e.start)
	if err != nil {
		return 0, err
	}
	midSym, err := b.symbolAt(e.start + active.length())
	if err != nil {
		return 0, err
	}

	m := b.tree.newNode(b.tree.depth(active.base) + active.length())

	b.tree.removeEdge(active.base, firstSym)

	upper := &edge{start: e.start, end: e.start + active.length() - 1, source: active.base, target: m}
	if err := b.tree.putEdge(firstSym, upper); err != nil {
		return 0, err
	}

	lower := &edge{start: e.start + active.length(), end: e.end, source: m, target: e.target}
	if err := b.tree.putEdge(midSym, lower); err != nil {
		return 0, err
	}

	return m, nil
}

// canonicalize walks the active point down whole edges until it lies
// within a single edge or at a node.
func (b *builder) canonicalize() error {
	for !b.active.explicit() {
		headSym, err := b.symbolAt(b.active.head)
		if err != nil {
			return err
		}
		e, ok := b.tree.getEdge(b.active.base, headSym)
		if !ok {
			return errors.WithStack(&MissingEdgeError{Source: b.active.base, First: headSym})
		}
		elen := e.length()
		if elen > b.active.length() {
			break
		}
		b.active.head += elen
		b.active.base = e.target
	}
	return nil
}
