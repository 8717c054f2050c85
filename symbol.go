package gsuffix

import "fmt"

// Symbol is a single element of the concatenated sequence store: either a
// literal input byte or the unique terminator injected after one input.
// Every Terminator(k) compares distinct from every Byte and from every
// other Terminator(k'), which is what lets the builder tell "end of input k"
// apart from ordinary data without scanning back through the alphabet.
type Symbol struct {
	isTerm bool
	b      byte
	term   int
}

// byteSymbol wraps a literal input byte.
func byteSymbol(b byte) Symbol {
	return Symbol{b: b}
}

// terminatorSymbol wraps the terminator that closes input k.
func terminatorSymbol(k int) Symbol {
	return Symbol{isTerm: true, term: k}
}

// IsTerminator reports whether s marks the end of an input.
func (s Symbol) IsTerminator() bool {
	return s.isTerm
}

// TerminatorIndex returns the zero-based input index this terminator closes.
// It panics if s is not a terminator; callers must guard with IsTerminator.
func (s Symbol) TerminatorIndex() int {
	if !s.isTerm {
		panic("gsuffix: TerminatorIndex called on a non-terminator symbol")
	}
	return s.term
}

// sortKey gives Symbol a total order so edges out of a node can be kept in
// a sorted slice. Terminators sort after all byte values and are ordered by
// input index, so the order is total and stable across builds of the same
// inputs.
func (s Symbol) sortKey() int {
	if s.isTerm {
		return 256 + s.term
	}
	return int(s.b)
}

func (s Symbol) String() string {
	if s.isTerm {
		return fmt.Sprintf("#%d", s.term)
	}
	return fmt.Sprintf("%02x", s.b)
}

// SequenceStore holds the immutable concatenation S of every input's bytes
// followed by that input's terminator. Positions are zero-based into S.
type SequenceStore struct {
	symbols     []Symbol
	inputLen    []int // |input_i| + 1 (bytes plus terminator), indexed by input
	termPos     []int // position of Terminator(i) in S, indexed by input
}

// NewSequenceStore concatenates inputs, appending a fresh terminator after
// each one, in order.
func NewSequenceStore(inputs [][]byte) *SequenceStore {
	st := &SequenceStore{
		inputLen: make([]int, len(inputs)),
		termPos:  make([]int, len(inputs)),
	}
	total := 0
	for _, in := range inputs {
		total += len(in) + 1
	}
	st.symbols = make([]Symbol, 0, total)
	for i, in := range inputs {
		for _, b := range in {
			st.symbols = append(st.symbols, byteSymbol(b))
		}
		st.symbols = append(st.symbols, terminatorSymbol(i))
		st.inputLen[i] = len(in) + 1
		st.termPos[i] = len(st.symbols) - 1
	}
	return st
}

// Len returns |S|.
func (st *SequenceStore) Len() int {
	return len(st.symbols)
}

// At returns the symbol at position i.
func (st *SequenceStore) At(i int) Symbol {
	return st.symbols[i]
}

// IsTerminator reports whether position i holds a terminator.
func (st *SequenceStore) IsTerminator(i int) bool {
	return st.symbols[i].IsTerminator()
}

// TerminatorIndex returns the input index terminated at position i.
// Callers must first confirm IsTerminator(i).
func (st *SequenceStore) TerminatorIndex(i int) int {
	return st.symbols[i].TerminatorIndex()
}

// InputLen returns |input_k| + 1 (bytes plus terminator), the length
// recorded per input so query-time offset arithmetic is possible.
func (st *SequenceStore) InputLen(k int) int {
	return st.inputLen[k]
}

// RawLen returns |input_k|, the number of bytes in input k before its
// terminator. This is the length an Occurrence's signed offset is added to
// in order to recover a byte position within the original input.
func (st *SequenceStore) RawLen(k int) int {
	return st.inputLen[k] - 1
}

// TerminatorPos returns the position of Terminator(k) in S.
func (st *SequenceStore) TerminatorPos(k int) int {
	return st.termPos[k]
}

// NumInputs returns the number of concatenated inputs.
func (st *SequenceStore) NumInputs() int {
	return len(st.inputLen)
}
