package gsuffix

import "fmt"

// DuplicateEdgeKeyError indicates putEdge was called with a
// (source, first symbol) pair that is already present in the tree store.
// It always signals a builder bug; there is no recovery.
type DuplicateEdgeKeyError struct {
	Source NodeHandle
	First  Symbol
}

func (err *DuplicateEdgeKeyError) Error() string {
	return fmt.Sprintf("gsuffix: duplicate edge key (node %d, symbol %s)", err.Source, err.First)
}

// MissingEdgeError indicates a lookup on (source, first symbol) returned
// nothing where the active-point invariant says an edge must exist.
type MissingEdgeError struct {
	Source NodeHandle
	First  Symbol
}

func (err *MissingEdgeError) Error() string {
	return fmt.Sprintf("gsuffix: missing edge (node %d, symbol %s)", err.Source, err.First)
}

// OutOfRangeError indicates a position derived from the active point fell
// outside the sequence store.
type OutOfRangeError struct {
	Pos int
	Len int
}

func (err *OutOfRangeError) Error() string {
	return fmt.Sprintf("gsuffix: position %d out of range [0, %d)", err.Pos, err.Len)
}
