package gsuffix

import "github.com/samber/lo"

// Occurrence is one witness of the longest 2-common sublist inside a single
// input. Offset is signed and negative (the match starts -Offset bytes
// before the end of the input): the occurrence's start position within
// input Index is RawLen(Index) + Offset.
type Occurrence struct {
	Index  int
	Offset int
}

// Result is the outcome of LongestCommon: the shared length and one
// occurrence per input that has a terminal edge leaving the winning node.
type Result struct {
	Length      int
	Occurrences []Occurrence
}

type terminalEdge struct {
	source NodeHandle
	input  int
	length int
}

// LongestCommon scans every edge of t once and returns the longest sublist
// shared by at least two inputs, along with its location inside each. It
// returns false when no such sublist exists.
//
// This implementation always collects every terminal edge at the winning
// node, so the result lists one occurrence per input that has a terminal
// edge leaving that node directly, regardless of the order edges are
// visited in. An input whose occurrences of the match all continue into a
// deeper internal node has no such edge and is not listed.
func LongestCommon(t *Tree) (Result, bool) {
	var terminals []terminalEdge
	t.Walk(func(first Symbol, e Edge) {
		end := t.Sequence().At(e.End)
		if !end.IsTerminator() {
			return
		}
		terminals = append(terminals, terminalEdge{
			source: e.Source,
			input:  end.TerminatorIndex(),
			length: e.Length(),
		})
	})

	bySource := lo.GroupBy(terminals, func(te terminalEdge) NodeHandle {
		return te.source
	})

	bestDepth := 0
	var bestSource NodeHandle
	found := false
	for source, group := range bySource {
		inputs := lo.Uniq(lo.Map(group, func(te terminalEdge, _ int) int {
			return te.input
		}))
		if len(inputs) < 2 {
			continue
		}
		depth := t.Depth(source)
		if depth > bestDepth {
			bestDepth = depth
			bestSource = source
			found = true
		}
	}
	if !found {
		return Result{}, false
	}

	seen := make(map[int]bool)
	var occurrences []Occurrence
	for _, te := range bySource[bestSource] {
		if seen[te.input] {
			continue
		}
		seen[te.input] = true
		occurrences = append(occurrences, Occurrence{
			Index:  te.input,
			Offset: -(te.length + bestDepth - 1),
		})
	}

	return Result{Length: bestDepth, Occurrences: occurrences}, true
}

// Start returns the occurrence's start position within its own input,
// given that input's raw length (bytes only, excluding the terminator, as
// reported by SequenceStore.RawLen).
func (o Occurrence) Start(rawLen int) int {
	return rawLen + o.Offset
}
