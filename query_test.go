package gsuffix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func occurrenceFor(t *testing.T, result Result, index int) Occurrence {
	t.Helper()
	for _, o := range result.Occurrences {
		if o.Index == index {
			return o
		}
	}
	t.Fatalf("no occurrence for input %d in %+v", index, result)
	return Occurrence{}
}

func TestLongestCommon_TwoInputsSharingASublist(t *testing.T) {
	inputs := [][]byte{{1, 2, 3}, {2, 3, 4}}
	tree, err := Build(inputs)
	require.NoError(t, err)

	result, ok := LongestCommon(tree)
	require.True(t, ok)
	require.Equal(t, 2, result.Length)
	require.Len(t, result.Occurrences, 2)

	o0 := occurrenceFor(t, result, 0)
	o1 := occurrenceFor(t, result, 1)
	require.Equal(t, 1, o0.Start(tree.Sequence().RawLen(0)))
	require.Equal(t, 0, o1.Start(tree.Sequence().RawLen(1)))
	require.Equal(t, []byte{2, 3}, inputs[0][o0.Start(tree.Sequence().RawLen(0)):o0.Start(tree.Sequence().RawLen(0))+result.Length])
	require.Equal(t, []byte{2, 3}, inputs[1][o1.Start(tree.Sequence().RawLen(1)):o1.Start(tree.Sequence().RawLen(1))+result.Length])
}

func TestLongestCommon_IdenticalInputs(t *testing.T) {
	inputs := [][]byte{{0, 0, 0, 0}, {0, 0, 0, 0}}
	tree, err := Build(inputs)
	require.NoError(t, err)

	result, ok := LongestCommon(tree)
	require.True(t, ok)
	require.Equal(t, 4, result.Length)
}

func TestLongestCommon_NoSharedBytes(t *testing.T) {
	inputs := [][]byte{{5, 6, 7}, {8, 9}}
	tree, err := Build(inputs)
	require.NoError(t, err)

	_, ok := LongestCommon(tree)
	require.False(t, ok)
}

func TestLongestCommon_ThreeWayShare(t *testing.T) {
	inputs := [][]byte{{1, 2, 3, 4, 5}, {3, 4, 5, 6, 7}, {9, 3, 4, 5, 0}}
	tree, err := Build(inputs)
	require.NoError(t, err)

	result, ok := LongestCommon(tree)
	require.True(t, ok)
	require.Equal(t, 3, result.Length)
	require.Len(t, result.Occurrences, 3)

	for _, o := range result.Occurrences {
		start := o.Start(tree.Sequence().RawLen(o.Index))
		require.Equal(t, []byte{3, 4, 5}, inputs[o.Index][start:start+result.Length])
	}
}

func TestLongestCommon_EmptyInputAmongOthers(t *testing.T) {
	inputs := [][]byte{{}, {1, 2}}
	tree, err := Build(inputs)
	require.NoError(t, err)

	_, ok := LongestCommon(tree)
	require.False(t, ok)
}

func TestLongestCommon_SingleInput(t *testing.T) {
	tree, err := Build([][]byte{{1, 2, 3}})
	require.NoError(t, err)

	_, ok := LongestCommon(tree)
	require.False(t, ok)
}

func TestLongestCommon_PermutingInputsPermutesIndices(t *testing.T) {
	a := [][]byte{{1, 2, 3}, {2, 3, 4}}
	b := [][]byte{{2, 3, 4}, {1, 2, 3}}

	treeA, err := Build(a)
	require.NoError(t, err)
	treeB, err := Build(b)
	require.NoError(t, err)

	resultA, ok := LongestCommon(treeA)
	require.True(t, ok)
	resultB, ok := LongestCommon(treeB)
	require.True(t, ok)

	require.Equal(t, resultA.Length, resultB.Length)

	oA0 := occurrenceFor(t, resultA, 0)
	oB1 := occurrenceFor(t, resultB, 1)
	require.Equal(t, oA0.Offset, oB1.Offset)

	oA1 := occurrenceFor(t, resultA, 1)
	oB0 := occurrenceFor(t, resultB, 0)
	require.Equal(t, oA1.Offset, oB0.Offset)
}

func TestLongestCommon_ReferenceScenario(t *testing.T) {
	lengths := []int{17408, 30720, 45056, 30720, 23552, 27648, 21504, 20480, 13312, 14336}
	inputs := make([][]byte, len(lengths))
	// Construct inputs so that a 27648-long run is shared verbatim between
	// input 1 (starting at 3072) and input 2 (starting at 17408), and is
	// otherwise absent: every other byte is derived from a per-input,
	// per-position formula that never reproduces that run elsewhere.
	const (
		shared   = 27648
		atInput1 = 3072
		atInput2 = 17408
	)
	sharedRun := make([]byte, shared)
	for i := range sharedRun {
		sharedRun[i] = byte((i*7 + 3) % 251) // 251 is prime and < 256, avoids short cycles
	}

	for idx, n := range lengths {
		buf := make([]byte, n)
		for i := range buf {
			// filler: one period-255 sequence at a per-input phase, so it
			// never coincides with sharedRun over a long run.
			buf[i] = byte((i*13+idx*97+11)%255 + 1) // stays in [1,255]
		}
		inputs[idx] = buf
	}
	copy(inputs[1][atInput1:], sharedRun)
	copy(inputs[2][atInput2:], sharedRun)

	tree, err := Build(inputs)
	require.NoError(t, err)

	result, ok := LongestCommon(tree)
	require.True(t, ok)
	require.GreaterOrEqual(t, result.Length, shared)

	for _, o := range result.Occurrences {
		start := o.Start(tree.Sequence().RawLen(o.Index))
		require.True(t, start >= 0 && start+result.Length <= len(inputs[o.Index]))
	}
}
