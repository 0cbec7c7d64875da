package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentolab/pentomino-server/internal/pent"
)

// tubeSpec is the smallest useful 2D instance: a 1x5 strip that admits
// exactly one placement (the I pentomino) and exactly one solution.
func tubeSpec() *RegionSpec {
	return &RegionSpec{Type: "rect", Rows: 1, Cols: 5}
}

// hookSpec is a masked region where the only line of five strands
// unfillable pockets; see the solver tests for the geometry.
func hookSpec() *RegionSpec {
	return &RegionSpec{
		Type: "mask",
		Cells: []pent.Cell{
			{R: 0, C: 0}, {R: 0, C: 1}, {R: 0, C: 2}, {R: 0, C: 3}, {R: 0, C: 4},
			{R: 1, C: 0}, {R: 1, C: 1}, {R: 1, C: 4}, {R: 2, C: 4}, {R: 3, C: 4},
		},
		Shapes: "IL",
	}
}

func initEngine(t *testing.T, spec *RegionSpec) *Engine {
	t.Helper()
	e := NewEngine()
	resp := e.Execute(Request{Kind: KindInit, Region: spec})
	require.Equal(t, KindInit, resp.Kind, "init failed: %s", resp.Error)
	return e
}

func TestEngineRequiresInit(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	for _, kind := range []Kind{KindSolve, KindSolveTrace, KindHint, KindCount} {
		resp := e.Execute(Request{Kind: kind, MaxCount: 1, MaxTraceEvents: 1})
		assert.Equal(t, KindError, resp.Kind)
		assert.Contains(t, resp.Error, "init")
	}

	resp := e.Execute(Request{Kind: "frobnicate"})
	assert.Equal(t, KindError, resp.Kind)

	resp = e.Execute(Request{Kind: KindInit})
	assert.Equal(t, KindError, resp.Kind)
}

func TestEngineInitRejectsBadRegions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec RegionSpec
	}{
		{name: "unknown type", spec: RegionSpec{Type: "sphere"}},
		{name: "zero rect", spec: RegionSpec{Type: "rect"}},
		{name: "empty mask", spec: RegionSpec{Type: "mask"}},
		{name: "triplication without target", spec: RegionSpec{Type: "triplication", Shapes: "FILNPTUVW"}},
		{name: "triplication with short shape list", spec: RegionSpec{Type: "triplication", Target: "V", Shapes: "FIL"}},
		{name: "wrong box volume", spec: RegionSpec{Type: "box", X: 2, Y: 5, Z: 5}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := NewEngine()
			resp := e.Execute(Request{Kind: KindInit, Region: &test.spec})
			assert.Equal(t, KindError, resp.Kind)
		})
	}
}

func TestEngineSolve(t *testing.T) {
	t.Parallel()

	e := initEngine(t, tubeSpec())

	resp := e.Execute(Request{Kind: KindInit, Region: tubeSpec()})
	assert.Equal(t, 1, resp.PlacementCount)

	resp = e.Execute(Request{Kind: KindSolve})
	require.Equal(t, KindSolve, resp.Kind)
	require.Equal(t, [][]int{{0}}, resp.Solutions)
	require.Len(t, resp.First, 1)
	assert.Equal(t, 0, resp.First[0].ID)
	assert.Equal(t, "I", resp.First[0].Shape)
	assert.Len(t, resp.First[0].Cells, 5)

	// an out-of-range prefix is an empty result, not an error
	resp = e.Execute(Request{Kind: KindSolve, Prefix: []int{42}})
	require.Equal(t, KindSolve, resp.Kind)
	assert.Empty(t, resp.Solutions)
}

func TestEngineHint(t *testing.T) {
	t.Parallel()

	e := initEngine(t, tubeSpec())

	resp := e.Execute(Request{Kind: KindHint})
	require.Equal(t, KindHint, resp.Kind)
	require.NotNil(t, resp.Hint)
	assert.Equal(t, 0, resp.Hint.ID)

	resp = e.Execute(Request{Kind: KindHint, Prefix: []int{0}})
	require.Equal(t, KindHint, resp.Kind)
	assert.Nil(t, resp.Hint, "a finished puzzle has no hint")
}

func TestEngineCount(t *testing.T) {
	t.Parallel()

	e := initEngine(t, tubeSpec())

	resp := e.Execute(Request{Kind: KindCount, MaxCount: 5})
	require.Equal(t, KindCount, resp.Kind)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, resp.Count.Count)
	assert.True(t, resp.Count.Complete)

	resp = e.Execute(Request{Kind: KindCount})
	assert.Equal(t, KindError, resp.Kind, "count needs a positive cap")
}

func TestEngineCountRejectsBoxes(t *testing.T) {
	t.Parallel()

	e := initEngine(t, &RegionSpec{Type: "box", X: 3, Y: 4, Z: 5})
	resp := e.Execute(Request{Kind: KindCount, MaxCount: 1})
	assert.Equal(t, KindError, resp.Kind)
}

func TestEngineTrace(t *testing.T) {
	t.Parallel()

	e := initEngine(t, tubeSpec())

	resp := e.Execute(Request{Kind: KindSolveTrace, MaxTraceEvents: 10})
	require.Equal(t, KindSolveTrace, resp.Kind)
	assert.False(t, resp.NoResult)
	require.Equal(t, [][]int{{0}}, resp.Solutions)
	require.Len(t, resp.Trace, 1)
	assert.Equal(t, string(pent.TracePlace), resp.Trace[0].Kind)
	assert.Equal(t, "I", resp.Trace[0].Placement.Shape)

	resp = e.Execute(Request{Kind: KindSolveTrace})
	assert.Equal(t, KindError, resp.Kind, "trace needs an event cap")
}

func TestEngineTraceOverflow(t *testing.T) {
	t.Parallel()

	e := initEngine(t, hookSpec())
	resp := e.Execute(Request{Kind: KindSolveTrace, MaxTraceEvents: 1})
	require.Equal(t, KindSolveTrace, resp.Kind)
	assert.True(t, resp.NoResult)
	assert.Empty(t, resp.Solutions)
	assert.Empty(t, resp.Trace)
}

func TestEngineBox(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	e := initEngine(t, &RegionSpec{Type: "box", X: 3, Y: 4, Z: 5})

	resp := e.Execute(Request{Kind: KindSolve})
	require.Equal(t, KindSolve, resp.Kind)
	require.Len(t, resp.Solutions, 1)
	require.Len(t, resp.Solutions[0], 12)
	require.Len(t, resp.First, 12)
	for _, p := range resp.First {
		assert.Len(t, p.Cells, 5)
		assert.Len(t, p.Cells[0], 3, "box placements resolve to 3-tuples")
	}

	resp = e.Execute(Request{Kind: KindHint})
	require.Equal(t, KindHint, resp.Kind)
	require.NotNil(t, resp.Hint)
}

func TestEngineTriplicationInit(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	resp := e.Execute(Request{Kind: KindInit, Region: &RegionSpec{
		Type: "triplication", Target: "V", Shapes: "FILNPTUVW",
	}})
	require.Equal(t, KindInit, resp.Kind)
	assert.Positive(t, resp.PlacementCount)
}

func TestBuildInstance(t *testing.T) {
	t.Parallel()

	board, box, err := BuildInstance(*tubeSpec())
	require.NoError(t, err)
	require.NotNil(t, board)
	assert.Nil(t, box)

	board, box, err = BuildInstance(RegionSpec{Type: "box", X: 3, Y: 4, Z: 5})
	require.NoError(t, err)
	assert.Nil(t, board)
	require.NotNil(t, box)
	assert.Equal(t, 72, box.Columns())

	_, _, err = BuildInstance(RegionSpec{Type: "sphere"})
	assert.ErrorIs(t, err, ErrBadRegion)
}

func TestResolvePlacementsSkipsBadIDs(t *testing.T) {
	t.Parallel()

	board, _, err := BuildInstance(*tubeSpec())
	require.NoError(t, err)

	resolved := ResolvePlacements(board, nil, []int{0, 99, -1})
	require.Len(t, resolved, 1)
	assert.Equal(t, 0, resolved[0].ID)
}
