package search

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_UndirectedWithParallelEdges(t *testing.T) {
	spec := makeSpec([]string{"A", "B", "C"},
		e("A", "B", "4"),
		e("A", "B", "2.5"),
		e("B", "C", ""),
	)
	g, err := Build(spec.Nodes, spec.Edges)
	require.NoError(t, err)

	assert.Equal(t, []Edge{{To: "B", Weight: 4}, {To: "B", Weight: 2.5}}, g.Neighbors("A"))
	assert.Equal(t, []Edge{{To: "A", Weight: 4}, {To: "A", Weight: 2.5}, {To: "C", Weight: 1}}, g.Neighbors("B"))
	assert.Equal(t, []Edge{{To: "B", Weight: 1}}, g.Neighbors("C"))
	assert.Equal(t, []string{"A", "B", "C"}, g.Labels())
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())

	label, ok := g.Label("2")
	assert.True(t, ok)
	assert.Equal(t, "B", label)
}

func TestBuild_IsolatedNodeHasEmptyAdjacency(t *testing.T) {
	spec := makeSpec([]string{"A", "B", "Z"}, e("A", "B", "1"))
	g, err := Build(spec.Nodes, spec.Edges)
	require.NoError(t, err)
	assert.True(t, g.Has("Z"))
	assert.Empty(t, g.Neighbors("Z"))
	assert.False(t, g.Has("missing"))
}

func TestParseWeight(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"", 1, true},
		{"   ", 1, true},
		{"3", 3, true},
		{" 2.75 ", 2.75, true},
		{"0", 0, true},
		{"1e2", 100, true},
		{"abc", 0, false},
		{"-1", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			w, err := ParseWeight(tc.in)
			if !tc.ok {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, w)
		})
	}
}

func TestBuild_Malformed(t *testing.T) {
	cases := map[string]struct {
		nodes []apptype.NodeSpec
		edges []apptype.EdgeSpec
	}{
		"unknown endpoint": {
			nodes: []apptype.NodeSpec{{ID: "1", Label: "A"}},
			edges: []apptype.EdgeSpec{{From: "1", To: "9", Label: "1"}},
		},
		"non-numeric weight": {
			nodes: []apptype.NodeSpec{{ID: "1", Label: "A"}, {ID: "2", Label: "B"}},
			edges: []apptype.EdgeSpec{{From: "1", To: "2", Label: "heavy"}},
		},
		"duplicate id": {
			nodes: []apptype.NodeSpec{{ID: "1", Label: "A"}, {ID: "1", Label: "B"}},
		},
		"duplicate label": {
			nodes: []apptype.NodeSpec{{ID: "1", Label: "A"}, {ID: "2", Label: "A"}},
		},
		"empty label": {
			nodes: []apptype.NodeSpec{{ID: "1", Label: ""}},
		},
		"missing id": {
			nodes: []apptype.NodeSpec{{ID: "", Label: "A"}},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			g, err := Build(tc.nodes, tc.edges)
			assert.Nil(t, g)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))
			var mie *MalformedInputError
			assert.True(t, errors.As(err, &mie))
			assert.NotEmpty(t, mie.Msg)
		})
	}
}
