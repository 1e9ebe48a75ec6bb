package search

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
)

type testEdge struct {
	from, to string
	weight   string
}

func e(from, to, weight string) testEdge { return testEdge{from: from, to: to, weight: weight} }

// makeSpec builds a GraphSpec whose node ids are 1-based positions, so edges
// go through real id resolution.
func makeSpec(labels []string, edges ...testEdge) apptype.GraphSpec {
	ids := make(map[string]string, len(labels))
	spec := apptype.GraphSpec{}
	for i, l := range labels {
		id := strconv.Itoa(i + 1)
		ids[l] = id
		spec.Nodes = append(spec.Nodes, apptype.NodeSpec{ID: apptype.StringOrNumber(id), Label: l})
	}
	for _, ed := range edges {
		spec.Edges = append(spec.Edges, apptype.EdgeSpec{
			From:  apptype.StringOrNumber(ids[ed.from]),
			To:    apptype.StringOrNumber(ids[ed.to]),
			Label: apptype.StringOrNumber(ed.weight),
		})
	}
	return spec
}

func solve(spec apptype.GraphSpec, alg, src, dst string, h Heuristic) (apptype.Result, []apptype.Event) {
	sink := &CollectingSink{}
	res := NewSolver().Solve(Request{
		Graph:       spec,
		Source:      src,
		Destination: dst,
		Algorithm:   alg,
		Heuristic:   h,
	}, sink)
	return res, sink.Events
}

func ofType(events []apptype.Event, t apptype.EventType) []apptype.Event {
	var out []apptype.Event
	for _, ev := range events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func nodesOf(events []apptype.Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Node)
	}
	return out
}

// randomSpec returns a connected-or-not graph with small integer weights.
func randomSpec(r *rand.Rand, unit bool) (apptype.GraphSpec, []string) {
	n := 2 + r.IntN(11)
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("N%d", i)
	}
	m := r.IntN(3 * n)
	edges := make([]testEdge, 0, m)
	for i := 0; i < m; i++ {
		a, b := labels[r.IntN(n)], labels[r.IntN(n)]
		w := ""
		if !unit {
			if k := r.IntN(11); k < 10 {
				w = strconv.Itoa(k)
			}
		}
		edges = append(edges, e(a, b, w))
	}
	return makeSpec(labels, edges...), labels
}

// floydWarshall is the reference all-pairs shortest distance.
func floydWarshall(g *Graph) map[string]map[string]float64 {
	labels := g.Labels()
	d := make(map[string]map[string]float64, len(labels))
	for _, a := range labels {
		d[a] = make(map[string]float64, len(labels))
		for _, b := range labels {
			d[a][b] = math.Inf(1)
		}
		d[a][a] = 0
	}
	for _, a := range labels {
		for _, ed := range g.Neighbors(a) {
			if ed.Weight < d[a][ed.To] {
				d[a][ed.To] = ed.Weight
			}
		}
	}
	for _, k := range labels {
		for _, i := range labels {
			for _, j := range labels {
				if d[i][k]+d[k][j] < d[i][j] {
					d[i][j] = d[i][k] + d[k][j]
				}
			}
		}
	}
	return d
}

func adjacent(g *Graph, a, b string) bool {
	for _, ed := range g.Neighbors(a) {
		if ed.To == b {
			return true
		}
	}
	return false
}
