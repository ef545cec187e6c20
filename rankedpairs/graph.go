// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rankedpairs

import "github.com/AksoEo/voting/ballot"

// lockGraph is the cycle-avoiding DAG built by inserting majority pairs
// strongest-first (§3 "Ranked-Pairs lock graph", §9 "Mutable graph
// structures"). Reachability is computed with depth-first search, which is
// correct because the graph is kept acyclic by construction.
type lockGraph struct {
	adj      map[ballot.CandidateID][]ballot.CandidateID
	incoming map[ballot.CandidateID]int
}

func newLockGraph(nodes []ballot.CandidateID) *lockGraph {
	g := &lockGraph{
		adj:      make(map[ballot.CandidateID][]ballot.CandidateID, len(nodes)),
		incoming: make(map[ballot.CandidateID]int, len(nodes)),
	}
	for _, n := range nodes {
		g.adj[n] = nil
		g.incoming[n] = 0
	}
	return g
}

// reachable reports whether to can be reached from from by following
// directed edges.
func (g *lockGraph) reachable(from, to ballot.CandidateID) bool {
	if from == to {
		return true
	}
	visited := map[ballot.CandidateID]bool{from: true}
	stack := []ballot.CandidateID{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.adj[n] {
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// addEdge inserts a from->to edge unless to can already reach from (which
// would close a cycle). It reports whether the edge was inserted.
func (g *lockGraph) addEdge(from, to ballot.CandidateID) bool {
	if g.reachable(to, from) {
		return false
	}
	g.adj[from] = append(g.adj[from], to)
	g.incoming[to]++
	return true
}

// roots returns the nodes with no incoming edges, in ascending id order.
func (g *lockGraph) roots() []ballot.CandidateID {
	var roots []ballot.CandidateID
	for n, in := range g.incoming {
		if in == 0 {
			roots = append(roots, n)
		}
	}
	insertionSortIDs(roots)
	return roots
}

func insertionSortIDs(ids []ballot.CandidateID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}
