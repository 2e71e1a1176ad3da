package usecase

import "sort"

// edge is a prerequisite->dependent relation between two step IDs.
type edge struct {
	prerequisite uint
	dependent    uint
}

// hasPath reports whether `to` is reachable from `from` following the
// prerequisite->dependent direction. Used to reject edges that would
// close a cycle: prerequisite->dependent is illegal when the
// prerequisite is already reachable from the dependent.
func hasPath(edges []edge, from, to uint) bool {
	adjacent := make(map[uint][]uint, len(edges))
	for _, e := range edges {
		adjacent[e.prerequisite] = append(adjacent[e.prerequisite], e.dependent)
	}

	seen := map[uint]bool{}
	stack := []uint{from}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == to {
			return true
		}
		if seen[node] {
			continue
		}
		seen[node] = true
		stack = append(stack, adjacent[node]...)
	}
	return false
}

// topoOrder runs Kahn's algorithm over the step IDs and edges and
// returns the IDs in a valid execution order. Among the steps that are
// ready at the same time, `less` breaks ties, keeping the result
// deterministic. Returns false when the edges contain a cycle.
func topoOrder(ids []uint, edges []edge, less func(a, b uint) bool) ([]uint, bool) {
	indegree := make(map[uint]int, len(ids))
	adjacent := make(map[uint][]uint, len(edges))
	for _, id := range ids {
		indegree[id] = 0
	}
	for _, e := range edges {
		adjacent[e.prerequisite] = append(adjacent[e.prerequisite], e.dependent)
		indegree[e.dependent]++
	}

	var ready []uint
	for _, id := range ids {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]uint, 0, len(ids))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return less(ready[i], ready[j]) })

		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, dependent := range adjacent[next] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != len(ids) {
		return nil, false
	}
	return order, true
}
