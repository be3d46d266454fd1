// Package fst: full structural property recomputation.
//
// ComputeProperties derives every trinary pair from the automaton data:
// one pass over arcs for label/weight/order facts, a forward reach for
// accessibility, a reverse reach for coaccessibility, an iterative DFS for
// cyclicity, and strongly connected components for the weighted-cycles
// determination. Used by Properties(mask, test=true); the result is always
// reconcilable with the structural data by construction.

package fst

import "github.com/katalvlaran/weft/weight"

// ComputeProperties scans f and returns the fully-known trinary bitset.
// Complexity: O(states + arcs).
func ComputeProperties(f Fst) uint64 {
	n := f.NumStates()
	if n == 0 {
		return NullProps
	}
	sr := f.Semiring()
	zero, one := sr.Zero(), sr.One()

	// Single pass over arcs and final weights for per-arc facts.
	acceptor, ideterministic, odeterministic := true, true, true
	noEps, noIEps, noOEps := true, true, true
	ilSorted, olSorted, unweighted, topSorted := true, true, true, true
	for s := 0; s < n; s++ {
		fw := f.Final(StateID(s))
		if !fw.Equal(zero) && !fw.Equal(one) {
			unweighted = false
		}
		ilabels := make(map[Label]bool)
		olabels := make(map[Label]bool)
		var prev *Arc
		for it := f.Arcs(StateID(s)); !it.Done(); it.Next() {
			a := it.Value()
			if a.ILabel != a.OLabel {
				acceptor = false
			}
			if a.ILabel == Epsilon {
				noIEps = false
				if a.OLabel == Epsilon {
					noEps = false
				}
			}
			if a.OLabel == Epsilon {
				noOEps = false
			}
			if ilabels[a.ILabel] {
				ideterministic = false
			}
			if olabels[a.OLabel] {
				odeterministic = false
			}
			ilabels[a.ILabel] = true
			olabels[a.OLabel] = true
			if prev != nil && prev.ILabel > a.ILabel {
				ilSorted = false
			}
			if prev != nil && prev.OLabel > a.OLabel {
				olSorted = false
			}
			if !a.Weight.Equal(zero) && !a.Weight.Equal(one) {
				unweighted = false
			}
			if a.NextState <= StateID(s) {
				topSorted = false
			}
			arc := a
			prev = &arc
		}
	}

	start := f.Start()
	accessible := forwardReach(f, n, start)
	accessibleAll := true
	for s := 0; s < n; s++ {
		if !accessible[s] {
			accessibleAll = false
			break
		}
	}
	coaccessibleAll := reverseReachAll(f, n, zero)
	acyclic := isAcyclic(f, n)
	initialAcyclic := start == NoStateID || !onCycleThrough(f, n, start, accessible)
	isString := stringShape(f, n, start, zero, accessible, acyclic)
	unweightedCycles := acyclic || unweighted || cyclesUnweighted(f, n, one)

	props := uint64(0)
	pick := func(cond bool, yes, no uint64) {
		if cond {
			props |= yes
		} else {
			props |= no
		}
	}
	pick(acceptor, PropAcceptor, PropNotAcceptor)
	pick(ideterministic, PropIDeterministic, PropNotIDeterministic)
	pick(odeterministic, PropODeterministic, PropNotODeterministic)
	pick(noEps, PropNoEpsilons, PropEpsilons)
	pick(noIEps, PropNoIEpsilons, PropIEpsilons)
	pick(noOEps, PropNoOEpsilons, PropOEpsilons)
	pick(ilSorted, PropILabelSorted, PropNotILabelSorted)
	pick(olSorted, PropOLabelSorted, PropNotOLabelSorted)
	pick(unweighted, PropUnweighted, PropWeighted)
	pick(acyclic, PropAcyclic, PropCyclic)
	pick(initialAcyclic, PropInitialAcyclic, PropInitialCyclic)
	pick(topSorted, PropTopSorted, PropNotTopSorted)
	pick(accessibleAll, PropAccessible, PropNotAccessible)
	pick(coaccessibleAll, PropCoaccessible, PropNotCoaccessible)
	pick(isString, PropString, PropNotString)
	pick(unweightedCycles, PropUnweightedCycles, PropWeightedCycles)

	return props
}

// forwardReach marks every state reachable from start.
func forwardReach(f Fst, n int, start StateID) []bool {
	seen := make([]bool, n)
	if start == NoStateID {
		return seen
	}
	queue := []StateID{start}
	seen[start] = true
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for it := f.Arcs(s); !it.Done(); it.Next() {
			next := it.Value().NextState
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	return seen
}

// reverseReachAll reports whether every state reaches a final state,
// walking the reversed arcs from the final set.
func reverseReachAll(f Fst, n int, zero weight.Weight) bool {
	rev := make([][]StateID, n)
	queue := make([]StateID, 0, n)
	seen := make([]bool, n)
	for s := 0; s < n; s++ {
		if !f.Final(StateID(s)).Equal(zero) {
			seen[s] = true
			queue = append(queue, StateID(s))
		}
		for it := f.Arcs(StateID(s)); !it.Done(); it.Next() {
			next := it.Value().NextState
			rev[next] = append(rev[next], StateID(s))
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, p := range rev[s] {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	for s := 0; s < n; s++ {
		if !seen[s] {
			return false
		}
	}

	return true
}

// isAcyclic runs an iterative three-color DFS over all states.
func isAcyclic(f Fst, n int) bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]byte, n)
	type frame struct {
		s  StateID
		it *ArcIterator
	}
	for root := 0; root < n; root++ {
		if color[root] != white {
			continue
		}
		stack := []frame{{s: StateID(root), it: f.Arcs(StateID(root))}}
		color[root] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.it.Done() {
				color[top.s] = black
				stack = stack[:len(stack)-1]
				continue
			}
			next := top.it.Value().NextState
			top.it.Next()
			switch color[next] {
			case gray:
				return false
			case white:
				color[next] = gray
				stack = append(stack, frame{s: next, it: f.Arcs(next)})
			}
		}
	}

	return true
}

// onCycleThrough reports whether some cycle passes through start, i.e.
// whether start is reachable from one of its own successors.
func onCycleThrough(f Fst, n int, start StateID, accessible []bool) bool {
	for s := 0; s < n; s++ {
		if !accessible[s] {
			continue
		}
		for it := f.Arcs(StateID(s)); !it.Done(); it.Next() {
			if it.Value().NextState == start {
				return true
			}
		}
	}

	return false
}

// stringShape reports whether the automaton is one non-branching accepting
// path: acyclic, fully accessible from start, every state with exactly one
// arc except a single final state with none.
func stringShape(f Fst, n int, start StateID, zero weight.Weight, accessible []bool, acyclic bool) bool {
	if !acyclic || start == NoStateID {
		return false
	}
	finals := 0
	for s := 0; s < n; s++ {
		if !accessible[s] {
			return false
		}
		final := !f.Final(StateID(s)).Equal(zero)
		arcs := f.NumArcs(StateID(s))
		switch {
		case final && arcs == 0:
			finals++
		case !final && arcs == 1:
			// interior path state
		default:
			return false
		}
	}

	return finals == 1
}

// cyclesUnweighted reports whether every arc lying on some cycle carries
// the weight One. Arcs on cycles are exactly the arcs internal to a
// strongly connected component, found with an iterative Tarjan pass.
func cyclesUnweighted(f Fst, n int, one weight.Weight) bool {
	comp := sccComponents(f, n)
	for s := 0; s < n; s++ {
		for it := f.Arcs(StateID(s)); !it.Done(); it.Next() {
			a := it.Value()
			// Self-loops are cycles; distinct states share a component
			// only when a cycle joins them.
			if comp[s] == comp[a.NextState] && !a.Weight.Equal(one) {
				return false
			}
		}
	}

	return true
}

// sccComponents assigns a strongly-connected-component id to every state
// (iterative Tarjan).
func sccComponents(f Fst, n int) []int {
	const unvisited = -1
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	comp := make([]int, n)
	for s := range index {
		index[s] = unvisited
		comp[s] = unvisited
	}
	var (
		counter, ncomp int
		tstack         []StateID
	)
	type frame struct {
		s  StateID
		it *ArcIterator
	}
	for root := 0; root < n; root++ {
		if index[root] != unvisited {
			continue
		}
		stack := []frame{{s: StateID(root), it: f.Arcs(StateID(root))}}
		index[root], low[root] = counter, counter
		counter++
		tstack = append(tstack, StateID(root))
		onStack[root] = true
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if !top.it.Done() {
				next := top.it.Value().NextState
				top.it.Next()
				if index[next] == unvisited {
					index[next], low[next] = counter, counter
					counter++
					tstack = append(tstack, next)
					onStack[next] = true
					stack = append(stack, frame{s: next, it: f.Arcs(next)})
				} else if onStack[next] && index[next] < low[top.s] {
					low[top.s] = index[next]
				}
				continue
			}
			s := top.s
			stack = stack[:len(stack)-1]
			if len(stack) > 0 && low[s] < low[stack[len(stack)-1].s] {
				low[stack[len(stack)-1].s] = low[s]
			}
			if low[s] == index[s] {
				for {
					w := tstack[len(tstack)-1]
					tstack = tstack[:len(tstack)-1]
					onStack[w] = false
					comp[w] = ncomp
					if w == s {
						break
					}
				}
				ncomp++
			}
		}
	}

	return comp
}
