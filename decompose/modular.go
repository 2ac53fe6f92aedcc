// SPDX-License-Identifier: MIT

package decompose

import (
	"sort"

	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
)

// computeModularClosure grows seed into its modular closure by repeatedly
// solving the PMODULAR problem (Bioch, p.27) until it stabilizes. exp must
// already be minimized.
func computeModularClosure[V dnf.Variable](exp dnf.DNF[V], seed dnf.Implicant[V]) dnf.Implicant[V] {
	for {
		newSeed, ok := solvePModular(exp, seed)
		if !ok {
			return seed
		}
		if newSeed.Equal(seed) {
			panic("decompose: modular closure made no progress — invariant violated")
		}
		seed = newSeed
	}
}

type impPair[V dnf.Variable] struct {
	s, t dnf.Implicant[V]
}

// solvePModular solves the PMODULAR problem: it returns ok=false if
// maybeModular is already a modular set, otherwise it returns
// maybeModular plus a minimal extension still outside the modular closure.
func solvePModular[V dnf.Variable](exp dnf.DNF[V], maybeModular dnf.Implicant[V]) (dnf.Implicant[V], bool) {
	partialExp := exp.PartialExp(maybeModular)
	if partialExp.Len() < 2 {
		return dnf.Implicant[V]{}, false
	}

	terms := partialExp.Implicants()
	list := make([]impPair[V], len(terms))
	for i, t := range terms {
		list[i] = impPair[V]{s: t.Intersection(maybeModular), t: t.Difference(maybeModular)}
	}
	sort.Slice(list, func(i, j int) bool {
		c := compareSlices(list[i].s.Slice(), list[j].s.Slice())
		if c != 0 {
			return c < 0
		}
		return compareSlices(list[i].t.Slice(), list[j].t.Slice()) < 0
	})

	culpritS, culpritT, ok := findCulprit(list)
	if !ok {
		return dnf.Implicant[V]{}, false
	}

	var best dnf.Implicant[V]
	haveBest := false
	for _, u := range terms {
		ut := u.Difference(culpritS).Difference(culpritT)
		if ut.HasIntersection(maybeModular) {
			continue
		}
		if !haveBest || ut.Len() < best.Len() {
			best = ut
			haveBest = true
		}
	}
	if !haveBest {
		panic("decompose: solvePModular found no candidate — invariant violated")
	}

	return best.Union(maybeModular), true
}

// findCulprit locates a culprit pair (s, t) from the sorted (intersection,
// difference) pair list, per Bioch's Corollary 7 (pp.29-31). ok is false if
// the list is already consistent with a modular set (no culprit).
func findCulprit[V dnf.Variable](list []impPair[V]) (s, t dnf.Implicant[V], ok bool) {
	segmentLen := 1
	first := list[0].s
	for _, x := range list[1:] {
		if x.s.Equal(first) {
			segmentLen++
		} else {
			break
		}
	}

	i := segmentLen
	for i < len(list) {
		if list[i-1].s.Equal(list[i].s) {
			return corollary7(list, 0, i)
		}

		j := 0
		for j < segmentLen {
			if i+j >= len(list) || !list[i].s.Equal(list[i+j].s) {
				return corollary7(list, i, j)
			}

			c := compareSlices(list[j].t.Slice(), list[i+j].t.Slice())
			switch {
			case c < 0:
				return corollary7(list, i, j)
			case c > 0:
				return corollary7(list, 0, i+j)
			}
			j++
		}

		i += j
	}

	return dnf.Implicant[V]{}, dnf.Implicant[V]{}, false
}

// corollary7 finds a culprit pair using the missing-tuple argument (Bioch,
// p.29), preferring a pair reachable from the table's own rows over the
// synthetic (missing_s, missing_t) pair.
func corollary7[V dnf.Variable](list []impPair[V], missingSIndex, missingTIndex int) (s, t dnf.Implicant[V], ok bool) {
	missingS := list[missingSIndex].s
	missingT := list[missingTIndex].t

	for i, p := range list {
		if i != missingSIndex && !p.s.Equal(missingS) {
			if p.s.IsSubsetOf(missingS) {
				return p.s, list[missingSIndex].t, true
			}
			if missingS.IsSubsetOf(p.s) {
				return missingS, p.t, true
			}
		}
		if i != missingTIndex && !p.t.Equal(missingT) {
			if p.t.IsSubsetOf(missingT) {
				return list[missingTIndex].s, p.t, true
			}
			if missingT.IsSubsetOf(p.t) {
				return p.s, missingT, true
			}
		}
	}
	return missingS, missingT, true
}

// compareSlices lexicographically compares two ascending-sorted variable
// slices, element by element with length as the tie-breaker.
func compareSlices[V dnf.Variable](a, b []V) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// computeMaximalModularSet grows seed into the maximal modular set
// reachable without covering every variable (Lemma 8, p.32).
func computeMaximalModularSet[V dnf.Variable](exp dnf.DNF[V], seed dnf.Implicant[V], allVariables dnf.Implicant[V], skipVariables *dnf.Implicant[V]) dnf.Implicant[V] {
	var candidates dnf.Implicant[V]
	if skipVariables != nil {
		candidates = allVariables.Difference(*skipVariables)
		for _, v := range seed.Slice() {
			candidates = candidates.Difference(dnf.NewImplicant(v))
		}
	} else {
		candidates = allVariables.Difference(seed)
	}

	ans := seed
	for _, v := range candidates.Slice() {
		closure := computeModularClosure(exp, ans.With(v))
		if closure.Len() != allVariables.Len() {
			ans = closure
		}
	}
	return ans
}

// computeAllDisjointModularSet partitions allVariables into disjoint
// maximal modular sets (Proposition 7, p.32), reporting whether the
// partition is prime (more than a simple AND/OR split).
func computeAllDisjointModularSet[V dnf.Variable](exp dnf.DNF[V], allVariables dnf.Implicant[V]) ([]dnf.Implicant[V], bool) {
	vars := allVariables.Slice()

	c1 := computeMaximalModularSet(exp, dnf.NewImplicant(vars[0]), allVariables, nil)
	startVar2 := allVariables.Difference(c1).Slice()[0]
	c2 := computeMaximalModularSet(exp, dnf.NewImplicant(startVar2), allVariables, nil)

	ans := []dnf.Implicant[V]{c1, c2}

	if !c1.HasIntersection(c2) {
		union := c1.Union(c2)
		for {
			rest := allVariables.Difference(union).Slice()
			if len(rest) == 0 {
				break
			}
			c := computeMaximalModularSet(exp, dnf.NewImplicant(rest[0]), allVariables, &union)
			union = union.Union(c)
			ans = append(ans, c)
		}
		return ans, true
	}

	intersection := c1.Intersection(c2)
	for intersection.Len() > 0 {
		seed := allVariables.Difference(intersection)
		c := computeMaximalModularSet(exp, seed, allVariables, nil)
		intersection = intersection.Intersection(c)
		ans = append(ans, c)
	}
	out := make([]dnf.Implicant[V], len(ans))
	for i, s := range ans {
		out[i] = allVariables.Difference(s)
	}
	return out, false
}
