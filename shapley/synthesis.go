// SPDX-License-Identifier: MIT

package shapley

import (
	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
	"github.com/IDEAL-Lab/shapley-value-simple-game/owner"
)

// SynthesisMethod computes Shapley values with the IUSV family: a
// closed-form linear shortcut when the DNF has at most one implicant of
// size >1, otherwise a non-linear router between a subset-lookup method and
// a set-union inclusion-exclusion method.
func SynthesisMethod(game Game) Values {
	syns := game.ToSyns()
	if count, k, ok := isLinear(syns); ok {
		return calSVLinear(syns, count, k)
	}
	return calSVNonLinear(syns, game.OwnerSet)
}

// isLinear reports whether at most one implicant has size >1, returning the
// count of such implicants (0 or 1) and their shared size k.
func isLinear(syns []owner.Set) (count, k int, ok bool) {
	for _, syn := range syns {
		if syn.Len() > 1 {
			count++
			k = syn.Len()
		}
		if count > 1 {
			return 0, 0, false
		}
	}
	return count, k, true
}

func calSVLinear(syns []owner.Set, count, k int) Values {
	alpha := count
	beta := len(syns) - count

	svAlpha := 0.0
	if alpha != 0 {
		svAlpha = float64(alpha) / float64((k+beta)*binom(k-1, k+beta-1))
	}
	svBeta := 0.0
	if beta != 0 {
		svBeta = (1 - float64(k)*svAlpha) / float64(beta)
	}

	ans := Values{}
	for _, syn := range syns {
		if syn.Len() == 1 {
			ans[syn.Slice()[0]] = svBeta
			continue
		}
		for _, id := range syn.Slice() {
			ans[id] = svAlpha
		}
	}
	return ans
}

func calSVNonLinear(syns []owner.Set, ownerSet owner.Set) Values {
	owners := ownerSet.Slice()
	parts := make([]Values, len(owners))

	for idx, o := range owners {
		var with, without []owner.Set
		for _, syn := range syns {
			if syn.Contains(o) {
				with = append(with, syn)
			} else {
				without = append(without, syn)
			}
		}

		n := len(with) * len(without)
		switch {
		case len(with) == 0:
			n = len(without)
		case len(without) == 0:
			n = len(with)
		}

		var u float64
		if ownerSet.Len() <= n {
			u = calSVLookupIndividual(with, without, ownerSet, o)
		} else {
			u = calSVNonLinearComb(with, without)
		}
		parts[idx] = Values{o: u}
	}
	return reduceValues(parts)
}

// lookupSubset tracks growth of a candidate subset S ⊆ V\{o} while
// enumerating it via dnf.Implicant's ordered-growth semantics: nextID
// bounds which rest-of-owners index may still be appended, keeping every
// subset produced exactly once.
type lookupSubset struct {
	nextID   int
	set      dnf.Implicant[owner.ID]
	withFlag bool
}

func (s *lookupSubset) utilityWithCurrentOwner(current owner.ID, withSyns []owner.Set) bool {
	if s.withFlag {
		return true
	}
	upperBound := s.set.Len() + 1
	for _, syn := range withSyns {
		if syn.Len() > upperBound {
			continue
		}
		rest := syn.Implicant().Difference(dnf.NewImplicant(current))
		if rest.IsSubsetOf(s.set) {
			s.withFlag = true
			return true
		}
	}
	return false
}

func utilityWithoutCurrentOwner(set dnf.Implicant[owner.ID], withoutSyns []owner.Set) bool {
	for _, syn := range withoutSyns {
		if syn.Implicant().IsSubsetOf(set) {
			return true
		}
	}
	return false
}

// calSVLookupIndividual implements the lookup method: breadth-first
// growth of candidate subsets of V\{o}, pruning once a subset already makes
// the game true without o (with-flag becomes moot for every superset).
func calSVLookupIndividual(withSyns, withoutSyns []owner.Set, owners owner.Set, current owner.ID) float64 {
	n := owners.Len()
	restOfOwners := make([]owner.ID, 0, n-1)
	for _, id := range owners.Slice() {
		if id != current {
			restOfOwners = append(restOfOwners, id)
		}
	}
	restLen := len(restOfOwners)

	marginal := 0.0
	init := &lookupSubset{set: dnf.NewImplicant[owner.ID]()}
	if init.utilityWithCurrentOwner(current, withSyns) {
		marginal += 1.
	}

	coeffs := binomCoeffs(restLen)
	subsets := []*lookupSubset{init}
	chosen := 1

	for len(subsets) > 0 {
		contribution := 0
		var next []*lookupSubset

		for _, old := range subsets {
			for nextID := old.nextID; nextID < restLen; nextID++ {
				candidate := &lookupSubset{
					nextID:   nextID + 1,
					set:      old.set.With(restOfOwners[nextID]),
					withFlag: old.withFlag,
				}
				if candidate.utilityWithCurrentOwner(current, withSyns) {
					if utilityWithoutCurrentOwner(candidate.set, withoutSyns) {
						continue
					}
					contribution++
					next = append(next, candidate)
					continue
				}
				next = append(next, candidate)
			}
		}

		if contribution != 0 {
			marginal += float64(contribution) / float64(coeffs[chosen])
		}
		subsets = next
		chosen++
	}

	return marginal / float64(n)
}

// setUnionUtility computes U(syns) = Σ (-1)^(|S|+1) / |⋃S| over non-empty
// subfamilies S of syns, the cardinality-of-set-union formula.
func setUnionUtility(syns []owner.Set) float64 {
	switch len(syns) {
	case 0:
		return 0
	case 1:
		return 1 / float64(syns[0].Len())
	case 2:
		union := syns[0].Union(syns[1])
		return 1/float64(syns[0].Len()) + 1/float64(syns[1].Len()) - 1/float64(union.Len())
	}

	type unionAcc struct {
		numOfSet int
		maxSetID int
		set      owner.Set
	}
	utility := func(u unionAcc) float64 {
		sign := 1.0
		if u.numOfSet%2 == 0 {
			sign = -1.0
		}
		return sign / float64(u.set.Len())
	}

	unions := make([]unionAcc, len(syns))
	ans := 0.0
	for i, s := range syns {
		unions[i] = unionAcc{numOfSet: 1, maxSetID: i, set: s}
		ans += utility(unions[i])
	}

	for len(unions) > 0 {
		var next []unionAcc
		for _, old := range unions {
			for id := old.maxSetID + 1; id < len(syns); id++ {
				u := unionAcc{numOfSet: old.numOfSet + 1, maxSetID: id, set: old.set.Union(syns[id])}
				ans += utility(u)
				next = append(next, u)
			}
		}
		unions = next
	}
	return ans
}

// calSVNonLinearComb implements the inclusion-exclusion method: the
// utility of the "with" family minus the utility of its deduplicated
// pairwise unions with the "without" family.
func calSVNonLinearComb(withSyns, withoutSyns []owner.Set) float64 {
	utilityWith := setUnionUtility(withSyns)

	seen := map[string]owner.Set{}
	for _, w := range withSyns {
		for _, wo := range withoutSyns {
			u := w.Union(wo)
			seen[u.String()] = u
		}
	}
	interaction := make([]owner.Set, 0, len(seen))
	for _, u := range seen {
		interaction = append(interaction, u)
	}

	utilityWithout := setUnionUtility(interaction)
	return utilityWith - utilityWithout
}
