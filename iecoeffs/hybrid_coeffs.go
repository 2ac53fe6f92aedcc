// SPDX-License-Identifier: MIT

package iecoeffs

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
)

// MaxHybridArity bounds the number of sub-expressions a single hybrid node
// may carry. HybridCoeffs keys every non-empty subset of its sub-expression
// indices into a single uint64 bitmask, so arity beyond one machine word is
// rejected rather than silently truncated.
const MaxHybridArity = 64

// subsetKey is the canonical, comparable form of a bitset.BitSet over
// sub-expression positions, used as a map key.
type subsetKey uint64

func keyOf(bs *bitset.BitSet) subsetKey {
	var key subsetKey
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		if i >= MaxHybridArity {
			panic("iecoeffs: hybrid node exceeds MaxHybridArity modular parts")
		}
		key |= subsetKey(1) << i
	}
	return key
}

func implicantBitSet(imp dnf.Implicant[int], cap int) *bitset.BitSet {
	bs := bitset.New(uint(cap))
	for _, v := range imp.Slice() {
		bs.Set(uint(v))
	}
	return bs
}

// HybridCoeffs precomputes, for a hybrid decomposition node with n
// sub-expressions each carrying a base IECoeffs, the vertical (AND)
// product of every non-empty subset of those sub-expressions. Building it
// once per node lets the recursive engine look up any subset's combined
// coefficient in O(1) instead of recomputing cardinality convolutions on
// every visit.
type HybridCoeffs struct {
	inputLen  int
	coeffsMap map[subsetKey]IECoeffs
}

// NewHybridCoeffs builds the subset-to-coefficient map for input, the base
// IECoeffs of each of a hybrid node's sub-expressions in positional order.
func NewHybridCoeffs(input []IECoeffs) HybridCoeffs {
	n := len(input)
	if n == 0 {
		panic("iecoeffs: HybridCoeffs requires at least one sub-expression")
	}
	if n > MaxHybridArity {
		panic("iecoeffs: hybrid node exceeds MaxHybridArity modular parts")
	}

	if n == 1 {
		bs := bitset.New(1)
		bs.Set(0)
		return HybridCoeffs{inputLen: 1, coeffsMap: map[subsetKey]IECoeffs{keyOf(bs): input[0]}}
	}

	type unionData struct {
		inputSet *bitset.BitSet
		coeffs   IECoeffs
	}

	unions := UnionCombination(n, func(i int) unionData {
		bs := bitset.New(uint(n))
		bs.Set(uint(i))
		return unionData{inputSet: bs, coeffs: input[i]}
	}, func(old unionData, j int) (unionData, bool) {
		newSet := old.inputSet.Clone()
		newSet.Set(uint(j))
		return unionData{inputSet: newSet, coeffs: VerticalOp(old.coeffs, input[j])}, true
	})

	coeffsMap := make(map[subsetKey]IECoeffs, len(unions))
	for _, u := range unions {
		coeffsMap[keyOf(u.inputSet)] = u.coeffs
	}
	return HybridCoeffs{inputLen: n, coeffsMap: coeffsMap}
}

// InputLen reports the number of sub-expressions this HybridCoeffs was
// built from — the cap callers should pass to ExpToInputUnions when
// enumerating unions of a DNF defined over the same positional indices.
func (h HybridCoeffs) InputLen() int { return h.inputLen }

func (h HybridCoeffs) lookup(bs *bitset.BitSet) IECoeffs {
	coeffs, ok := h.coeffsMap[keyOf(bs)]
	if !ok {
		panic("iecoeffs: no coefficients recorded for this subset — invariant violated")
	}
	return coeffs
}

// ExpCoeffs computes the inclusion-exclusion coefficients of a hybrid
// node's own hybrid_exp: the signed sum, over every non-empty union of
// exp's implicants, of the vertical product of the sub-expressions that
// union touches, with sign (-1)^(numberOfImplicantsInUnion+1).
func (h HybridCoeffs) ExpCoeffs(exp dnf.DNF[int]) IECoeffs {
	terms := exp.Implicants()
	if len(terms) == 0 {
		panic("iecoeffs: ExpCoeffs called on an empty expression — invariant violated")
	}
	if len(terms) == 1 {
		return h.lookup(implicantBitSet(terms[0], h.inputLen))
	}
	return h.ExpUnionsCoeffs(ExpToInputUnions(exp, h.inputLen))
}

// ExpUnionsCoeffs sums the signed coefficients of a precomputed family of
// implicant-unions (see ExpToInputUnions), letting callers reuse the same
// union family across several coefficient queries (the hybrid cal_sv step
// needs both ExpUnionsCoeffs and ExpUnionsInteraction over the same
// families).
func (h HybridCoeffs) ExpUnionsCoeffs(unions []ExpInputUnion) IECoeffs {
	ans := HorizontalIdentity()
	for _, u := range unions {
		sign := 1
		if u.NumOfImp%2 == 0 {
			sign = -1
		}
		ans = ans.Add(h.lookup(u.InputSet).ApplySign(sign))
	}
	return ans
}

// ExpUnionsInteraction computes the signed cross-term between two families
// of implicant-unions: for every pair (u1, u2), the coefficient of the
// union of their input sets, signed (-1)^(|u1|+|u2|).
func (h HybridCoeffs) ExpUnionsInteraction(unions1, unions2 []ExpInputUnion) IECoeffs {
	ans := HorizontalIdentity()
	for _, u1 := range unions1 {
		for _, u2 := range unions2 {
			combined := u1.InputSet.Clone()
			combined.InPlaceUnion(u2.InputSet)
			sign := -1
			if (u1.NumOfImp+u2.NumOfImp)%2 == 0 {
				sign = 1
			}
			ans = ans.Add(h.lookup(combined).ApplySign(sign))
		}
	}
	return ans
}

// Interaction is a convenience wrapper around ExpUnionsInteraction that
// builds both union families from their source expressions; kept for
// cross-validation against the fixtures in hybrid_coeffs_test.go.
func (h HybridCoeffs) Interaction(exp1, exp2 dnf.DNF[int]) IECoeffs {
	return h.ExpUnionsInteraction(ExpToInputUnions(exp1, h.inputLen), ExpToInputUnions(exp2, h.inputLen))
}

// ExpInputUnion is one non-empty union of a hybrid_exp's implicants: which
// sub-expression positions it touches (InputSet) and how many implicants
// were folded together to reach it (NumOfImp, which determines sign).
type ExpInputUnion struct {
	NumOfImp int
	InputSet *bitset.BitSet
}

// ExpToInputUnions enumerates every non-empty union of exp's implicants.
// cap bounds the bitset capacity (the number of sub-expression positions a
// hybrid node carries); growth that reaches every position before the final
// implicant is pruned, since such a branch's signed descendants cancel to
// zero.
func ExpToInputUnions(exp dnf.DNF[int], cap int) []ExpInputUnion {
	imps := exp.Implicants()
	n := len(imps)

	return UnionCombination(n, func(i int) ExpInputUnion {
		return ExpInputUnion{NumOfImp: 1, InputSet: implicantBitSet(imps[i], cap)}
	}, func(old ExpInputUnion, j int) (ExpInputUnion, bool) {
		newSet := old.InputSet.Clone()
		for _, v := range imps[j].Slice() {
			newSet.Set(uint(v))
		}
		if int(newSet.Count()) == cap && j != n-1 {
			return ExpInputUnion{}, false
		}
		return ExpInputUnion{NumOfImp: old.NumOfImp + 1, InputSet: newSet}, true
	})
}
