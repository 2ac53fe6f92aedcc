// SPDX-License-Identifier: MIT

package iecoeffs

// union pairs a generated payload with the largest input index folded into
// it, so growth can only ever proceed to strictly larger indices — this is
// what makes every non-empty subset appear exactly once.
type union[T any] struct {
	maxID int
	data  T
}

// UnionCombination enumerates, in no particular cross-subset order, one
// payload per non-empty subset {i0 < i1 < ... < ik} of {0, ..., n-1}. init
// builds the payload for a singleton subset {i}; inc extends a payload
// already built for some subset with max index j by folding in a new index
// i > j, or returns ok=false to prune that branch (e.g. because the
// combined set has already reached a size ceiling).
//
// The frontier grows sequentially: goroutine scheduling overhead is not
// worth paying for the subset counts this algebra sees in practice
// (bounded by the MaxHybridArity cap on hybrid nodes).
func UnionCombination[T any](n int, init func(i int) T, inc func(old T, i int) (T, bool)) []T {
	unions := make([]union[T], n)
	for i := 0; i < n; i++ {
		unions[i] = union[T]{maxID: i, data: init(i)}
	}

	cur := 0
	for cur < len(unions) {
		frontier := unions[cur:]
		cur = len(unions)
		for _, old := range frontier {
			for newID := old.maxID + 1; newID < n; newID++ {
				data, ok := inc(old.data, newID)
				if !ok {
					continue
				}
				unions = append(unions, union[T]{maxID: newID, data: data})
			}
		}
	}

	out := make([]T, len(unions))
	for i, u := range unions {
		out[i] = u.data
	}
	return out
}
