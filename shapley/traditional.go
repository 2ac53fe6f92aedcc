// SPDX-License-Identifier: MIT

package shapley

import "github.com/IDEAL-Lab/shapley-value-simple-game/owner"

// TraditionalMethod computes exact Shapley values by permutation-free
// enumeration: for each owner and each coalition size k, it averages
// the marginal contribution of the owner over every size-k subset of the
// other owners. Cost is exponential in the owner count; it exists as a
// reference oracle for cross-validation, not for production-sized games.
func TraditionalMethod(game Game) Values {
	ownerLen := game.OwnerLen()
	owners := game.OwnerSet.Slice()

	ans := Values{}
	for _, o := range owners {
		rest := make([]owner.ID, 0, ownerLen-1)
		for _, id := range owners {
			if id != o {
				rest = append(rest, id)
			}
		}

		contribution := 0.0
		for k := 0; k < ownerLen; k++ {
			var sum float64
			var count float64
			for _, subset := range combinations(rest, k) {
				without := owner.NewSet(subset...)
				utilityWithout := subsetUtility(game, without)
				utilityWith := subsetUtility(game, without.Add(o))
				sum += utilityWith - utilityWithout
				count++
			}
			contribution += sum / count
		}
		ans[o] = contribution / float64(ownerLen)
	}
	return ans
}

func subsetUtility(game Game, subset owner.Set) float64 {
	if game.DNF.Eval(subset.Implicant(), true) {
		return 1
	}
	return 0
}

// combinations returns every size-k subset of items, as slices in the input
// order. Used only by the traditional reference oracle, which is never run
// against owner counts large enough for the factor blow-up to matter.
func combinations[T any](items []T, k int) [][]T {
	if k == 0 {
		return [][]T{{}}
	}
	if k > len(items) {
		return nil
	}

	var out [][]T
	var pick func(start int, chosen []T)
	pick = func(start int, chosen []T) {
		if len(chosen) == k {
			cp := make([]T, k)
			copy(cp, chosen)
			out = append(out, cp)
			return
		}
		for i := start; i <= len(items)-(k-len(chosen)); i++ {
			pick(i+1, append(chosen, items[i]))
		}
	}
	pick(0, nil)
	return out
}
