// SPDX-License-Identifier: MIT

package shapley

import (
	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
	"github.com/IDEAL-Lab/shapley-value-simple-game/owner"
)

// Game is a simple cooperative game among data owners: a coalition wins iff
// it satisfies DNF. OwnerSet is exactly DNF.AllVariables(), cached so
// callers don't recompute it on every query.
type Game struct {
	DNF      dnf.DNF[owner.ID]
	OwnerSet owner.Set
}

// NewGame builds a Game from an already-minimized DNF.
func NewGame(exp dnf.DNF[owner.ID]) Game {
	return Game{DNF: exp, OwnerSet: owner.FromImplicant(exp.AllVariables())}
}

// OwnerLen reports the number of distinct owners in the game.
func (g Game) OwnerLen() int { return g.OwnerSet.Len() }

// ToSyns views the game's DNF as one owner.Set per implicant, the
// representation the synthesis methods operate over.
func (g Game) ToSyns() []owner.Set {
	imps := g.DNF.Implicants()
	syns := make([]owner.Set, len(imps))
	for i, im := range imps {
		syns[i] = owner.FromImplicant(im)
	}
	return syns
}

// Values maps owner id to its computed Shapley value.
type Values map[owner.ID]float64

// merge adds src into dst pointwise and returns dst. Safe to call
// concurrently only on disjoint dst instances; callers reduce independent
// Values maps with this after fanning out, never share one across
// goroutines.
func (dst Values) merge(src Values) Values {
	for k, v := range src {
		dst[k] += v
	}
	return dst
}

// reduceValues pointwise-adds a family of Values maps. The reduction is
// commutative and associative, so the input order carries no meaning.
func reduceValues(parts []Values) Values {
	out := Values{}
	for _, p := range parts {
		out.merge(p)
	}
	return out
}
