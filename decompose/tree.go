// SPDX-License-Identifier: MIT

package decompose

import "github.com/IDEAL-Lab/shapley-value-simple-game/dnf"

// Node is one node of a modular decomposition tree: the characteristic
// function of a DNF expression expressed as a Var leaf, an And/Or
// composition of independent sub-expressions, or a Hybrid composition for
// sub-expressions that are neither pure AND nor pure OR of one another.
type Node[V dnf.Variable] interface {
	// Expand reconstructs the (minimized) DNF this node represents.
	Expand() dnf.DNF[V]
}

// VarNode is a single-variable leaf of the decomposition tree.
type VarNode[V dnf.Variable] struct {
	Var V
}

// Expand implements Node.
func (n VarNode[V]) Expand() dnf.DNF[V] { return dnf.SingleVariableExp(n.Var) }

// AndNode composes independent sub-expressions whose variable sets must
// all be simultaneously satisfied.
type AndNode[V dnf.Variable] struct {
	Children []Node[V]
}

// Expand implements Node.
func (n AndNode[V]) Expand() dnf.DNF[V] {
	ans := dnf.TrueExp[V]()
	for _, c := range n.Children {
		ans = ans.And(c.Expand())
	}
	return ans
}

// OrNode composes independent sub-expressions, any one of which is
// sufficient.
type OrNode[V dnf.Variable] struct {
	Children []Node[V]
}

// Expand implements Node.
func (n OrNode[V]) Expand() dnf.DNF[V] {
	ans := dnf.FalseExp[V]()
	for _, c := range n.Children {
		ans = ans.Or(c.Expand())
	}
	return ans
}

// HybridNode composes sub-expressions whose interaction is neither pure
// AND nor pure OR. HybridExp is a DNF over the positional indices of
// Children (0..len(Children)-1): one implicant of HybridExp is the AND of
// the children it names, and the whole composition is their OR.
type HybridNode[V dnf.Variable] struct {
	HybridExp dnf.DNF[int]
	Children  []Node[V]
}

// Expand implements Node.
func (n HybridNode[V]) Expand() dnf.DNF[V] {
	subExps := make([]dnf.DNF[V], len(n.Children))
	for i, c := range n.Children {
		subExps[i] = c.Expand()
	}

	ans := dnf.FalseExp[V]()
	for _, term := range n.HybridExp.Implicants() {
		sub := dnf.TrueExp[V]()
		for _, idx := range term.Slice() {
			sub = sub.And(subExps[idx])
		}
		ans = ans.Or(sub)
	}
	return ans
}

// Equal reports whether a and b represent the same decomposition, treating
// And/Or children as an unordered collection (matching the boolean algebra
// they encode) while requiring Hybrid children and HybridExp to match
// exactly, since HybridExp's implicants reference Children by position.
func Equal[V dnf.Variable](a, b Node[V]) bool {
	switch av := a.(type) {
	case VarNode[V]:
		bv, ok := b.(VarNode[V])
		return ok && av.Var == bv.Var
	case AndNode[V]:
		bv, ok := b.(AndNode[V])
		return ok && unorderedEqual(av.Children, bv.Children)
	case OrNode[V]:
		bv, ok := b.(OrNode[V])
		return ok && unorderedEqual(av.Children, bv.Children)
	case HybridNode[V]:
		bv, ok := b.(HybridNode[V])
		if !ok || av.HybridExp.String() != bv.HybridExp.String() || len(av.Children) != len(bv.Children) {
			return false
		}
		for i := range av.Children {
			if !Equal(av.Children[i], bv.Children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func unorderedEqual[V dnf.Variable](a, b []Node[V]) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if Equal(x, y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
