// SPDX-License-Identifier: MIT

package decompose

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
)

func imp(vars ...int) dnf.Implicant[int] { return dnf.NewImplicant(vars...) }

func sortedSlices(sets []dnf.Implicant[int]) [][]int {
	out := make([][]int, len(sets))
	for i, s := range sets {
		out[i] = s.Slice()
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && compareSlices(out[j-1], out[j]) > 0; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func TestComputeAllDisjointModularSet(t *testing.T) {
	exp := dnf.NewDNF(imp(1), imp(2), imp(3), imp(4))
	list, isPrime := computeAllDisjointModularSet(exp, exp.AllVariables())
	assert.False(t, isPrime)
	assert.ElementsMatch(t, [][]int{{1}, {2}, {3}, {4}}, sortedSlices(list))

	exp = dnf.NewDNF(
		imp(1, 2, 4), imp(1, 3, 4), imp(2, 3, 4),
		imp(1, 2, 5, 6), imp(1, 3, 5, 6), imp(2, 3, 5, 6), imp(4, 5, 6),
		imp(1, 2, 7), imp(1, 3, 7), imp(2, 3, 7), imp(4, 7),
	)
	list, isPrime = computeAllDisjointModularSet(exp, exp.AllVariables())
	assert.True(t, isPrime)
	assert.ElementsMatch(t, [][]int{{1, 2, 3}, {4}, {5, 6, 7}}, sortedSlices(list))
}

func TestDecomposeUsingCC(t *testing.T) {
	exp := dnf.NewDNF(imp(1, 3), imp(2, 3), imp(1, 4), imp(2, 4))
	_, ok := decomposeUsingCC(exp, Ablation{})
	assert.False(t, ok)

	exp = dnf.NewDNF(imp(1, 3), imp(2, 3), imp(4, 5), imp(6), imp(7))
	node, ok := decomposeUsingCC(exp, Ablation{})
	require.True(t, ok)
	or, ok := node.(OrNode[int])
	require.True(t, ok)
	assert.Len(t, or.Children, 4)
}

func TestDecomposeSingleVar(t *testing.T) {
	exp := dnf.NewDNF(imp(1))
	d := RecursiveDecompose(exp, exp.AllVariables(), Ablation{})
	assert.Equal(t, VarNode[int]{Var: 1}, d)
	assert.Equal(t, exp.String(), d.Expand().String())
}

func TestDecomposeOr(t *testing.T) {
	exp := dnf.NewDNF(imp(1), imp(2), imp(3), imp(4))
	d := RecursiveDecompose(exp, exp.AllVariables(), Ablation{})
	want := OrNode[int]{Children: []Node[int]{
		VarNode[int]{Var: 1}, VarNode[int]{Var: 2}, VarNode[int]{Var: 3}, VarNode[int]{Var: 4},
	}}
	assert.True(t, Equal[int](want, d))
	assert.Equal(t, exp.String(), d.Expand().String())
}

func TestDecomposeAndOfOr(t *testing.T) {
	exp := dnf.NewDNF(imp(1, 3), imp(2, 3), imp(1, 4), imp(2, 4))
	d := RecursiveDecompose(exp, exp.AllVariables(), Ablation{})
	want := AndNode[int]{Children: []Node[int]{
		OrNode[int]{Children: []Node[int]{VarNode[int]{Var: 1}, VarNode[int]{Var: 2}}},
		OrNode[int]{Children: []Node[int]{VarNode[int]{Var: 3}, VarNode[int]{Var: 4}}},
	}}
	assert.True(t, Equal[int](want, d))
	assert.Equal(t, exp.String(), d.Expand().String())
}

func TestDecomposeNestedHybrid(t *testing.T) {
	exp := dnf.NewDNF(
		imp(1, 2, 4), imp(1, 3, 4), imp(2, 3, 4),
		imp(1, 2, 5, 6), imp(1, 3, 5, 6), imp(2, 3, 5, 6), imp(4, 5, 6),
		imp(1, 2, 7), imp(1, 3, 7), imp(2, 3, 7), imp(4, 7),
	)
	d := RecursiveDecompose(exp, exp.AllVariables(), Ablation{})

	want := HybridNode[int]{
		HybridExp: dnf.NewDNF(imp(0, 1), imp(0, 2), imp(1, 2)),
		Children: []Node[int]{
			HybridNode[int]{
				HybridExp: dnf.NewDNF(imp(0, 1), imp(0, 2), imp(1, 2)),
				Children:  []Node[int]{VarNode[int]{Var: 1}, VarNode[int]{Var: 2}, VarNode[int]{Var: 3}},
			},
			VarNode[int]{Var: 4},
			OrNode[int]{Children: []Node[int]{
				AndNode[int]{Children: []Node[int]{VarNode[int]{Var: 5}, VarNode[int]{Var: 6}}},
				VarNode[int]{Var: 7},
			}},
		},
	}
	assert.True(t, Equal[int](want, d))
	assert.Equal(t, exp.String(), d.Expand().String())
}

func TestDecomposeExpandRoundTripsRandomExpressions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		nVars := 2 + rng.Intn(6)
		nImps := 1 + rng.Intn(4)
		imps := make([]dnf.Implicant[int], nImps)
		for j := range imps {
			size := 1 + rng.Intn(nVars)
			vars := make([]int, size)
			for k := range vars {
				vars[k] = 1 + rng.Intn(nVars)
			}
			imps[j] = dnf.NewImplicant(vars...)
		}
		exp := dnf.NewDNF(imps...)

		for _, ab := range []Ablation{{}, {NoVertical: true}, {NoHorizontal: true}, {NoHybrid: true}} {
			d := RecursiveDecompose(exp, exp.AllVariables(), ab)
			assert.Equal(t, exp.String(), d.Expand().String(), "case %d ablation %+v", i, ab)
		}
	}
}

func TestDecomposeAblationNoVertical(t *testing.T) {
	exp := dnf.NewDNF(imp(1, 3), imp(2, 3), imp(1, 4), imp(2, 4))
	d := RecursiveDecompose(exp, exp.AllVariables(), Ablation{NoVertical: true})
	_, isAnd := d.(AndNode[int])
	assert.False(t, isAnd)
	hybrid, ok := d.(HybridNode[int])
	require.True(t, ok)
	assert.Len(t, hybrid.Children, 2)
	assert.Equal(t, exp.String(), d.Expand().String())
}

func TestDecomposeAblationNoHorizontal(t *testing.T) {
	exp := dnf.NewDNF(imp(1), imp(2), imp(3), imp(4))
	d := RecursiveDecompose(exp, exp.AllVariables(), Ablation{NoHorizontal: true})
	_, isOr := d.(OrNode[int])
	assert.False(t, isOr)
	hybrid, ok := d.(HybridNode[int])
	require.True(t, ok)
	assert.Len(t, hybrid.Children, 4)
	assert.Equal(t, exp.String(), d.Expand().String())
}

func TestDecomposeAblationNoHybrid(t *testing.T) {
	exp := dnf.NewDNF(
		imp(1, 2, 4), imp(1, 3, 4), imp(2, 3, 4),
		imp(1, 2, 5, 6), imp(1, 3, 5, 6), imp(2, 3, 5, 6), imp(4, 5, 6),
		imp(1, 2, 7), imp(1, 3, 7), imp(2, 3, 7), imp(4, 7),
	)
	d := RecursiveDecompose(exp, exp.AllVariables(), Ablation{NoHybrid: true})
	hybrid, ok := d.(HybridNode[int])
	require.True(t, ok)
	assert.Len(t, hybrid.Children, 7)
	assert.Equal(t, exp.String(), d.Expand().String())
}
