// SPDX-License-Identifier: MIT

package decompose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
)

// Ablation disables one decomposition case, forcing the algorithm to
// represent that case through a different (less efficient but still exact)
// structural path. At most one field should be set.
type Ablation struct {
	NoVertical   bool // disable dedicated And nodes
	NoHorizontal bool // disable dedicated Or nodes
	NoHybrid     bool // disable genuine (non-AND/OR) Hybrid composition
}

// RecursiveDecompose builds the modular decomposition tree of exp. exp must
// already be minimized and must be neither TRUE nor FALSE.
func RecursiveDecompose[V dnf.Variable](exp dnf.DNF[V], allVariables dnf.Implicant[V], ablation Ablation) Node[V] {
	if v, ok := singleElement(allVariables); ok {
		return VarNode[V]{Var: v}
	}
	return decomposeNode(exp, allVariables, true, ablation)
}

func singleElement[V dnf.Variable](s dnf.Implicant[V]) (V, bool) {
	if s.Len() != 1 {
		var zero V
		return zero, false
	}
	return s.Slice()[0], true
}

func decomposeNode[V dnf.Variable](exp dnf.DNF[V], allVariables dnf.Implicant[V], tryCC bool, ablation Ablation) Node[V] {
	if tryCC {
		if node, ok := decomposeUsingCC(exp, ablation); ok {
			return node
		}
	}

	modularSetList, isPrime := computeAllDisjointModularSet(exp, allVariables)

	if isPrime && len(modularSetList) > 2 {
		if ablation.NoHybrid {
			return buildFlattenedHybridNode(exp, allVariables)
		}
		return buildHybridNode(exp, modularSetList, ablation)
	}

	isAnd := false
	for _, t := range exp.Implicants() {
		if t.HasIntersection(modularSetList[0]) {
			if t.HasIntersection(modularSetList[1]) {
				isAnd = true
			}
			break
		}
	}

	// Recursing into an Or split retries CC only as a no-op (a modular part
	// of an already-Or split can never itself split further by CC), so it is
	// skipped; And and Hybrid parts still try it.
	children := buildChildren(exp, modularSetList, isAnd, ablation)

	if isAnd {
		if ablation.NoVertical {
			return buildTrivialHybrid(children, true)
		}
		return AndNode[V]{Children: children}
	}
	if ablation.NoHorizontal {
		return buildTrivialHybrid(children, false)
	}
	return OrNode[V]{Children: children}
}

func buildChildren[V dnf.Variable](exp dnf.DNF[V], modularSetList []dnf.Implicant[V], tryCC bool, ablation Ablation) []Node[V] {
	children := make([]Node[V], len(modularSetList))
	for i, s := range modularSetList {
		if v, ok := singleElement(s); ok {
			children[i] = VarNode[V]{Var: v}
			continue
		}
		sub := exp.ContractionExp(s)
		children[i] = decomposeNode(sub, s, tryCC, ablation)
	}
	return children
}

// decomposeUsingCC is the connected-component shortcut: if the implicants
// of exp split into more than one group with no shared variable, exp is
// trivially an OR of those groups and the expensive modular-closure search
// can be skipped entirely.
func decomposeUsingCC[V dnf.Variable](exp dnf.DNF[V], ablation Ablation) (Node[V], bool) {
	imps := exp.Implicants()
	if len(imps) < 2 {
		return nil, false
	}

	uf := newUnionFind(len(imps))
	for i := range imps {
		for j := i + 1; j < len(imps); j++ {
			if !uf.equiv(i, j) && imps[i].HasIntersection(imps[j]) {
				uf.union(i, j)
			}
		}
	}
	labels := uf.labeling()
	groups := map[int][]int{}
	for i, l := range labels {
		groups[l] = append(groups[l], i)
	}
	if len(groups) == 1 {
		return nil, false
	}

	groupKeys := make([]int, 0, len(groups))
	for k := range groups {
		groupKeys = append(groupKeys, k)
	}
	sortInts(groupKeys)

	children := make([]Node[V], 0, len(groups))
	for _, k := range groupKeys {
		idxs := groups[k]
		if len(idxs) == 1 && imps[idxs[0]].Len() == 1 {
			children = append(children, VarNode[V]{Var: imps[idxs[0]].Slice()[0]})
			continue
		}

		members := make([]dnf.Implicant[V], len(idxs))
		for i, idx := range idxs {
			members[i] = imps[idx]
		}
		sub := dnf.NewDNF(members...)
		children = append(children, decomposeNode(sub, sub.AllVariables(), false, ablation))
	}

	if ablation.NoHorizontal {
		return buildTrivialHybrid(children, false), true
	}
	return OrNode[V]{Children: children}, true
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// buildTrivialHybrid represents an n-ary AND (isAnd) or OR (!isAnd) of
// children as a degenerate HybridNode: a single implicant {0..n-1} for
// AND, or n singleton implicants for OR. Used by the NoVertical and
// NoHorizontal ablations.
func buildTrivialHybrid[V dnf.Variable](children []Node[V], isAnd bool) Node[V] {
	n := len(children)
	var hybridExp dnf.DNF[int]
	if isAnd {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		hybridExp = dnf.NewDNF(dnf.NewImplicant(idx...))
	} else {
		terms := make([]dnf.Implicant[int], n)
		for i := range terms {
			terms[i] = dnf.NewImplicant(i)
		}
		hybridExp = dnf.NewDNF(terms...)
	}
	return HybridNode[V]{HybridExp: hybridExp, Children: children}
}

// buildFlattenedHybridNode implements the NoHybrid ablation: instead of
// grouping allVariables into modular parts, every variable becomes its own
// child and hybridExp is exp itself remapped onto positional indices.
func buildFlattenedHybridNode[V dnf.Variable](exp dnf.DNF[V], allVariables dnf.Implicant[V]) Node[V] {
	vars := allVariables.Slice()
	index := make(map[V]int, len(vars))
	for i, v := range vars {
		index[v] = i
	}

	hybridExp := dnf.MapDNFVariable(exp, func(v V) int { return index[v] })
	children := make([]Node[V], len(vars))
	for i, v := range vars {
		children[i] = VarNode[V]{Var: v}
	}
	return HybridNode[V]{HybridExp: hybridExp, Children: children}
}

// varOrSub tags either an original variable or a synthetic sub-expression
// index, so the Eq.19 substitution below can live in a single DNF algebra
// workspace. It must have an ordered underlying type to satisfy
// dnf.Variable; only equality/membership matter for this substitution, so
// the particular string encoding is otherwise unobservable.
type varOrSub string

const subPrefix = "\x01sub:"

func markVar[V dnf.Variable](v V) varOrSub {
	return varOrSub("\x00var:" + fmt.Sprintf("%v", v))
}

func markSub(i int) varOrSub {
	return varOrSub(subPrefix + strconv.Itoa(i))
}

// buildHybridNode builds a genuine Hybrid composition: it computes
// hybridExp via the substitution of Eq.19 (pp.21) and recursively
// decomposes each modular part.
func buildHybridNode[V dnf.Variable](exp dnf.DNF[V], modularSetList []dnf.Implicant[V], ablation Ablation) Node[V] {
	exp2 := dnf.MapDNFVariable(exp, markVar[V])

	for i, set := range modularSetList {
		marked := dnf.MapVariable(set, markVar[V])
		single := dnf.SingleVariableExp(markSub(i))
		partial := exp2.PartialExp(marked).PartialEval(marked, true)
		exp3 := single.And(partial).Or(exp2.PartialExpComplement(marked))
		exp2 = exp3
	}

	hybridExp := dnf.MapDNFVariable(exp2, func(x varOrSub) int {
		s := string(x)
		if !strings.HasPrefix(s, subPrefix) {
			panic("decompose: hybrid substitution left a bare variable — invariant violated")
		}
		n, err := strconv.Atoi(s[len(subPrefix):])
		if err != nil {
			panic("decompose: malformed sub-expression marker — invariant violated")
		}
		return n
	})

	children := buildChildren(exp, modularSetList, true, ablation)
	return HybridNode[V]{HybridExp: hybridExp, Children: children}
}
