// SPDX-License-Identifier: MIT

package shapley

import (
	"github.com/IDEAL-Lab/shapley-value-simple-game/decompose"
	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
	"github.com/IDEAL-Lab/shapley-value-simple-game/iecoeffs"
	"github.com/IDEAL-Lab/shapley-value-simple-game/owner"
)

var varCoeffs = iecoeffs.New(map[int]int64{1: 1})

// csNode mirrors a decompose.Node, precomputing each node's coeffs() at
// construction so cal_sv never repeats a cardinality convolution it has
// already paid for. Unlike decompose.Node, csNode is shapley-specific: it
// carries the product/hybrid tables the recursive engine needs and nothing
// else.
type nodeKind int

const (
	kindVar nodeKind = iota
	kindAndOr
	kindHybrid
)

type csNode struct {
	kind  nodeKind
	owner owner.ID

	// And/Or
	children []csNode
	products []iecoeffs.IECoeffs
	isAnd    bool

	// Hybrid
	hybridCoeffs iecoeffs.HybridCoeffs
	hybridExp    dnf.DNF[int]

	coeffs iecoeffs.IECoeffs // unused for Var, whose coeffs are the constant varCoeffs
}

func buildCSNode(n decompose.Node[owner.ID], isRoot bool) csNode {
	switch node := n.(type) {
	case decompose.VarNode[owner.ID]:
		return csNode{kind: kindVar, owner: node.Var}

	case decompose.AndNode[owner.ID]:
		return buildAndOr(node.Children, true, isRoot)

	case decompose.OrNode[owner.ID]:
		return buildAndOr(node.Children, false, isRoot)

	case decompose.HybridNode[owner.ID]:
		children := make([]csNode, len(node.Children))
		childCoeffs := make([]iecoeffs.IECoeffs, len(node.Children))
		for i, c := range node.Children {
			children[i] = buildCSNode(c, false)
			childCoeffs[i] = children[i].nodeCoeffs()
		}
		hc := iecoeffs.NewHybridCoeffs(childCoeffs)
		out := csNode{kind: kindHybrid, hybridCoeffs: hc, hybridExp: node.HybridExp, children: children}
		if !isRoot {
			out.coeffs = hc.ExpCoeffs(node.HybridExp)
		}
		return out

	default:
		panic("shapley: unknown decomposition node kind")
	}
}

func buildAndOr(rawChildren []decompose.Node[owner.ID], isAnd, isRoot bool) csNode {
	children := make([]csNode, len(rawChildren))
	childCoeffs := make([]iecoeffs.IECoeffs, len(rawChildren))
	for i, c := range rawChildren {
		children[i] = buildCSNode(c, false)
		childCoeffs[i] = children[i].nodeCoeffs()
	}

	op := iecoeffs.VerticalOp
	identity := iecoeffs.VerticalIdentity
	if !isAnd {
		op = iecoeffs.HorizontalOp
		identity = iecoeffs.HorizontalIdentity
	}

	pt := iecoeffs.NewProductTree(childCoeffs, op, !isRoot)
	products := pt.AllProducts(identity, op)

	out := csNode{kind: kindAndOr, isAnd: isAnd, children: children, products: products}
	if !isRoot {
		out.coeffs = pt.Root()
	}
	return out
}

func (n csNode) nodeCoeffs() iecoeffs.IECoeffs {
	if n.kind == kindVar {
		return varCoeffs
	}
	return n.coeffs
}

// calSV is the recursive engine: given the gamma IECoeffs flowing down
// from the parent, it returns this subtree's per-owner contributions.
func (n csNode) calSV(gamma iecoeffs.IECoeffs) Values {
	switch n.kind {
	case kindVar:
		return Values{n.owner: varCoeffs.Mul(gamma).ToSV()}
	case kindHybrid:
		return n.calSVHybrid(gamma)
	default:
		return n.calSVAndOr(gamma)
	}
}

func (n csNode) calSVAndOr(gamma iecoeffs.IECoeffs) Values {
	ans := Values{}
	varChildSV, haveVarChild := 0.0, false

	for i, c := range n.children {
		var nextGamma iecoeffs.IECoeffs
		if n.isAnd {
			nextGamma = gamma.Mul(n.products[i])
		} else {
			nextGamma = gamma.Sub(gamma.Mul(n.products[i]))
		}

		if c.kind == kindVar {
			if !haveVarChild {
				varChildSV = varCoeffs.Mul(nextGamma).ToSV()
				haveVarChild = true
			}
			ans[c.owner] = varChildSV
			continue
		}

		ans.merge(c.calSV(nextGamma))
	}
	return ans
}

func (n csNode) calSVHybrid(gamma iecoeffs.IECoeffs) Values {
	ans := Values{}
	arity := n.hybridCoeffs.InputLen()

	for i, c := range n.children {
		single := dnf.NewImplicant(i)
		expP2 := n.hybridExp.PartialEval(single, true)
		expP3 := n.hybridExp.PartialExpComplement(single)

		unionsP3 := iecoeffs.ExpToInputUnions(expP3, arity)

		var nextGamma iecoeffs.IECoeffs
		if expP2.IsTrue() {
			// {i} alone is an implicant: child i is pivotal exactly when expP3
			// is false, which carries gamma the same way an Or node does.
			nextGamma = gamma.Sub(gamma.Mul(n.hybridCoeffs.ExpUnionsCoeffs(unionsP3)))
		} else {
			unionsP2 := iecoeffs.ExpToInputUnions(expP2, arity)
			mapP2 := n.hybridCoeffs.ExpUnionsCoeffs(unionsP2)
			mapPX := n.hybridCoeffs.ExpUnionsInteraction(unionsP2, unionsP3)
			nextGamma = gamma.Mul(mapP2.Sub(mapPX))
		}
		ans.merge(c.calSV(nextGamma))
	}
	return ans
}

// CalSVRecursiveDecompose computes Shapley values by modular
// decomposition, optionally ablating one decomposition case. An Ablation
// with every field false runs the full RDSV engine.
func CalSVRecursiveDecompose(game Game, ablation decompose.Ablation) Values {
	allVars := game.OwnerSet.Implicant()
	tree := decompose.RecursiveDecompose(game.DNF, allVars, ablation)
	root := buildCSNode(tree, true)
	return root.calSV(iecoeffs.VerticalIdentity())
}
