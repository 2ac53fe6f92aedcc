// SPDX-License-Identifier: MIT

// Package iecoeffs implements the inclusion-exclusion coefficient algebra
// that the recursive Shapley engine (package shapley) carries down a
// modular decomposition tree.
//
// An IECoeffs value is a sparse polynomial in subset cardinality: it maps a
// positive integer k (how many variables of some hidden subset are present)
// to an integer coefficient. Two composition operators lift this polynomial
// across AND (vertical_op, cardinality convolution) and OR (horizontal_op,
// inclusion-exclusion) of independent sub-games, and ToSV folds a finished
// polynomial down to the scalar Shapley contribution of a single variable.
//
// HybridCoeffs extends the same algebra to a "hybrid" decomposition node,
// whose sub-expressions interact in neither a pure AND nor a pure OR
// pattern: it precomputes, once per node, the vertical product of every
// non-empty subset of the node's sub-expressions (via UnionCombination), so
// that the recursive engine can later look up any subset's combined
// coefficient in O(1). ProductTree supplies the companion "leave-one-out"
// products AND/OR nodes need: for n children, the product of all but one,
// for every one, in O(n log n) total work.
package iecoeffs
