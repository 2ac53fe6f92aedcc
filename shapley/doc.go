// SPDX-License-Identifier: MIT

// Package shapley computes Shapley values for boolean-DNF cooperative games
// over data owners. A Game pairs a minimized dnf.DNF[owner.ID] (the
// characteristic function: a coalition wins iff it satisfies the DNF) with
// its owner set. Four independent engines compute the same value under the
// same mathematical contract:
//
//   - Traditional: an exact permutation-free enumerator, used as a
//     reference oracle for small owner sets.
//   - Permutation: a Monte Carlo sampler over random orderings, with a
//     memoized characteristic-function cache shared across samples.
//   - Synthesis (IUSV): a closed-form linear shortcut when at most one
//     implicant has size >1, else a non-linear router between a
//     subset-lookup method and a set-union inclusion-exclusion method.
//   - Recursive decomposition (RDSV): walks the modular decomposition tree
//     of the DNF, carrying a gamma IECoeffs map down to each leaf variable.
//     Three ablation flavors cross-validate the decomposition against
//     itself: two fold And or Or nodes into degenerate Hybrid nodes, and
//     the third flattens genuine Hybrid nodes to one child per variable.
package shapley
