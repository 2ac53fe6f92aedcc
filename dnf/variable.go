// SPDX-License-Identifier: MIT

// Package dnf implements a boolean algebra over expressions in disjunctive
// normal form (a disjunction of conjunctions of variables), together with
// the partial-evaluation and contraction operators used by the modular
// decomposition engine in package decompose.
//
// A DNF expression with no implicants is FALSE; an expression containing
// the empty implicant is TRUE. Every operation on Implicant and DNF returns
// a new value rather than mutating its receiver, mirroring the rest of this
// module's functional style; the one exception is DNF.Minimize, which
// replaces its receiver's set of implicants in place.
package dnf

import "cmp"

// Variable is the constraint satisfied by anything that can appear in an
// Implicant or DNF: a totally ordered, comparable identifier with no
// semantics beyond equality and ordering.
type Variable interface {
	cmp.Ordered
}
