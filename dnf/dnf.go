// SPDX-License-Identifier: MIT

package dnf

import (
	"sort"
	"strings"
)

// DNF is a boolean expression in disjunctive normal form: a disjunction of
// Implicants. A DNF with no implicants is FALSE; one containing the empty
// implicant is TRUE.
type DNF[V Variable] struct {
	terms map[string]Implicant[V]
}

// NewDNF builds a DNF containing the given implicants, deduplicating as
// needed. The result is minimized before it is returned.
func NewDNF[V Variable](implicants ...Implicant[V]) DNF[V] {
	d := DNF[V]{terms: make(map[string]Implicant[V], len(implicants))}
	for _, im := range implicants {
		d.terms[im.Key()] = im
	}
	d.Minimize()
	return d
}

// TrueExp returns the DNF constant TRUE (a single empty implicant).
func TrueExp[V Variable]() DNF[V] {
	empty := Implicant[V]{}
	return DNF[V]{terms: map[string]Implicant[V]{empty.Key(): empty}}
}

// FalseExp returns the DNF constant FALSE (no implicants).
func FalseExp[V Variable]() DNF[V] {
	return DNF[V]{terms: map[string]Implicant[V]{}}
}

// SingleVariableExp returns the DNF consisting of exactly one implicant
// containing var.
func SingleVariableExp[V Variable](v V) DNF[V] {
	return NewDNF(NewImplicant(v))
}

// Len reports the number of implicants in d.
func (d DNF[V]) Len() int { return len(d.terms) }

// IsTrue reports whether d is the constant TRUE.
func (d DNF[V]) IsTrue() bool {
	_, ok := d.terms[(Implicant[V]{}).Key()]
	return ok
}

// IsFalse reports whether d is the constant FALSE.
func (d DNF[V]) IsFalse() bool { return len(d.terms) == 0 }

// Implicants returns d's implicants ordered by size ascending, then
// lexicographically - the canonical order used by String and Minimize.
func (d DNF[V]) Implicants() []Implicant[V] {
	out := make([]Implicant[V], 0, len(d.terms))
	for _, im := range d.terms {
		out = append(out, im)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// AllVariables returns the set of every variable appearing in any
// implicant of d.
func (d DNF[V]) AllVariables() Implicant[V] {
	out := Implicant[V]{vars: make(map[V]struct{})}
	for _, im := range d.terms {
		for v := range im.vars {
			out.vars[v] = struct{}{}
		}
	}
	return out
}

// Minimize removes every implicant that is a superset of some other
// implicant in d (i.e. it is absorbed / logically redundant).
func (d *DNF[V]) Minimize() {
	terms := d.Implicants()
	skip := make([]bool, len(terms))
	for i, ti := range terms {
		if skip[i] {
			continue
		}
		for j := i + 1; j < len(terms); j++ {
			if skip[j] {
				continue
			}
			if ti.IsSubsetOf(terms[j]) {
				skip[j] = true
			}
		}
	}

	out := make(map[string]Implicant[V], len(terms))
	for i, t := range terms {
		if !skip[i] {
			out[t.Key()] = t
		}
	}
	d.terms = out
}

// Eval evaluates d against inputSet: true iff some implicant evaluates
// true.
func (d DNF[V]) Eval(inputSet Implicant[V], inputIsTrue bool) bool {
	for _, t := range d.terms {
		if t.Eval(inputSet, inputIsTrue) {
			return true
		}
	}
	return false
}

// PartialEval partially evaluates every implicant of d with the variables
// in inputSet fixed to inputIsTrue, dropping implicants that vanish, and
// minimizes the result.
func (d DNF[V]) PartialEval(inputSet Implicant[V], inputIsTrue bool) DNF[V] {
	out := DNF[V]{terms: make(map[string]Implicant[V])}
	for _, t := range d.terms {
		if r, ok := t.PartialEval(inputSet, inputIsTrue); ok {
			out.terms[r.Key()] = r
		}
	}
	out.Minimize()
	return out
}

// PartialEvalComplement partially evaluates every implicant of d with the
// variables NOT in inputSet fixed to complementIsTrue, dropping implicants
// that vanish, and minimizes the result.
func (d DNF[V]) PartialEvalComplement(inputSet Implicant[V], complementIsTrue bool) DNF[V] {
	out := DNF[V]{terms: make(map[string]Implicant[V])}
	for _, t := range d.terms {
		if r, ok := t.PartialEvalComplement(inputSet, complementIsTrue); ok {
			out.terms[r.Key()] = r
		}
	}
	out.Minimize()
	return out
}

// PartialExp returns the implicants of d that intersect inputSet (f^a in
// the modular decomposition literature's Definition 7). The result is not
// re-minimized: it is a sub-selection of d's own implicants.
func (d DNF[V]) PartialExp(inputSet Implicant[V]) DNF[V] {
	out := DNF[V]{terms: make(map[string]Implicant[V])}
	for k, t := range d.terms {
		if t.HasIntersection(inputSet) {
			out.terms[k] = t
		}
	}
	return out
}

// PartialExpComplement returns the implicants of d that do NOT intersect
// inputSet. Equivalent to PartialEval(inputSet, false) without dropping or
// rewriting any term.
func (d DNF[V]) PartialExpComplement(inputSet Implicant[V]) DNF[V] {
	out := DNF[V]{terms: make(map[string]Implicant[V])}
	for k, t := range d.terms {
		if !t.HasIntersection(inputSet) {
			out.terms[k] = t
		}
	}
	return out
}

// ContractionExp computes f_a = f^a(complement(a) = 1), i.e. the
// contraction of d onto inputSet (Definition 8).
func (d DNF[V]) ContractionExp(inputSet Implicant[V]) DNF[V] {
	partial := d.PartialExp(inputSet)
	return partial.PartialEvalComplement(inputSet, true)
}

// And returns the conjunction of d and other: every pairwise union of an
// implicant from d with an implicant from other, minimized.
func (d DNF[V]) And(other DNF[V]) DNF[V] {
	out := DNF[V]{terms: make(map[string]Implicant[V], d.Len()*other.Len())}
	for _, a := range d.terms {
		for _, b := range other.terms {
			u := a.Union(b)
			out.terms[u.Key()] = u
		}
	}
	out.Minimize()
	return out
}

// Or returns the disjunction of d and other, minimized.
func (d DNF[V]) Or(other DNF[V]) DNF[V] {
	out := DNF[V]{terms: make(map[string]Implicant[V], d.Len()+other.Len())}
	for k, t := range d.terms {
		out.terms[k] = t
	}
	for k, t := range other.terms {
		out.terms[k] = t
	}
	out.Minimize()
	return out
}

// String renders d as its implicants joined by " + ", in canonical order,
// or "FALSE" if d has no implicants.
func (d DNF[V]) String() string {
	terms := d.Implicants()
	if len(terms) == 0 {
		return "FALSE"
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

// MapDNFVariable applies f to every variable of every implicant of d.
func MapDNFVariable[V Variable, U Variable](d DNF[V], f func(V) U) DNF[U] {
	out := DNF[U]{terms: make(map[string]Implicant[U], d.Len())}
	for _, t := range d.terms {
		mapped := MapVariable(t, f)
		out.terms[mapped.Key()] = mapped
	}
	return out
}
