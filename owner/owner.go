// SPDX-License-Identifier: MIT

// Package owner defines the identifier type for data owners participating
// in a Shapley-value computation, and Set, a lightweight named set of
// owners used by the shapley and dataset packages.
//
// Set is intentionally a thin wrapper around dnf.Implicant[ID]: an
// owner set and a DNF conjunction are the same underlying structure (a
// finite set of totally-ordered identifiers), so Set borrows the
// Implicant algebra instead of duplicating it.
package owner

import (
	"fmt"

	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
)

// ID identifies a single data owner. It carries no semantics beyond
// equality and ordering.
type ID uint32

// Set is a finite, ordered collection of owner IDs.
type Set struct {
	impl dnf.Implicant[ID]
}

// NewSet builds a Set containing the given ids, deduplicating as needed.
func NewSet(ids ...ID) Set {
	return Set{impl: dnf.NewImplicant(ids...)}
}

// FromImplicant wraps an existing dnf.Implicant[ID] as a Set. Owner sets and
// DNF conjunctions share a representation, so this is a relabeling, not a
// copy.
func FromImplicant(impl dnf.Implicant[ID]) Set { return Set{impl: impl} }

// Len reports the number of distinct owners in the set.
func (s Set) Len() int { return s.impl.Len() }

// Contains reports whether id is a member of s.
func (s Set) Contains(id ID) bool { return s.impl.Contains(id) }

// Add returns a new Set with id inserted.
func (s Set) Add(id ID) Set { return Set{impl: s.impl.With(id)} }

// Union returns a new Set containing the owners of both s and other.
func (s Set) Union(other Set) Set { return Set{impl: s.impl.Union(other.impl)} }

// Slice returns the owners of s as a sorted slice. The returned slice is a
// copy and may be mutated freely by the caller.
func (s Set) Slice() []ID { return s.impl.Slice() }

// IsEmpty reports whether s has no members.
func (s Set) IsEmpty() bool { return s.impl.Len() == 0 }

// String renders s as a space-separated, ascending list of owner ids.
func (s Set) String() string {
	ids := s.Slice()
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%d", id)
	}
	return out
}

// Implicant exposes the underlying dnf.Implicant[ID], for callers that
// need to treat an owner set as a DNF conjunction (e.g. when building a
// Game's characteristic function from per-row owner assignments).
func (s Set) Implicant() dnf.Implicant[ID] { return s.impl }
