// SPDX-License-Identifier: MIT

package dataset

import (
	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
	"github.com/IDEAL-Lab/shapley-value-simple-game/owner"
	"github.com/IDEAL-Lab/shapley-value-simple-game/shapley"
)

// GamesFromDataSet turns every row a join plan produces into a
// shapley.Game: the cartesian product of the contributing tables' owner
// sets for that row becomes one implicant per combination. Rows with no
// owner metadata contribute no game.
func GamesFromDataSet(reg *Registry, ds DataSet) ([]shapley.Game, error) {
	plan, err := reg.Lookup(ds.Name)
	if err != nil {
		return nil, err
	}
	rows, err := Join(ds, plan)
	if err != nil {
		return nil, err
	}

	games := make([]shapley.Game, 0, len(rows))
	for _, row := range rows {
		ownerSets := make([]owner.Set, 0, len(row))
		for tableName, rid := range row {
			t := ds.Tables[tableName]
			if s, ok := t.OwnerMap[rid]; ok && !s.IsEmpty() {
				ownerSets = append(ownerSets, s)
			}
		}
		if len(ownerSets) == 0 {
			continue
		}

		implicants := cartesianImplicants(ownerSets)
		game := shapley.NewGame(dnf.NewDNF(implicants...))
		games = append(games, game)
	}
	return games, nil
}

// cartesianImplicants builds one implicant per element of the cartesian
// product of sets.
func cartesianImplicants(sets []owner.Set) []dnf.Implicant[owner.ID] {
	combos := [][]owner.ID{{}}
	for _, s := range sets {
		ids := s.Slice()
		next := make([][]owner.ID, 0, len(combos)*len(ids))
		for _, combo := range combos {
			for _, id := range ids {
				extended := make([]owner.ID, len(combo)+1)
				copy(extended, combo)
				extended[len(combo)] = id
				next = append(next, extended)
			}
		}
		combos = next
	}

	out := make([]dnf.Implicant[owner.ID], len(combos))
	for i, combo := range combos {
		out[i] = dnf.NewImplicant(combo...)
	}
	return out
}
