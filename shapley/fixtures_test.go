// SPDX-License-Identifier: MIT

package shapley_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
	"github.com/IDEAL-Lab/shapley-value-simple-game/owner"
	"github.com/IDEAL-Lab/shapley-value-simple-game/shapley"
)

func imp(ids ...owner.ID) dnf.Implicant[owner.ID] { return dnf.NewImplicant(ids...) }

// fixtureGame is 1 2 4 + 1 2 5 + 2 3 4 + 2 3 5 + 4 5, the shared
// cross-method agreement fixture.
func fixtureGame() shapley.Game {
	exp := dnf.NewDNF(
		imp(1, 2, 4),
		imp(1, 2, 5),
		imp(2, 3, 4),
		imp(2, 3, 5),
		imp(4, 5),
	)
	return shapley.NewGame(exp)
}

func fixtureValues() shapley.Values {
	return shapley.Values{
		1: 0.06666666666,
		2: 0.23333333333,
		3: 0.06666666666,
		4: 0.31666666666,
		5: 0.31666666666,
	}
}

func assertValuesEqual(t *testing.T, want, got shapley.Values) {
	t.Helper()
	assert.Equal(t, len(want), len(got))
	for id, w := range want {
		assert.InDelta(t, w, got[id], 1e-5, "owner %d", id)
	}
}

func assertValuesSumToOne(t *testing.T, got shapley.Values) {
	t.Helper()
	sum := 0.0
	for _, v := range got {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}
