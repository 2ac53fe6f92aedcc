// SPDX-License-Identifier: MIT

package shapley_test

import (
	"testing"

	"github.com/IDEAL-Lab/shapley-value-simple-game/shapley"
)

func TestTraditionalMethodMatchesFixture(t *testing.T) {
	got := shapley.TraditionalMethod(fixtureGame())
	assertValuesEqual(t, fixtureValues(), got)
}
