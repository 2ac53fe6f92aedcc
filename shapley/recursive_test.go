// SPDX-License-Identifier: MIT

package shapley_test

import (
	"testing"

	"github.com/IDEAL-Lab/shapley-value-simple-game/decompose"
	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
	"github.com/IDEAL-Lab/shapley-value-simple-game/shapley"
)

func TestRecursiveDecomposeMatchesFixture(t *testing.T) {
	got := shapley.CalSVRecursiveDecompose(fixtureGame(), decompose.Ablation{})
	assertValuesEqual(t, fixtureValues(), got)
}

func TestRecursiveDecomposeAblationsMatchFixture(t *testing.T) {
	ablations := []decompose.Ablation{
		{NoVertical: true},
		{NoHorizontal: true},
		{NoHybrid: true},
	}
	for _, ab := range ablations {
		got := shapley.CalSVRecursiveDecompose(fixtureGame(), ab)
		assertValuesEqual(t, fixtureValues(), got)
	}
}

func TestRecursiveDecomposeAgreesWithTraditionalOnAndGame(t *testing.T) {
	exp := dnf.NewDNF(imp(1, 2, 3))
	game := shapley.NewGame(exp)
	want := shapley.TraditionalMethod(game)
	got := shapley.CalSVRecursiveDecompose(game, decompose.Ablation{})
	assertValuesEqual(t, want, got)
}

func TestRecursiveDecomposeAgreesWithTraditionalOnOrGame(t *testing.T) {
	exp := dnf.NewDNF(imp(1), imp(2), imp(3))
	game := shapley.NewGame(exp)
	want := shapley.TraditionalMethod(game)
	got := shapley.CalSVRecursiveDecompose(game, decompose.Ablation{})
	assertValuesEqual(t, want, got)
}
