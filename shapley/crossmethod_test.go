// SPDX-License-Identifier: MIT

package shapley_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/IDEAL-Lab/shapley-value-simple-game/decompose"
	"github.com/IDEAL-Lab/shapley-value-simple-game/dnf"
	"github.com/IDEAL-Lab/shapley-value-simple-game/owner"
	"github.com/IDEAL-Lab/shapley-value-simple-game/shapley"
)

// scenarioGames are the end-to-end fixtures every exact engine must agree
// on, with their known closed-form values.
var scenarioGames = []struct {
	name string
	exp  []dnf.Implicant[owner.ID]
	want shapley.Values
}{
	{
		name: "single conjunction",
		exp:  []dnf.Implicant[owner.ID]{imp(1, 2, 3)},
		want: shapley.Values{1: 1.0 / 3, 2: 1.0 / 3, 3: 1.0 / 3},
	},
	{
		name: "two overlapping conjunctions",
		exp:  []dnf.Implicant[owner.ID]{imp(1, 2, 3), imp(1, 2, 4)},
		want: shapley.Values{1: 5.0 / 12, 2: 5.0 / 12, 3: 1.0 / 12, 4: 1.0 / 12},
	},
	{
		name: "disjunction of singletons",
		exp:  []dnf.Implicant[owner.ID]{imp(1), imp(2), imp(3)},
		want: shapley.Values{1: 1.0 / 3, 2: 1.0 / 3, 3: 1.0 / 3},
	},
	{
		name: "replaceable owners behind a shared pair",
		exp:  []dnf.Implicant[owner.ID]{imp(1, 4, 5), imp(2, 4, 5), imp(3, 4, 5)},
		want: shapley.Values{1: 1.0 / 30, 2: 1.0 / 30, 3: 1.0 / 30, 4: 9.0 / 20, 5: 9.0 / 20},
	},
	{
		name: "hybrid composition",
		exp: []dnf.Implicant[owner.ID]{
			imp(1, 2, 4), imp(1, 2, 5), imp(2, 3, 4), imp(2, 3, 5), imp(4, 5),
		},
		want: shapley.Values{1: 0.06666666666, 2: 0.23333333333, 3: 0.06666666666, 4: 0.31666666666, 5: 0.31666666666},
	},
	{
		name: "dominant singleton next to deep conjunctions",
		exp:  []dnf.Implicant[owner.ID]{imp(1, 2, 3, 4), imp(1, 2, 3, 5), imp(6)},
		want: shapley.Values{1: 0.06666666666, 2: 0.06666666666, 3: 0.06666666666, 4: 0.01666666666, 5: 0.01666666666, 6: 0.76666666666},
	},
	{
		name: "nested recursion",
		exp:  []dnf.Implicant[owner.ID]{imp(1, 3, 6, 8), imp(3, 5, 6, 8), imp(3, 4, 6, 8, 9)},
		want: shapley.Values{
			3: 0.3095238095238095, 6: 0.3095238095238095, 8: 0.3095238095238095,
			1: 0.026190476190476153, 5: 0.026190476190476153,
			4: 0.009523809523809545, 9: 0.009523809523809545,
		},
	},
}

func TestExactMethodsMatchScenarioValues(t *testing.T) {
	engines := map[string]func(shapley.Game) shapley.Values{
		"traditional": shapley.TraditionalMethod,
		"iusv":        shapley.SynthesisMethod,
		"rdsv": func(g shapley.Game) shapley.Values {
			return shapley.CalSVRecursiveDecompose(g, decompose.Ablation{})
		},
		"rdsv-no-vertical": func(g shapley.Game) shapley.Values {
			return shapley.CalSVRecursiveDecompose(g, decompose.Ablation{NoVertical: true})
		},
		"rdsv-no-horizontal": func(g shapley.Game) shapley.Values {
			return shapley.CalSVRecursiveDecompose(g, decompose.Ablation{NoHorizontal: true})
		},
		"rdsv-no-hybrid": func(g shapley.Game) shapley.Values {
			return shapley.CalSVRecursiveDecompose(g, decompose.Ablation{NoHybrid: true})
		},
	}

	for _, sc := range scenarioGames {
		game := shapley.NewGame(dnf.NewDNF(sc.exp...))
		for name, engine := range engines {
			t.Run(sc.name+"/"+name, func(t *testing.T) {
				got := engine(game)
				assertValuesEqual(t, sc.want, got)
				assertValuesSumToOne(t, got)
			})
		}
	}
}

// randomGame draws a minimized DNF over up to maxVars owners. Implicants are
// non-empty, so the game is always satisfiable by the full owner set.
func randomGame(rng *rand.Rand, maxVars int) shapley.Game {
	nVars := 2 + rng.Intn(maxVars-1)
	nImps := 1 + rng.Intn(4)

	imps := make([]dnf.Implicant[owner.ID], nImps)
	for i := range imps {
		size := 1 + rng.Intn(nVars)
		ids := make([]owner.ID, size)
		for j := range ids {
			ids[j] = owner.ID(1 + rng.Intn(nVars))
		}
		imps[i] = dnf.NewImplicant(ids...)
	}
	return shapley.NewGame(dnf.NewDNF(imps...))
}

func TestRandomGamesCrossMethodAgreement(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 30; i++ {
		game := randomGame(rng, 7)
		t.Run(fmt.Sprintf("case %d: %v", i, game.DNF), func(t *testing.T) {
			want := shapley.TraditionalMethod(game)
			assertValuesSumToOne(t, want)
			assertValuesEqual(t, want, shapley.SynthesisMethod(game))
			assertValuesEqual(t, want, shapley.CalSVRecursiveDecompose(game, decompose.Ablation{}))
			assertValuesEqual(t, want, shapley.CalSVRecursiveDecompose(game, decompose.Ablation{NoHybrid: true}))
		})
	}
}

func TestInterchangeableOwnersGetEqualValues(t *testing.T) {
	// Owners 4 and 5 are symmetric in the fixture: swapping them maps the
	// implicant set onto itself.
	got := shapley.CalSVRecursiveDecompose(fixtureGame(), decompose.Ablation{})
	if diff := got[4] - got[5]; diff > 1e-5 || diff < -1e-5 {
		t.Fatalf("symmetric owners diverged: %v vs %v", got[4], got[5])
	}
}
