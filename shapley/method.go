// SPDX-License-Identifier: MIT

package shapley

import (
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/IDEAL-Lab/shapley-value-simple-game/decompose"
)

// Method selects which engine computes a game's Shapley values.
type Method int

const (
	// Traditional is the exact permutation-free enumerator.
	Traditional Method = iota
	// Permutation is the Monte Carlo sampler.
	Permutation
	// IUSV is the synthesis (linear/non-linear) method.
	IUSV
	// RDSV is the recursive decomposition engine, no ablation.
	RDSV
	// RDSVNoVertical ablates dedicated And nodes.
	RDSVNoVertical
	// RDSVNoHorizontal ablates dedicated Or nodes.
	RDSVNoHorizontal
	// RDSVNoHybrid ablates genuine Hybrid composition.
	RDSVNoHybrid
)

// String renders the CLI alias used for -m/--method (trad, perm, iusv,
// rdsv, and the three ablation flavors).
func (m Method) String() string {
	switch m {
	case Traditional:
		return "trad"
	case Permutation:
		return "perm"
	case IUSV:
		return "iusv"
	case RDSV:
		return "rdsv"
	case RDSVNoVertical:
		return "rdsv-no-vertical"
	case RDSVNoHorizontal:
		return "rdsv-no-horizontal"
	case RDSVNoHybrid:
		return "rdsv-no-hybrid"
	default:
		return "unknown"
	}
}

// ParseMethod parses a CLI method alias as accepted by the -m flag.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "trad", "traditional":
		return Traditional, nil
	case "perm", "permutation":
		return Permutation, nil
	case "iusv":
		return IUSV, nil
	case "rdsv", "proposed":
		return RDSV, nil
	case "rdsv-no-vertical":
		return RDSVNoVertical, nil
	case "rdsv-no-horizontal":
		return RDSVNoHorizontal, nil
	case "rdsv-no-hybrid":
		return RDSVNoHybrid, nil
	default:
		return 0, fmt.Errorf("shapley: unknown method %q", s)
	}
}

// Options configures a Compute call. SampleSize and RNG are required for
// Permutation; PermutationMethod never seeds its own source, so that
// callers control reproducibility.
type Options struct {
	SampleSize int
	RNG        *rand.Rand
}

// Compute runs the selected method against a single game.
func Compute(game Game, method Method, opts Options) (Values, error) {
	switch method {
	case Traditional:
		return TraditionalMethod(game), nil
	case Permutation:
		if opts.SampleSize <= 0 {
			return nil, fmt.Errorf("shapley: permutation method needs a positive sample size")
		}
		if opts.RNG == nil {
			return nil, fmt.Errorf("shapley: permutation method needs an RNG")
		}
		return PermutationMethod(game, opts.SampleSize, opts.RNG), nil
	case IUSV:
		return SynthesisMethod(game), nil
	case RDSV:
		return CalSVRecursiveDecompose(game, decompose.Ablation{}), nil
	case RDSVNoVertical:
		return CalSVRecursiveDecompose(game, decompose.Ablation{NoVertical: true}), nil
	case RDSVNoHorizontal:
		return CalSVRecursiveDecompose(game, decompose.Ablation{NoHorizontal: true}), nil
	case RDSVNoHybrid:
		return CalSVRecursiveDecompose(game, decompose.Ablation{NoHybrid: true}), nil
	default:
		return nil, fmt.Errorf("shapley: unknown method %d", method)
	}
}

// ComputeAll runs method over every game concurrently and reduces the
// per-game Values into one pointwise sum, matching the dataset-wide
// aggregation the CLI performs across many row-generated games.
func ComputeAll(games []Game, method Method, opts Options) (Values, error) {
	parts := make([]Values, len(games))
	var g errgroup.Group
	for i, game := range games {
		i, game := i, game
		g.Go(func() error {
			v, err := Compute(game, method, opts)
			if err != nil {
				return err
			}
			parts[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reduceValues(parts), nil
}
