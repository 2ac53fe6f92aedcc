// SPDX-License-Identifier: MIT

package iecoeffs

import "math/bits"

// ProductTree is a balanced binary tree over n leaves that answers, for
// every leaf i, the combination of all OTHER leaves ("leave-one-out"
// products) in O(n log n) total work, plus optionally the combination of
// all leaves (the root).
type ProductTree[T any] struct {
	layers   [][]T
	depth    int
	inputLen int
}

// NewProductTree builds the tree bottom-up: layers[0] is the input, and
// each subsequent layer pairs up adjacent entries of the previous one with
// productOp, carrying an odd leftover entry through unchanged. When
// compRoot is false the tree stops one layer short of the root (callers
// that only need leave-one-out products, not the combination of
// everything, save that last combination step).
func NewProductTree[T any](input []T, productOp func(a, b T) T, compRoot bool) ProductTree[T] {
	n := len(input)
	depth := log2Ceil(n)
	if compRoot {
		depth++
	}

	layers := make([][]T, 0, depth)
	layers = append(layers, input)
	for i := 0; i < depth-1; i++ {
		prev := layers[i]
		next := make([]T, 0, (len(prev)+1)/2)
		for j := 0; j+1 < len(prev); j += 2 {
			next = append(next, productOp(prev[j], prev[j+1]))
		}
		if len(prev)%2 == 1 {
			next = append(next, prev[len(prev)-1])
		}
		layers = append(layers, next)
	}

	return ProductTree[T]{layers: layers, depth: depth, inputLen: n}
}

// log2Ceil returns ceil(log2(n)), the leaf depth of a balanced tree over n
// entries.
func log2Ceil(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Root returns the combination of every leaf. NewProductTree must have been
// called with compRoot=true.
func (t ProductTree[T]) Root() T {
	last := t.layers[len(t.layers)-1]
	if len(last) != 1 {
		panic("iecoeffs: ProductTree.Root called without compRoot")
	}
	return last[0]
}

// AllProducts returns, for every leaf i in [0, n), the combination of all
// leaves except i: it walks from the layer nearest the root down to the
// leaves along the bit pattern of i (most significant bit first),
// combining the sibling subtree's precomputed value at each depth into an
// accumulator seeded from identityOp.
func (t ProductTree[T]) AllProducts(identityOp func() T, productOp func(a, b T) T) []T {
	out := make([]T, t.inputLen)
	for i := 0; i < t.inputLen; i++ {
		bitsOf := make([]int, t.depth)
		x := i
		for d := 0; d < t.depth; d++ {
			bitsOf[d] = x % 2
			x >>= 1
		}

		v := identityOp()
		index := 0
		for depth := t.depth - 1; depth >= 0; depth-- {
			bit := bitsOf[depth]
			index = 2*index + bit
			neighbor := index + 1
			if bit != 0 {
				neighbor = index - 1
			}
			layer := t.layers[depth]
			if neighbor < len(layer) {
				v = productOp(v, layer[neighbor])
			}
		}
		out[i] = v
	}
	return out
}
