// SPDX-License-Identifier: MIT

package iecoeffs

// IECoeffs is a sparse mapping from a subset cardinality k to an integer
// coefficient. k is >= 1 except for the key 0 of VerticalIdentity, which
// Add and Sub carry into their results. The zero value is the empty map, which is both
// HorizontalIdentity and the additive identity.
type IECoeffs map[int]int64

// New builds an IECoeffs from the given entries. Keys equal to 0 are
// rejected: a key-0 term reaching the algebra is a programmer error.
func New(entries map[int]int64) IECoeffs {
	out := make(IECoeffs, len(entries))
	for k, v := range entries {
		if k == 0 {
			panic("iecoeffs: key 0 is not a valid subset cardinality")
		}
		out[k] = v
	}
	return out
}

func (c IECoeffs) clone() IECoeffs {
	out := make(IECoeffs, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Add returns the coordinate-wise sum of c and other.
func (c IECoeffs) Add(other IECoeffs) IECoeffs {
	small, big := c, other
	if len(big) < len(small) {
		small, big = big, small
	}
	out := big.clone()
	for k, v := range small {
		out[k] += v
	}
	return out
}

// Sub returns the coordinate-wise difference c - other.
func (c IECoeffs) Sub(other IECoeffs) IECoeffs {
	out := c.clone()
	for k, v := range other {
		out[k] -= v
	}
	return out
}

// Mul returns the "cardinality convolution" of c and other: for every pair
// of keys (k1, k2), coeff[k1]*coeff[k2] is accumulated at key k1+k2. A
// resulting key of 0 is never inserted, since an empty subset contributes
// no Shapley mass.
func (c IECoeffs) Mul(other IECoeffs) IECoeffs {
	out := make(IECoeffs, len(c)*len(other))
	for lk, lv := range c {
		for rk, rv := range other {
			k := lk + rk
			if k == 0 {
				continue
			}
			out[k] += lv * rv
		}
	}
	return out
}

// ApplySign negates every coefficient when sign == -1 and is a no-op when
// sign == 1. Any other value is a programmer error.
func (c IECoeffs) ApplySign(sign int) IECoeffs {
	switch sign {
	case 1:
		return c
	case -1:
		out := make(IECoeffs, len(c))
		for k, v := range c {
			out[k] = -v
		}
		return out
	default:
		panic("iecoeffs: sign must be 1 or -1")
	}
}

// ToSV folds c to a scalar Shapley contribution: sum(coeff[k] / k).
func (c IECoeffs) ToSV() float64 {
	var sum float64
	for k, v := range c {
		sum += float64(v) / float64(k)
	}
	return sum
}

// Equal reports whether c and other hold the same non-zero coefficients.
func (c IECoeffs) Equal(other IECoeffs) bool {
	for k, v := range c {
		if v != 0 && other[k] != v {
			return false
		}
	}
	for k, v := range other {
		if v != 0 && c[k] != v {
			return false
		}
	}
	return true
}

// HorizontalIdentity is the identity element of HorizontalOp: the empty
// coefficient map.
func HorizontalIdentity() IECoeffs { return IECoeffs{} }

// HorizontalOp combines two independent sub-games' coefficients under OR:
// a + b - a*b.
func HorizontalOp(a, b IECoeffs) IECoeffs {
	return a.Add(b).Sub(a.Mul(b))
}

// VerticalIdentity is the identity element of VerticalOp: the abstract unit
// {0: 1}. It seeds product accumulators and the recursive engine's root
// gamma; key 0 never escapes into a value produced by Mul.
func VerticalIdentity() IECoeffs { return IECoeffs{0: 1} }

// VerticalOp combines two independent sub-games' coefficients under AND:
// their cardinality convolution.
func VerticalOp(a, b IECoeffs) IECoeffs {
	return a.Mul(b)
}
