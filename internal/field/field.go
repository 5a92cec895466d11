// Package field implements the prime field arithmetic the flattener and its
// gadgets are parameterized over.
//
// There is no generic "any prime field" package in the reference corpus —
// gnark's field types are codegen'd per curve by gnark-crypto and don't
// expose a runtime-selectable modulus, which is what the flattener's
// less-than gadget needs (Bits derived from the configured modulus). Element
// is therefore a thin wrapper over math/big, following the same "big.Int
// cloned into a fresh receiver" discipline gnark's frontend/r1cs layer uses
// around its own constant folding.
package field

import (
	"fmt"
	"math/big"
)

// Modulus is the scalar field of the BN128/alt_bn128 curve used by Groth16
// verifiers deployed on Ethereum, the field this toolchain targets.
var Modulus = mustParse("21888242871839275222246405745257275088548364400416034343698204186575808495617")

func mustParse(dec string) *big.Int {
	n, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		panic("field: invalid modulus literal")
	}
	return n
}

// Bits is the number of bits needed to represent Modulus - 1. It
// parameterizes the less-than gadget's bit-decomposition loop.
var Bits = Modulus.BitLen()

// Element is a field element in canonical (reduced, non-negative) form.
type Element struct {
	v big.Int
}

// Zero returns the additive identity.
func Zero() Element { return Element{} }

// One returns the multiplicative identity.
func One() Element {
	var e Element
	e.v.SetInt64(1)
	return e
}

// FromInt64 builds an Element from a signed machine integer, reducing it
// modulo Modulus.
func FromInt64(n int64) Element {
	var e Element
	e.v.SetInt64(n)
	e.v.Mod(&e.v, Modulus)
	return e
}

// FromBigInt builds an Element from an arbitrary-precision integer, reducing
// it modulo Modulus. The input is not mutated.
func FromBigInt(n *big.Int) Element {
	var e Element
	e.v.Mod(n, Modulus)
	return e
}

// FromDecimalString parses a base-10 literal, as produced by the surface
// parser for numeric literals.
func FromDecimalString(s string) (Element, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Element{}, fmt.Errorf("field: invalid decimal literal %q", s)
	}
	return FromBigInt(n), nil
}

// Add returns e + other.
func (e Element) Add(other Element) Element {
	var r Element
	r.v.Add(&e.v, &other.v)
	r.v.Mod(&r.v, Modulus)
	return r
}

// Sub returns e - other.
func (e Element) Sub(other Element) Element {
	var r Element
	r.v.Sub(&e.v, &other.v)
	r.v.Mod(&r.v, Modulus)
	return r
}

// Mul returns e * other.
func (e Element) Mul(other Element) Element {
	var r Element
	r.v.Mul(&e.v, &other.v)
	r.v.Mod(&r.v, Modulus)
	return r
}

// Div returns e * inverse(other). Panics if other is zero, matching the
// reference Field's behavior: division by zero is a gadget-construction bug,
// not a recoverable runtime condition.
func (e Element) Div(other Element) Element {
	if other.IsZero() {
		panic("field: division by zero")
	}
	var inv big.Int
	inv.ModInverse(&other.v, Modulus)
	var r Element
	r.v.Mul(&e.v, &inv)
	r.v.Mod(&r.v, Modulus)
	return r
}

// Neg returns -e.
func (e Element) Neg() Element {
	var r Element
	r.v.Neg(&e.v)
	r.v.Mod(&r.v, Modulus)
	return r
}

// Pow returns e raised to a non-negative integer exponent.
func (e Element) Pow(n uint64) Element {
	var r Element
	exp := new(big.Int).SetUint64(n)
	r.v.Exp(&e.v, exp, Modulus)
	return r
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool { return e.v.Sign() == 0 }

// IsOne reports whether e is the multiplicative identity.
func (e Element) IsOne() bool { return e.v.Cmp(big.NewInt(1)) == 0 }

// Equal reports whether e and other are the same field element.
func (e Element) Equal(other Element) bool { return e.v.Cmp(&other.v) == 0 }

// Cmp compares canonical representatives as integers in [0, Modulus). It is
// only meaningful for callers that know their operands fit the "small
// integer" range the language's numeric literals live in (loop bounds,
// exponents) — field elements have no natural order otherwise.
func (e Element) Cmp(other Element) int { return e.v.Cmp(&other.v) }

// BigInt returns a copy of the canonical representative.
func (e Element) BigInt() *big.Int { return new(big.Int).Set(&e.v) }

// String renders the canonical decimal representative.
func (e Element) String() string { return e.v.String() }
