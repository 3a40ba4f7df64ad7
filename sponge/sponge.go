// Package sponge implements the Fiat-Shamir transcript object the FRI and
// STARK provers/verifiers share: an append-only list of absorbed byte
// strings, squeezed deterministically via SHAKE256.
package sponge

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/proteus-stark/proteus/field"
)

// Sponge is a value type with move/exclusive-borrow semantics: callers
// pass it by pointer across the STARK/FRI boundary so that weights
// squeezed by one protocol and folding randomness squeezed by the other
// come from the same extended transcript (spec.md §9's state-sharing
// design note). It must never be shared as a global or reused across
// unrelated proofs.
type Sponge struct {
	absorbed [][]byte
	counter  uint32
}

// New creates an empty transcript.
func New() *Sponge {
	return &Sponge{}
}

// Absorb appends data to the transcript and resets the squeeze counter.
func (s *Sponge) Absorb(data []byte) {
	cp := append([]byte(nil), data...)
	s.absorbed = append(s.absorbed, cp)
	s.counter = 0
}

// serializeState concatenates every absorbed byte string with a length
// prefix so the encoding is unambiguous.
func (s *Sponge) serializeState() []byte {
	var out []byte
	for _, chunk := range s.absorbed {
		var lenBuf [8]byte
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(chunk)))
		out = append(out, lenBuf[:]...)
		out = append(out, chunk...)
	}
	return out
}

// SqueezeBytes deterministically derives n bytes as
// SHAKE256(serialize(state) || counter_be || postfix).digest(n), then
// advances the counter so repeated squeezes differ.
func (s *Sponge) SqueezeBytes(n int, postfix []byte) []byte {
	state := s.serializeState()
	var counterBuf [4]byte
	binary.BigEndian.PutUint32(counterBuf[:], s.counter)
	s.counter++

	h := sha3.NewShake256()
	h.Write(state)
	h.Write(counterBuf[:])
	h.Write(postfix)
	out := make([]byte, n)
	if _, err := h.Read(out); err != nil {
		panic("sponge: SHAKE256 read failed: " + err.Error())
	}
	return out
}

// SqueezeFieldElement derives a field element by reducing 32 squeezed
// bytes modulo the field's modulus, re-reducing as spec.md §3 describes.
func (s *Sponge) SqueezeFieldElement(f *field.Field) field.Element {
	raw := s.SqueezeBytes(32, nil)
	return f.NewElementFromBytes(raw)
}

// SqueezeInt derives a uniformly distributed integer in [0, u).
func (s *Sponge) SqueezeInt(u uint64) uint64 {
	raw := s.SqueezeBytes(16, nil)
	acc := new(big.Int).SetBytes(raw)
	mod := new(big.Int).Mod(acc, new(big.Int).SetUint64(u))
	return mod.Uint64()
}

// SqueezeDistinctIndices draws m distinct indices in [0, u) via rejection
// sampling, with each attempt's postfix set to the attempt counter so
// repeated rejections still advance deterministically.
func (s *Sponge) SqueezeDistinctIndices(m int, u uint64) ([]int, error) {
	if uint64(m) > u {
		return nil, fmt.Errorf("sponge: cannot draw %d distinct indices from a universe of size %d", m, u)
	}
	seen := make(map[uint64]bool, m)
	out := make([]int, 0, m)
	attempt := uint32(0)
	for len(out) < m {
		var postfix [4]byte
		binary.BigEndian.PutUint32(postfix[:], attempt)
		attempt++

		raw := s.SqueezeBytes(16, postfix[:])
		acc := new(big.Int).SetBytes(raw)
		candidate := new(big.Int).Mod(acc, new(big.Int).SetUint64(u)).Uint64()
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		out = append(out, int(candidate))
	}
	return out, nil
}
