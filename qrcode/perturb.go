/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package qrcode

import (
	"fmt"
	"math/bits"
	"math/rand"
)

// RandomizeBlock rebuilds sym with the first n data codewords of
// Blocks[blockIndex] replaced by distinct random bytes (each sampled value
// differs from the one it replaces, so the block's Hamming distance from
// the original grows by exactly n), re-interleaves every block, and
// redraws the matrix with the same version/level/mask. The block's parity
// is deliberately left untouched: it was computed from the original,
// unrandomized data, so as long as n stays within the block's Capacity, a
// standard Reed-Solomon decoder can still correct the randomized
// codewords back to their original values — that slack is the entire
// point of this perturbation, mirroring
// original_source/src/util/qr.py's set_blocks, which reuses
// self.error_blocks (computed once, before qash.py's Block.randomize
// call) rather than recomputing it from the randomized data. sym itself
// is left untouched — Symbol is treated as immutable and every mutation
// returns a new one, in the teacher's own rebuild style (EncodeSegments
// always produces a fresh QRCode).
func RandomizeBlock(sym *Symbol, blockIndex, n int, rng *rand.Rand) (*Symbol, error) {
	if sym == nil {
		return nil, fmt.Errorf("RandomizeBlock: nil symbol: %w", ErrInvalidParameters)
	}
	if blockIndex < 0 || blockIndex >= len(sym.Blocks) {
		return nil, fmt.Errorf("RandomizeBlock: block index %d out of range [0,%d): %w", blockIndex, len(sym.Blocks), ErrInvalidParameters)
	}
	block := sym.Blocks[blockIndex]
	if n < 0 || n > len(block.Data) {
		return nil, fmt.Errorf("RandomizeBlock: n %d out of range [0,%d]: %w", n, len(block.Data), ErrInvalidParameters)
	}

	blocks := make([]Block, len(sym.Blocks))
	for i, b := range sym.Blocks {
		blocks[i] = Block{Index: b.Index, Data: append([]byte(nil), b.Data...), ECC: append([]byte(nil), b.ECC...)}
	}

	target := &blocks[blockIndex]
	for i := 0; i < n; i++ {
		current := target.Data[i]
		var replacement byte
		for {
			replacement = byte(rng.Intn(256))
			if replacement != current {
				break
			}
		}
		target.Data[i] = replacement
	}

	interleaved := interleave(blocks)
	modules, err := buildMatrix(sym.Version, sym.Level, sym.Mask, interleaved)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, len(sym.DataCodewords))
	for _, b := range blocks {
		data = append(data, b.Data...)
	}

	return &Symbol{
		Version:       sym.Version,
		Level:         sym.Level,
		Mask:          sym.Mask,
		DataCodewords: data,
		Interleaved:   interleaved,
		Blocks:        blocks,
		Modules:       modules,
	}, nil
}

// Diff returns the Hamming distance, in whole codewords, between a and b —
// the count of positions where the two byte slices disagree. a and b must
// be the same length (e.g. two Symbols' Interleaved streams for the same
// version/level).
func Diff(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("Diff: length mismatch %d vs %d: %w", len(a), len(b), ErrInvalidParameters)
	}
	count := 0
	for i := range a {
		if a[i] != b[i] {
			count++
		}
	}
	return count, nil
}

// Mix builds two codeword streams, left and right, that each decode within
// the correction budget of one of a or b. Mix finds the first differing
// position between a and b whose byte values differ by exactly one bit
// (XOR has a single set bit) and uses it as the pivot — the single
// visually-ambiguous module a rendered image can be read as either color
// at. At the pivot, left takes a's value and right takes b's. Among the
// other differing positions, the first capacity of them take a's value in
// both left and right, and the rest take b's value in both; equal
// positions are copied through. Mix
// mirrors the Python original's Whim.mix line for line: same pivot rule,
// same capacity-biased split.
//
// Returns ErrNoMixablePivot, with pivot == -1, if no differing position has
// single-bit XOR — callers (internal/search) treat this as a skippable,
// non-fatal result for a given candidate.
func Mix(a, b []byte, capacity int) (left, right []byte, pivot int, err error) {
	if len(a) != len(b) {
		return nil, nil, -1, fmt.Errorf("Mix: length mismatch %d vs %d: %w", len(a), len(b), ErrInvalidParameters)
	}
	if capacity < 0 {
		return nil, nil, -1, fmt.Errorf("Mix: negative capacity %d: %w", capacity, ErrInvalidParameters)
	}

	pivot = -1
	var diffPositions []int
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		diffPositions = append(diffPositions, i)
		if pivot == -1 && bits.OnesCount8(a[i]^b[i]) == 1 {
			pivot = i
		}
	}
	if pivot == -1 {
		return nil, nil, -1, fmt.Errorf("Mix: %w", ErrNoMixablePivot)
	}

	mixed := append([]byte(nil), b...)
	biased := 0
	for _, i := range diffPositions {
		if i == pivot {
			continue
		}
		if biased < capacity {
			mixed[i] = a[i] // First `capacity` non-pivot diffs bias toward a.
			biased++
		}
		// Remaining non-pivot diffs keep b's value (already copied above).
	}

	left = append([]byte(nil), mixed...)
	left[pivot] = a[pivot]
	right = append([]byte(nil), mixed...)
	right[pivot] = b[pivot]

	return left, right, pivot, nil
}
