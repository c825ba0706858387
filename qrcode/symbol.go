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

import "fmt"

// Version is a QR symbol version, 1 through 40; it determines the module
// grid size (4*Version+17) and, together with Level, the data capacity.
type Version int

// ECLevel is the error-correction level a symbol is encoded at. The
// ordinal values here match the order spec.md lists them in (L, M, Q, H);
// they are deliberately NOT the 2-bit codes the format-info field stores
// — ECLevel.formatBits (matrix.go) performs that separate mapping.
type ECLevel int

const (
	ECLevelLow ECLevel = iota
	ECLevelMedium
	ECLevelQuartile
	ECLevelHigh
)

func (l ECLevel) String() string {
	switch l {
	case ECLevelLow:
		return "L"
	case ECLevelMedium:
		return "M"
	case ECLevelQuartile:
		return "Q"
	case ECLevelHigh:
		return "H"
	default:
		return fmt.Sprintf("ECLevel(%d)", int(l))
	}
}

// Mask is one of the eight standard QR data-masking patterns, 0 through 7.
type Mask int

// Symbol is a fully constructed QR symbol: the original data codewords,
// their computed parity, the interleaved transmission stream, and the
// resolved module matrix.
type Symbol struct {
	Version Version
	Level   ECLevel
	Mask    Mask

	DataCodewords []byte
	Interleaved   []byte
	Blocks        []Block

	Modules [][]cellState
}

// Matrix returns the symbol's modules as plain 0/1 ints, one row per matrix
// row — the representation Rasterize and the callers outside this package
// (cmd/misqr, internal/search) work with. It is an error to call Matrix on a Symbol
// whose construction didn't finish (Modules left nil or containing
// cellUnset), which buildMatrix already guards against via
// ErrDecoderInvariantViolation.
func (s *Symbol) Matrix() [][]int {
	out := make([][]int, len(s.Modules))
	for y, row := range s.Modules {
		r := make([]int, len(row))
		for x, c := range row {
			r[x] = boolToInt(cellBlack(c))
		}
		out[y] = r
	}
	return out
}

// Reserved reports whether the module at (x, y) is a function/format cell
// (true) rather than an interleaved data codeword bit (false) — used by
// cmd/misqr's qash command to avoid pasting a camouflage tile over a cell
// that carries no error-correction slack.
func (s *Symbol) Reserved(x, y int) bool {
	c := s.Modules[y][x]
	return c == cellReserved0 || c == cellReserved1
}

// Size returns the module width (== height) of the symbol's matrix.
func (s *Symbol) Size() int {
	return len(s.Modules)
}

// Encode builds a complete Symbol for payload at the given version, EC
// level, and mask. Only 8-bit byte mode is supported; version/level/mask
// must already be chosen by the caller (there is no automatic version
// search or ECL boosting here, unlike the teacher's EncodeSegments — see
// BestMask in matrix.go for the opt-in automatic-mask helper).
func Encode(payload []byte, version Version, level ECLevel, mask Mask) (*Symbol, error) {
	if version < 1 || version > 40 {
		return nil, fmt.Errorf("Encode: version %d out of range: %w", version, ErrInvalidParameters)
	}
	if level < ECLevelLow || level > ECLevelHigh {
		return nil, fmt.Errorf("Encode: level %d out of range: %w", level, ErrInvalidParameters)
	}
	if mask < 0 || mask > 7 {
		return nil, fmt.Errorf("Encode: mask %d out of range: %w", mask, ErrInvalidParameters)
	}

	capacity, err := numDataCodewords(version, level)
	if err != nil {
		return nil, err
	}

	bb, err := encodeByteSegment(payload, version)
	if err != nil {
		return nil, err
	}

	data, err := padToCapacity(bb, capacity)
	if err != nil {
		return nil, err
	}

	blocks, err := splitIntoBlocks(data, version, level)
	if err != nil {
		return nil, err
	}
	interleaved := interleave(blocks)

	modules, err := buildMatrix(version, level, mask, interleaved)
	if err != nil {
		return nil, err
	}

	return &Symbol{
		Version:       version,
		Level:         level,
		Mask:          mask,
		DataCodewords: data,
		Interleaved:   interleaved,
		Blocks:        blocks,
		Modules:       modules,
	}, nil
}

// BuildFromInterleaved constructs a Symbol's matrix directly from an
// already-interleaved codeword stream — the placement/masking half of
// Encode, without the data-analysis/padding/block-split half. This is
// what lets internal/search draw the "left"/"right" codeword streams Mix
// produces: those streams are already in transmission order (Mix operates
// on Symbol.Interleaved), so redoing full Encode on them would require
// un-interleaving them back into per-block data first. Blocks is left nil
// on the returned Symbol since the per-block split isn't reconstructed.
func BuildFromInterleaved(version Version, level ECLevel, mask Mask, interleaved []byte) (*Symbol, error) {
	modules, err := buildMatrix(version, level, mask, interleaved)
	if err != nil {
		return nil, err
	}
	return &Symbol{
		Version:     version,
		Level:       level,
		Mask:        mask,
		Interleaved: interleaved,
		Modules:     modules,
	}, nil
}

// encodeByteSegment builds the bit stream for payload as a single 8-bit
// byte mode segment: mode indicator, character count indicator (width per
// version per mode.numCharCountBits), and the payload bits themselves. It
// delegates the segment construction itself to MakeBytes (qrsegment.go)
// rather than packing the payload bits a second time.
func encodeByteSegment(payload []byte, version Version) (bitBuffer, error) {
	seg := MakeBytes(payload)
	if total := GetTotalBits([]*QRSegment{seg}, version); total < 0 {
		return nil, fmt.Errorf("encodeByteSegment: %d bytes overflow the character count field at version %d: %w", len(payload), version, ErrInputTooLarge)
	}

	var bb bitBuffer
	bb.appendInt(int(seg.mode.modeBits), 4, msbFirst)
	bb.appendInt(seg.NumChars, seg.CharCountBits(version), msbFirst)
	bb = append(bb, seg.Data...)
	return bb, nil
}

// padToCapacity appends the terminator, bit-alignment padding, and the
// standard 0xEC/0x11 pad codewords up to capacity data codewords, failing
// with ErrInputTooLarge if bb already exceeds the budget.
func padToCapacity(bb bitBuffer, capacity int) ([]byte, error) {
	capacityBits := capacity * 8
	if len(bb) > capacityBits {
		return nil, fmt.Errorf("padToCapacity: %d bits exceeds capacity %d bits: %w", len(bb), capacityBits, ErrInputTooLarge)
	}

	terminatorLen := minInt(4, capacityBits-len(bb))
	bb.appendInt(0, terminatorLen, msbFirst)

	for len(bb)%8 != 0 {
		bb = append(bb, false)
	}

	padBytes := [2]byte{0xEC, 0x11}
	for i := 0; len(bb) < capacityBits; i++ {
		bb.appendInt(int(padBytes[i%2]), 8, msbFirst)
	}

	return bb.toBytes(), nil
}
