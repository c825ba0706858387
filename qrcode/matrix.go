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

// cellState tags every module in a Symbol's matrix with both its color and
// whether placement put it there as a fixed function pattern/format-info
// cell (reserved) or as an interleaved codeword bit (data). A freshly
// allocated matrix starts entirely cellUnset; buildMatrix must leave no
// cellUnset cell behind.
type cellState int8

const (
	cellUnset cellState = iota
	cellReserved0
	cellReserved1
	cellData0
	cellData1
)

func cellBlack(c cellState) bool {
	return c == cellReserved1 || c == cellData1
}

func reservedCell(isBlack bool) cellState {
	if isBlack {
		return cellReserved1
	}
	return cellReserved0
}

func dataCell(isBlack bool) cellState {
	if isBlack {
		return cellData1
	}
	return cellData0
}

// symbolSize returns the module width/height of a QR symbol at version.
func symbolSize(version Version) int {
	return int(version)*4 + 17
}

func newMatrix(size int) [][]cellState {
	m := make([][]cellState, size)
	for i := range m {
		m[i] = make([]cellState, size)
	}
	return m
}

// buildMatrix constructs the complete module matrix for a symbol: function
// patterns, format/version info, interleaved codeword placement, and
// masking, in that order — mirroring the teacher's drawFunctionPatterns /
// drawCodewords / applyMask / drawFormatBits sequencing.
func buildMatrix(version Version, level ECLevel, mask Mask, data []byte) ([][]cellState, error) {
	if version < 1 || version > 40 {
		return nil, fmt.Errorf("buildMatrix: version %d: %w", version, ErrInvalidParameters)
	}
	if level < 0 || level > 3 {
		return nil, fmt.Errorf("buildMatrix: level %d: %w", level, ErrInvalidParameters)
	}
	if mask < 0 || mask > 7 {
		return nil, fmt.Errorf("buildMatrix: mask %d: %w", mask, ErrInvalidParameters)
	}

	size := symbolSize(version)
	m := newMatrix(size)

	drawTimingPatterns(m)
	drawFinderPattern(m, 3, 3)
	drawFinderPattern(m, size-4, 3)
	drawFinderPattern(m, 3, size-4)
	drawAlignmentPatterns(m, version)
	reserveFormatAreas(m)
	drawVersionInfo(m, version)

	if err := drawCodewords(m, data); err != nil {
		return nil, err
	}
	applyMask(m, mask)
	drawFormatInfo(m, level, mask)

	if err := checkComplete(m); err != nil {
		return nil, err
	}
	return m, nil
}

func checkComplete(m [][]cellState) error {
	for _, row := range m {
		for _, c := range row {
			if c == cellUnset {
				return ErrDecoderInvariantViolation
			}
		}
	}
	return nil
}

func setFunctionModule(m [][]cellState, x, y int, isBlack bool) {
	m[y][x] = reservedCell(isBlack)
}

func drawTimingPatterns(m [][]cellState) {
	size := len(m)
	for i := 0; i < size; i++ {
		setFunctionModule(m, 6, i, i%2 == 0)
		setFunctionModule(m, i, 6, i%2 == 0)
	}
}

func drawFinderPattern(m [][]cellState, x, y int) {
	size := len(m)
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			dist := maxInt(absInt(dx), absInt(dy))
			xx, yy := x+dx, y+dy
			if xx >= 0 && xx < size && yy >= 0 && yy < size {
				setFunctionModule(m, xx, yy, dist != 2 && dist != 4)
			}
		}
	}
}

func drawAlignmentPatterns(m [][]cellState, version Version) {
	positions := alignmentPatternPositions[version]
	numAlign := len(positions)
	for i := 0; i < numAlign; i++ {
		for j := 0; j < numAlign; j++ {
			if (i == 0 && j == 0) || (i == 0 && j == numAlign-1) || (i == numAlign-1 && j == 0) {
				continue // The three finder-pattern corners already cover these.
			}
			drawAlignmentPattern(m, positions[i], positions[j])
		}
	}
}

func drawAlignmentPattern(m [][]cellState, x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			setFunctionModule(m, x+dx, y+dy, maxInt(absInt(dx), absInt(dy)) != 1)
		}
	}
}

// reserveFormatAreas marks the two 15-bit format-info strips and the
// always-black dark module as reserved, with placeholder values that
// drawFormatInfo overwrites once the final mask is known. Reserving them
// now, before data placement, keeps drawCodewords from routing codeword
// bits into these cells.
func reserveFormatAreas(m [][]cellState) {
	size := len(m)
	for i := 0; i <= 5; i++ {
		setFunctionModule(m, 8, i, false)
	}
	setFunctionModule(m, 8, 7, false)
	setFunctionModule(m, 8, 8, false)
	setFunctionModule(m, 7, 8, false)
	for i := 9; i < 15; i++ {
		setFunctionModule(m, 14-i, 8, false)
	}
	for i := 0; i < 8; i++ {
		setFunctionModule(m, size-1-i, 8, false)
	}
	for i := 8; i < 15; i++ {
		setFunctionModule(m, 8, size-15+i, false)
	}
	setFunctionModule(m, 8, size-8, true) // Dark module, fixed regardless of mask.
}

// formatBits returns the 2-bit format indicator for an ECLevel, per the
// ISO/IEC 18004 table (not the same ordering as ECLevel's own numeric
// value).
func (l ECLevel) formatBits() int {
	switch l {
	case ECLevelLow:
		return 1
	case ECLevelMedium:
		return 0
	case ECLevelQuartile:
		return 3
	case ECLevelHigh:
		return 2
	default:
		return 0
	}
}

const (
	formatGeneratorG15 = 0x537
	formatMaskXOR      = 0x5412
	versionGeneratorG18 = 0x1F25
)

func drawFormatInfo(m [][]cellState, level ECLevel, mask Mask) {
	size := len(m)
	data := uint32(level.formatBits())<<3 | uint32(mask)
	rem := bchDivide(data, 5, 10, formatGeneratorG15)
	bits := (data<<10 | rem) ^ formatMaskXOR

	for i := 0; i <= 5; i++ {
		setFunctionModule(m, 8, i, bitAt(uint(bits), uint(i)))
	}
	setFunctionModule(m, 8, 7, bitAt(uint(bits), 6))
	setFunctionModule(m, 8, 8, bitAt(uint(bits), 7))
	setFunctionModule(m, 7, 8, bitAt(uint(bits), 8))
	for i := 9; i < 15; i++ {
		setFunctionModule(m, 14-i, 8, bitAt(uint(bits), uint(i)))
	}

	for i := 0; i < 8; i++ {
		setFunctionModule(m, size-1-i, 8, bitAt(uint(bits), uint(i)))
	}
	for i := 8; i < 15; i++ {
		setFunctionModule(m, 8, size-15+i, bitAt(uint(bits), uint(i)))
	}
	setFunctionModule(m, 8, size-8, true)
}

func drawVersionInfo(m [][]cellState, version Version) {
	if version < 7 {
		return
	}
	size := len(m)
	rem := bchDivide(uint32(version), 6, 12, versionGeneratorG18)
	bits := uint32(version)<<12 | rem

	for i := 0; i < 18; i++ {
		bit := bitAt(uint(bits), uint(i))
		a := size - 11 + i%3
		b := i / 3
		setFunctionModule(m, a, b, bit)
		setFunctionModule(m, b, a, bit)
	}
}

// drawCodewords places data's bits into every module buildMatrix hasn't
// already reserved as a function/format cell, in the standard boustrophedon
// two-column zig-zag that skips the vertical timing-pattern column (6).
// Trailing remainder bits beyond len(data)*8, when the raw module count
// isn't an exact multiple of 8, are written as white.
func drawCodewords(m [][]cellState, data []byte) error {
	size := len(m)
	bitIndex := 0
	totalBits := len(data) * 8

	for right := size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < size; vert++ {
			for j := 0; j < 2; j++ {
				x := right - j
				upward := (right+1)&2 == 0
				var y int
				if upward {
					y = size - 1 - vert
				} else {
					y = vert
				}
				if m[y][x] != cellUnset {
					continue
				}
				bit := false
				if bitIndex < totalBits {
					b := data[bitIndex/8]
					bit = bitAt(uint(b), uint(7-bitIndex%8))
					bitIndex++
				}
				m[y][x] = dataCell(bit)
			}
		}
	}
	if bitIndex < totalBits {
		return fmt.Errorf("drawCodewords: %d data bits unplaced out of %d: %w", totalBits-bitIndex, totalBits, ErrTableMismatch)
	}
	return nil
}

// maskPredicate returns whether mask flips the module at (x, y), per the
// eight standard QR mask patterns.
func maskPredicate(mask Mask, x, y int) bool {
	switch mask {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (y/2+x/3)%2 == 0
	case 5:
		return (x*y)%2+(x*y)%3 == 0
	case 6:
		return ((x*y)%2+(x*y)%3)%2 == 0
	case 7:
		return ((x+y)%2+(x*y)%3)%2 == 0
	default:
		return false
	}
}

// applyMask flips every data cell (never a reserved function/format cell)
// wherever maskPredicate is true for its coordinates.
func applyMask(m [][]cellState, mask Mask) {
	for y, row := range m {
		for x, c := range row {
			if c != cellData0 && c != cellData1 {
				continue
			}
			if maskPredicate(mask, x, y) {
				row[x] = dataCell(!cellBlack(c))
			}
		}
	}
}

const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// computePenalty scores a finished matrix per the four standard QR
// penalty rules (adjacent same-color runs and finder-like patterns,
// 2x2 blocks, dark/light imbalance), the lower the better — used by
// BestMask to pick among the eight mask patterns.
func computePenalty(m [][]cellState) int {
	size := len(m)
	black := func(x, y int) bool { return cellBlack(m[y][x]) }
	result := 0

	for y := 0; y < size; y++ {
		runColor := false
		runX := 0
		var history [7]int
		for x := 0; x < size; x++ {
			if black(x, y) == runColor {
				runX++
				if runX == 5 {
					result += penaltyN1
				} else if runX > 5 {
					result++
				}
			} else {
				finderPenaltyAddHistory(runX, &history, size)
				if !runColor {
					result += finderPenaltyCountPatterns(&history) * penaltyN3
				}
				runColor = black(x, y)
				runX = 1
			}
		}
		result += finderPenaltyTerminateAndCount(runColor, runX, &history, size) * penaltyN3
	}

	for x := 0; x < size; x++ {
		runColor := false
		runY := 0
		var history [7]int
		for y := 0; y < size; y++ {
			if black(x, y) == runColor {
				runY++
				if runY == 5 {
					result += penaltyN1
				} else if runY > 5 {
					result++
				}
			} else {
				finderPenaltyAddHistory(runY, &history, size)
				if !runColor {
					result += finderPenaltyCountPatterns(&history) * penaltyN3
				}
				runColor = black(x, y)
				runY = 1
			}
		}
		result += finderPenaltyTerminateAndCount(runColor, runY, &history, size) * penaltyN3
	}

	for y := 0; y < size-1; y++ {
		for x := 0; x < size-1; x++ {
			c := black(x, y)
			if c == black(x+1, y) && c == black(x, y+1) && c == black(x+1, y+1) {
				result += penaltyN2
			}
		}
	}

	blackCount := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if black(x, y) {
				blackCount++
			}
		}
	}
	total := size * size
	for k := 0; blackCount*20 < (9-k)*total || blackCount*20 > (9+k)*total; k++ {
		result += penaltyN4
	}
	return result
}

func finderPenaltyCountPatterns(history *[7]int) int {
	n := history[1]
	core := n > 0 && history[2] == n && history[3] == n*3 && history[4] == n && history[5] == n
	result := 0
	if core && history[0] >= n*4 && history[6] >= n {
		result++
	}
	if core && history[6] >= n*4 && history[0] >= n {
		result++
	}
	return result
}

func finderPenaltyTerminateAndCount(currentRunColor bool, currentRunLength int, history *[7]int, size int) int {
	if currentRunColor {
		finderPenaltyAddHistory(currentRunLength, history, size)
		currentRunLength = 0
	}
	currentRunLength += size
	finderPenaltyAddHistory(currentRunLength, history, size)
	return finderPenaltyCountPatterns(history)
}

func finderPenaltyAddHistory(currentRunLength int, history *[7]int, size int) {
	if history[0] == 0 {
		currentRunLength += size
	}
	copy(history[1:], history[0:6])
	history[0] = currentRunLength
}

// BestMask builds a symbol with buildFn for every one of the eight mask
// patterns and returns whichever minimizes computePenalty — an opt-in
// helper; Encode itself always takes an explicit mask.
func BestMask(buildFn func(Mask) (*Symbol, error)) (Mask, error) {
	best := Mask(-1)
	bestScore := 0
	for mask := Mask(0); mask <= 7; mask++ {
		sym, err := buildFn(mask)
		if err != nil {
			return -1, err
		}
		score := computePenalty(sym.Modules)
		if best == -1 || score < bestScore {
			best = mask
			bestScore = score
		}
	}
	if best == -1 {
		return -1, fmt.Errorf("BestMask: no candidate masks evaluated: %w", ErrInvalidParameters)
	}
	return best, nil
}
