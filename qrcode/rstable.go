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

// The tables below are the canonical ISO/IEC 18004 per-version,
// per-error-correction-level constants. The outer index selects ECLevel;
// index 0 of the inner array is unused (versions run 1..40).

// eccCodewordsPerBlock is the number of error-correction codewords in each
// block, indexed [level][version].
var eccCodewordsPerBlock = [4][41]int{
	{-1, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	{-1, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28},
	{-1, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	{-1, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
}

// numErrorCorrectionBlocks is the number of blocks data is split into,
// indexed [level][version].
var numErrorCorrectionBlocks = [4][41]int{
	{-1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},
	{-1, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},
	{-1, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},
	{-1, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81},
}

// numRawDataModules is the raw number of modules (finder/timing/alignment/
// format/version overhead subtracted) available per version, before any
// split between data and parity.
var numRawDataModules [41]int

func init() {
	for v := 1; v <= 40; v++ {
		size := 4*v + 17
		result := size*size
		result -= 64 * 3 // Three finder patterns, each 8x8 including the separator.
		result -= 31     // Format info: 2*15 bits + 1 dark module, minus overlap already counted.
		if v >= 7 {
			result -= 2 * 18 // Two version info blocks, 3x6 bits each.
		}
		result -= 2 * (4*v + 1) // Two timing patterns, excluding the part covered by finder patterns.

		if v >= 2 {
			// Same count alignmentPatternPositions holds; that table is
			// filled by the init below, which runs after this one.
			numAlign := v/7 + 2
			result -= (numAlign*numAlign - 3) * 25 // Alignment patterns, minus the three finder corners.
			result += (numAlign - 2) * 2 * 5       // Timing modules already subtracted above.
		}
		numRawDataModules[v] = result
	}
}

// alignmentPatternPositions gives, per version, the center coordinates
// (row == column positions) an alignment pattern is stamped at; version 1
// has none.
var alignmentPatternPositions [41][]int

func init() {
	for v := 1; v <= 40; v++ {
		if v == 1 {
			alignmentPatternPositions[v] = nil
			continue
		}
		numAlign := v/7 + 2
		step := 0
		if v != 32 {
			step = (v*4 + numAlign*2 + 1) / (numAlign*2 - 2) * 2
		} else {
			step = 26
		}
		positions := make([]int, numAlign)
		pos := 4*v + 10
		for i := numAlign - 1; i >= 1; i-- {
			positions[i] = pos
			pos -= step
		}
		positions[0] = 6
		alignmentPatternPositions[v] = positions
	}
}

// blockGroup describes one group of same-shaped blocks in a version/level's
// layout: count blocks, each carrying dataLen data codewords followed by
// eccLen parity codewords.
type blockGroup struct {
	count    int
	dataLen  int
	eccLen   int
}

// blockLayout computes the block-group breakdown used to split a data
// codeword stream across this (version, level)'s RS blocks. QR versions
// whose blocks aren't all the same length produce two groups: a short-block
// group followed by a long-block group, long blocks carrying one extra data
// codeword. Returns ErrTableMismatch if the baked-in tables disagree with
// each other for this pair, which would indicate a transcription bug rather
// than a bad caller argument.
func blockLayout(version Version, level ECLevel) ([]blockGroup, error) {
	if version < 1 || version > 40 {
		return nil, fmt.Errorf("blockLayout: version %d out of range: %w", version, ErrInvalidParameters)
	}
	if level < 0 || level > 3 {
		return nil, fmt.Errorf("blockLayout: level %d out of range: %w", level, ErrInvalidParameters)
	}

	numBlocks := numErrorCorrectionBlocks[level][version]
	eccLen := eccCodewordsPerBlock[level][version]
	totalCodewords := numRawDataModules[version] / 8
	totalDataCodewords := totalCodewords - eccLen*numBlocks

	if numBlocks <= 0 || eccLen <= 0 || totalDataCodewords <= 0 {
		return nil, fmt.Errorf("blockLayout(%d,%d): %w", version, level, ErrTableMismatch)
	}

	shortDataLen := totalDataCodewords / numBlocks
	numLongBlocks := totalDataCodewords - shortDataLen*numBlocks
	numShortBlocks := numBlocks - numLongBlocks

	if numLongBlocks < 0 || numLongBlocks > numBlocks {
		return nil, fmt.Errorf("blockLayout(%d,%d): %w", version, level, ErrTableMismatch)
	}

	groups := make([]blockGroup, 0, 2)
	if numShortBlocks > 0 {
		groups = append(groups, blockGroup{count: numShortBlocks, dataLen: shortDataLen, eccLen: eccLen})
	}
	if numLongBlocks > 0 {
		groups = append(groups, blockGroup{count: numLongBlocks, dataLen: shortDataLen + 1, eccLen: eccLen})
	}
	return groups, nil
}

// numDataCodewords returns the total data-codeword capacity for a
// (version, level) pair, summed across every block.
func numDataCodewords(version Version, level ECLevel) (int, error) {
	groups, err := blockLayout(version, level)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, g := range groups {
		total += g.count * g.dataLen
	}
	return total, nil
}
