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
	"regexp"
	"strconv"
	"strings"
)

// QRSegment is a single mode segment of a QR payload: numeric, alphanumeric,
// byte, or ECI. Encode (symbol.go) only ever emits a single byte segment
// (spec.md's byte-mode-only Non-goal), built with MakeBytes and sized with
// GetTotalBits; the other constructors stay here as plumbing for a future
// segment mode.
type QRSegment struct {
	mode     mode
	NumChars int
	Data     bitBuffer
}

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

var (
	alphanumericRegexp = regexp.MustCompile(`^[A-Z0-9 $%*+./:-]*$`)
	numericRegexp       = regexp.MustCompile(`^[0-9]*$`)
)

// CharCountBits returns the width, in bits, of this segment's character
// count indicator field at the given version.
func (s *QRSegment) CharCountBits(version Version) int {
	return int(s.mode.numCharCountBits(version))
}

// GetTotalBits returns the total bit length segs would occupy at version,
// or -1 if any segment's character count overflows its field width.
func GetTotalBits(segs []*QRSegment, version Version) int {
	result := 0
	for _, seg := range segs {
		ccBits := seg.CharCountBits(version)
		if seg.NumChars >= 1<<uint(ccBits) {
			return -1
		}
		result += 4 + ccBits + len(seg.Data)
	}
	return result
}

// MakeAlphanumeric creates an alphanumeric segment from text (uppercase
// letters, digits, and a handful of symbols).
func MakeAlphanumeric(text string) *QRSegment {
	if !alphanumericRegexp.MatchString(text) {
		panic("string contains non-alphanumeric characters")
	}

	var bb bitBuffer
	var i int
	for i = 0; i <= len(text)-2; i += 2 {
		temp := strings.Index(alphanumericCharset, text[i:i+1]) * 45
		temp += strings.Index(alphanumericCharset, text[i+1:i+2])
		bb.appendInt(temp, 11, msbFirst)
	}
	if i < len(text) {
		bb.appendInt(strings.Index(alphanumericCharset, text[i:i+1]), 6, msbFirst)
	}

	return &QRSegment{mode: alphanumericMode, NumChars: len(text), Data: bb}
}

// MakeBytes encodes data into a byte-mode segment — the only mode Encode's
// public surface uses.
func MakeBytes(data []byte) *QRSegment {
	var bb bitBuffer
	bb.appendBytes(data)
	return &QRSegment{mode: byteMode, NumChars: len(data), Data: bb}
}

// MakeECI creates a segment representing an extended channel interpretation
// (ECI) designator with the given assignment value.
func MakeECI(assignValue int) (*QRSegment, error) {
	var bb bitBuffer
	switch {
	case assignValue < 1<<7:
		bb.appendInt(assignValue, 8, msbFirst)
	case assignValue < 1<<14:
		bb.appendInt(2, 2, msbFirst)
		bb.appendInt(assignValue, 14, msbFirst)
	case assignValue < 1_000_000:
		bb.appendInt(6, 3, msbFirst)
		bb.appendInt(assignValue, 21, msbFirst)
	default:
		return nil, fmt.Errorf("ECI assignment out of range")
	}
	return &QRSegment{mode: eciMode, NumChars: 0, Data: bb}, nil
}

// MakeNumeric creates a numeric segment from a digit string.
func MakeNumeric(digits string) *QRSegment {
	if !numericRegexp.MatchString(digits) {
		panic("string contains non-numeric characters")
	}

	var bb bitBuffer
	for i := 0; i < len(digits); {
		n := minInt(len(digits)-i, 3)
		d, _ := strconv.Atoi(digits[i : i+n])
		bb.appendInt(d, n*3+1, msbFirst)
		i += n
	}

	return &QRSegment{mode: numericMode, NumChars: len(digits), Data: bb}
}

// MakeSegments encodes text as a single segment, selecting the most
// compact applicable mode (numeric, then alphanumeric, then byte).
func MakeSegments(text string) []*QRSegment {
	if len(text) == 0 {
		return []*QRSegment{}
	}
	if numericRegexp.MatchString(text) {
		return []*QRSegment{MakeNumeric(text)}
	}
	if alphanumericRegexp.MatchString(text) {
		return []*QRSegment{MakeAlphanumeric(text)}
	}
	return []*QRSegment{MakeBytes([]byte(text))}
}
