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

import "errors"

// Sentinel errors returned by this package. Use errors.Is to test for a
// specific kind; call sites wrap these with additional context via
// fmt.Errorf("...: %w", ErrX).
var (
	// ErrInvalidParameters is returned when version, EC level, or mask
	// falls outside its legal range.
	ErrInvalidParameters = errors.New("qrcode: invalid parameters")

	// ErrUnsupportedMode is returned when data analysis yields anything
	// other than byte mode.
	ErrUnsupportedMode = errors.New("qrcode: unsupported mode")

	// ErrInputTooLarge is returned when the payload's bit length exceeds
	// the data capacity for the requested version and EC level.
	ErrInputTooLarge = errors.New("qrcode: input too large for version/level")

	// ErrTableMismatch indicates the baked-in RS block table is
	// internally inconsistent for some (version, level) pair. This is a
	// programming bug, not a user error.
	ErrTableMismatch = errors.New("qrcode: RS table mismatch")

	// ErrNoMixablePivot is returned by Mix when no differing codeword
	// position has a single-bit XOR; it is a normal, skippable result for
	// search loops, not a fatal error.
	ErrNoMixablePivot = errors.New("qrcode: no mixable pivot")

	// ErrDecoderInvariantViolation indicates a module matrix cell was
	// left unset after construction finished. Programming bug.
	ErrDecoderInvariantViolation = errors.New("qrcode: unset module at end of build")
)
