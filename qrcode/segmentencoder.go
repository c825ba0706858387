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

// segmentEncoder holds the opt-in automatic choices EncodeWithOptions
// layers on top of Encode's explicit version/level/mask contract: auto
// mask selection (delegates to BestMask) and EC level boosting (try
// higher levels while the payload still fits the chosen version). Encode
// itself never does either implicitly — spec.md requires a caller-chosen
// mask on the primary path.
type segmentEncoder struct {
	boostECL bool
	mask     Mask // -1 means "choose automatically via BestMask"
}

// WithAutoMask selects the mask automatically via BestMask instead of
// requiring an explicit one.
func WithAutoMask() func(*segmentEncoder) {
	return func(s *segmentEncoder) {
		s.mask = -1
	}
}

// WithBoostECL raises the error-correction level as far as Quartile/High
// will go while the payload still fits the requested version, trading
// spare capacity for a stronger correction budget instead of leaving it
// unused.
func WithBoostECL(boost bool) func(*segmentEncoder) {
	return func(s *segmentEncoder) {
		s.boostECL = boost
	}
}

// WithMask sets an explicit mask. Combined with WithAutoMask, whichever
// option is given later wins.
func WithMask(mask Mask) func(*segmentEncoder) {
	return func(s *segmentEncoder) {
		s.mask = mask
	}
}

// EncodeWithOptions wraps Encode with the teacher's functional-option
// pattern (originally EncodeSegments' WithAutoMask/WithBoostECL/WithMask),
// trimmed to the two choices that still make sense once version and mode
// are no longer auto-selected: mask and EC-level boosting.
func EncodeWithOptions(payload []byte, version Version, level ECLevel, opts ...func(*segmentEncoder)) (*Symbol, error) {
	enc := &segmentEncoder{mask: 0}
	for _, opt := range opts {
		opt(enc)
	}

	if enc.boostECL {
		for candidate := ECLevelHigh; candidate > level; candidate-- {
			if capacity, err := numDataCodewords(version, candidate); err == nil {
				bb, err := encodeByteSegment(payload, version)
				if err == nil && len(bb)+4 <= capacity*8 {
					level = candidate
					break
				}
			}
		}
	}

	if enc.mask == -1 {
		mask, err := BestMask(func(m Mask) (*Symbol, error) {
			return Encode(payload, version, level, m)
		})
		if err != nil {
			return nil, err
		}
		enc.mask = mask
	}

	return Encode(payload, version, level, enc.mask)
}
