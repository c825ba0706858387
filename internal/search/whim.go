// Package search implements the Whim character-substitution search: given a
// payload and an index into it, find single-character substitutes whose
// encoded codeword stream differs from the original in exactly
// 2*capacity+1 codewords (capacity being one block's Reed-Solomon
// correction budget), so the two can be blended into one image decodable
// as either.
package search

import (
	"fmt"
	"image"
	"image/color"

	"github.com/misqr/misqr/qrcode"
)

// substitutionAlphabet mirrors whim.py's own character set: lowercase,
// then uppercase, then digits.
const substitutionAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

// Candidate is one substitute payload that mixed cleanly with the
// original: Text is the full substituted payload string, Pivot is the
// interleaved-codeword index whose single-bit ambiguity lets one rendered
// image decode as either payload, and Mixed is the 50/50-blended preview
// image built from the original's and the candidate's own "left"/"right"
// codeword streams.
type Candidate struct {
	Text  string
	Pivot int
	Mixed image.Image
}

// Run searches substitutionAlphabet for single-character replacements of
// data at index, encodes each at (version, level, mask), and keeps those
// whose codeword-level Diff against the original equals exactly
// 2*capacity+1 (capacity taken from the original symbol's first block, as
// whim.py's search_similar_qr does with possible_error[0]). Candidates
// Mix cleanly are rasterized and channel-averaged into the returned
// Candidate.Mixed image; Mix failures (no single-bit pivot) are silently
// skipped, exactly as the Python original continues past them.
func Run(data string, index int, version qrcode.Version, level qrcode.ECLevel, mask qrcode.Mask) ([]Candidate, error) {
	if index < 0 || index >= len(data) {
		return nil, fmt.Errorf("search.Run: index %d out of range for data of length %d", index, len(data))
	}

	original, err := qrcode.Encode([]byte(data), version, level, mask)
	if err != nil {
		return nil, fmt.Errorf("search.Run: encoding original payload: %w", err)
	}
	if len(original.Blocks) == 0 {
		return nil, fmt.Errorf("search.Run: original symbol has no blocks")
	}
	capacity := original.Blocks[0].Capacity()

	var candidates []Candidate
	for _, c := range substitutionAlphabet {
		if rune(data[index]) == c {
			continue
		}
		candidateText := data[:index] + string(c) + data[index+1:]

		candidateSym, err := qrcode.Encode([]byte(candidateText), version, level, mask)
		if err != nil {
			continue // This substitution doesn't fit the fixed version/level; skip it.
		}

		diff, err := qrcode.Diff(original.Interleaved, candidateSym.Interleaved)
		if err != nil || diff != 2*capacity+1 {
			continue
		}

		left, right, pivot, err := qrcode.Mix(original.Interleaved, candidateSym.Interleaved, capacity)
		if err != nil {
			continue
		}

		leftSym, err := rebuildWithInterleaved(candidateSym, left)
		if err != nil {
			continue
		}
		rightSym, err := rebuildWithInterleaved(candidateSym, right)
		if err != nil {
			continue
		}

		mixed := blend(qrcode.Rasterize(leftSym.Matrix(), color.Black), qrcode.Rasterize(rightSym.Matrix(), color.Black))
		candidates = append(candidates, Candidate{Text: candidateText, Pivot: pivot, Mixed: mixed})
	}

	return candidates, nil
}

// rebuildWithInterleaved re-masks and redraws a symbol's matrix from an
// already-mixed interleaved codeword stream, keeping the symbol's
// version/level/mask fixed — Mix produces its two output streams directly
// in interleaved/transmission order, so drawing them only needs
// buildMatrix's placement and masking step, not a full Encode.
func rebuildWithInterleaved(template *qrcode.Symbol, interleaved []byte) (*qrcode.Symbol, error) {
	return qrcode.BuildFromInterleaved(template.Version, template.Level, template.Mask, interleaved)
}

// blend averages a and b per channel ((src+dst)//2), the same mixing rule
// original_source/misqr/whim.py applies via numpy before converting back
// to an 8-bit image.
func blend(a, b image.Image) image.Image {
	bounds := a.Bounds()
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ar, ag, ab, aa := a.At(x, y).RGBA()
			br, bg, bb, ba := b.At(x, y).RGBA()
			out.Set(x, y, color.RGBA{
				R: uint8((ar + br) / 2 >> 8),
				G: uint8((ag + bg) / 2 >> 8),
				B: uint8((ab + bb) / 2 >> 8),
				A: uint8((aa + ba) / 2 >> 8),
			})
		}
	}
	return out
}
