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
	"image"
	"image/color"
	"image/png"
	"io"
)

// Rasterize renders matrix (one entry per module, nonzero == dark) at one
// pixel per module using fg for dark modules and white for light ones. A
// caller wanting a larger image scales the result separately — this
// package only produces the canonical 1px-per-module bitmap, the same
// granularity as the teacher's String/ToSVGString module iteration.
func Rasterize(matrix [][]int, fg color.Color) image.Image {
	size := len(matrix)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y, row := range matrix {
		for x, v := range row {
			c := color.Color(color.White)
			if v != 0 {
				c = fg
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// PNG encodes img as a PNG into w.
func PNG(img image.Image, w io.Writer) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("PNG: %w", err)
	}
	return nil
}
