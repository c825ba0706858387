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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGFMulZero(t *testing.T) {
	assert.Equal(t, byte(0), gfMul(0, 42))
	assert.Equal(t, byte(0), gfMul(42, 0))
}

func TestGFMulOneIsIdentity(t *testing.T) {
	for x := 1; x < 256; x++ {
		assert.Equal(t, byte(x), gfMul(byte(x), 1))
	}
}

func TestGFDivInverseOfMul(t *testing.T) {
	for x := 1; x < 256; x++ {
		for y := 1; y < 256; y++ {
			product := gfMul(byte(x), byte(y))
			quotient, err := gfDiv(product, byte(y))
			require.NoError(t, err)
			assert.Equal(t, byte(x), quotient)
		}
	}
}

func TestGFDivByZero(t *testing.T) {
	_, err := gfDiv(5, 0)
	assert.Error(t, err)
}

func TestRSGeneratorDegree(t *testing.T) {
	for n := 1; n <= 30; n++ {
		gen := rsGenerator(n)
		assert.Len(t, gen, n)
	}
}

func TestRSRemainderLength(t *testing.T) {
	divisor := rsGenerator(10)
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	rem := rsRemainder(data, divisor)
	assert.Len(t, rem, 10)
}

func TestBCHDivideFormatInfoWidth(t *testing.T) {
	rem := bchDivide(0, 5, 10, formatGeneratorG15)
	assert.Less(t, rem, uint32(1<<10))
}

func TestBitAt(t *testing.T) {
	assert.True(t, bitAt(0b101, 0))
	assert.False(t, bitAt(0b101, 1))
	assert.True(t, bitAt(0b101, 2))
}
