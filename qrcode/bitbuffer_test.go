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
)

func TestAppendIntMSBFirst(t *testing.T) {
	var bb bitBuffer
	bb.appendInt(0b1011, 4, msbFirst)
	assert.Equal(t, bitBuffer{true, false, true, true}, bb)
}

func TestAppendIntLSBFirst(t *testing.T) {
	var bb bitBuffer
	bb.appendInt(0b1011, 4, lsbFirst)
	assert.Equal(t, bitBuffer{true, true, false, true}, bb)
}

func TestAppendBytes(t *testing.T) {
	var bb bitBuffer
	bb.appendBytes([]byte{0xA5})
	assert.Equal(t, bitBuffer{true, false, true, false, false, true, false, true}, bb)
}

func TestToBytesPadsWithZero(t *testing.T) {
	var bb bitBuffer
	bb.appendInt(0b101, 3, msbFirst)
	got := bb.toBytes()
	assert.Equal(t, []byte{0b10100000}, got)
}

func TestConcat(t *testing.T) {
	var a, b bitBuffer
	a.appendInt(0b1, 1, msbFirst)
	b.appendInt(0b0, 1, msbFirst)
	assert.Equal(t, bitBuffer{true, false}, a.concat(b))
}

func TestAppendBytesRoundTripsToBytes(t *testing.T) {
	var bb bitBuffer
	data := []byte{0x00, 0xFF, 0x5A, 0x01}
	bb.appendBytes(data)
	assert.Equal(t, data, bb.toBytes())
}
