package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misqr/misqr/qrcode"
)

// firstCamouflageTarget must never point at a reserved (function/format)
// cell — pasting a camouflage tile there would corrupt a finder, timing,
// alignment, or format/version-info pattern every decoder depends on,
// rather than spending error-correction slack the way a data-area paste
// does.
func TestFirstCamouflageTargetAvoidsReservedCells(t *testing.T) {
	payloads := []struct {
		data  string
		vers  qrcode.Version
		level qrcode.ECLevel
		mask  qrcode.Mask
	}{
		{"http://example.com", 4, qrcode.ECLevelHigh, 0},
		{"hello, world", 2, qrcode.ECLevelHigh, 2},
		{"a small payload", 5, qrcode.ECLevelQuartile, 3},
	}

	for _, p := range payloads {
		sym, err := qrcode.Encode([]byte(p.data), p.vers, p.level, p.mask)
		require.NoError(t, err)

		x, y, ok := firstCamouflageTarget(sym)
		if !ok {
			continue // No eligible light module; nothing to assert.
		}
		assert.Falsef(t, sym.Reserved(x, y), "%q: target (%d,%d) must not be a reserved cell", p.data, x, y)
		assert.Greaterf(t, x, 9, "%q: target x must clear the finder/format border", p.data)
		assert.Greaterf(t, y, 9, "%q: target y must clear the finder/format border", p.data)

		matrix := sym.Matrix()
		assert.Equalf(t, 0, matrix[y][x], "%q: target (%d,%d) must be a light module", p.data, x, y)
	}
}

func TestFirstCamouflageTargetReportsNoneOutOfBounds(t *testing.T) {
	_, _, ok := firstCamouflageTarget(&qrcode.Symbol{Modules: nil})
	assert.False(t, ok)
}
