package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misqr/misqr/qrcode"
)

// Run over "http://example.com" at index 16 (the 'o' of ".com") must find
// "http://example.cnm" among its candidates: a single-character substitute
// whose codeword-level Diff against the original equals exactly
// 2*capacity+1 and Mixes around a single-bit pivot.
func TestRunFindsExampleURLSubstituteWithValidPivot(t *testing.T) {
	const data = "http://example.com"
	const index = 16
	require.Equal(t, byte('o'), data[index])

	candidates, err := Run(data, index, 4, qrcode.ECLevelHigh, 0)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	var found *Candidate
	for i := range candidates {
		if candidates[i].Text == "http://example.cnm" {
			found = &candidates[i]
			break
		}
	}
	require.NotNil(t, found, "expected http://example.cnm among the candidates")
	assert.GreaterOrEqual(t, found.Pivot, 0)
	assert.NotNil(t, found.Mixed)
}

func TestRunRejectsOutOfRangeIndex(t *testing.T) {
	_, err := Run("hi", 5, 1, qrcode.ECLevelLow, 0)
	assert.Error(t, err)
}

func TestRunSkipsTheOriginalCharacterItself(t *testing.T) {
	candidates, err := Run("http://example.com", 16, 4, qrcode.ECLevelHigh, 0)
	require.NoError(t, err)
	for _, c := range candidates {
		assert.NotEqual(t, "http://example.com", c.Text)
	}
}
