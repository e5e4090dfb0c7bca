package a3plus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsInt(t *testing.T) {
	assert.Equal(t, 5, absInt(-5))
	assert.Equal(t, 5, absInt(5))
	assert.Equal(t, 0, absInt(0))
}

func TestBuildCanonicalDescriptor_OrdersByDistanceFromCenter(t *testing.T) {
	_, order := buildCanonicalDescriptor(5, 2)
	assert.Equal(t, int32(2), order[0], "closest symbol to center sorts first")
}

func TestBuildCanonicalDescriptor_CountsSumToN(t *testing.T) {
	desc, _ := buildCanonicalDescriptor(17, 8)
	minLen, maxLen := desc[0], desc[1]
	sum := 0
	for _, c := range desc[2:] {
		sum += c
	}
	assert.Equal(t, 17, sum)
	assert.Equal(t, 2, minLen)
	assert.Equal(t, 6, maxLen)
}

func TestCodebookIndex_WithinBounds(t *testing.T) {
	idx := codebookIndex(1, 1, 1, 7)
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 112)
}

func TestReadDelta_ZeroCenteredTableHasZeroValue(t *testing.T) {
	assert.Contains(t, deltaVLCValues, int32(0))
}
