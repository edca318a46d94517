package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOptional(t *testing.T) {
	assert.Nil(t, NormalizeOptional(nil))

	blank := "   "
	assert.Nil(t, NormalizeOptional(&blank))

	padded := "  555-0100 "
	got := NormalizeOptional(&padded)
	require.NotNil(t, got)
	assert.Equal(t, "555-0100", *got)

	// The input pointer is left alone.
	assert.Equal(t, "  555-0100 ", padded)
}
