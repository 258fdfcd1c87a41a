package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, "25", percentage(4, 16).String())
	assert.Equal(t, "100", percentage(8, 8).String())
	assert.Equal(t, "33.33", percentage(1, 3).String(), "ratios round to two decimals")
	assert.True(t, percentage(5, 0).IsZero(), "zero total must not divide")
	assert.True(t, percentage(0, 10).IsZero())
}
