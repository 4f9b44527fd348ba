package handlers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	assert.Equal(t, 0, clampPage(-3, 20))
	assert.Equal(t, 4, clampPage(4, 20))
	assert.Equal(t, math.MaxInt32/20, clampPage(math.MaxInt, 20))
	assert.LessOrEqual(t, clampPage(math.MaxInt, 20)*20, math.MaxInt32)
	assert.Equal(t, 7, clampPage(7, 0))
}
