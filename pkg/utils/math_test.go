// pkg/utils/math_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMetres(t *testing.T) {
	assert.Equal(t, 0, RoundMetres(-3.2))
	assert.Equal(t, 60, RoundMetres(59.5))
	assert.Equal(t, 59, RoundMetres(59.49))
}
