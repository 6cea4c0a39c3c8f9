package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuantity(t *testing.T) {
	valid := []float64{0.1, 1, 1.2, 2.5, 10, 99.9}
	for _, quantity := range valid {
		assert.NoError(t, ValidateQuantity(quantity), "quantity %v", quantity)
	}

	invalid := []float64{0, -1, -0.1, 1.25, 0.05, 3.141}
	for _, quantity := range invalid {
		assert.Error(t, ValidateQuantity(quantity), "quantity %v", quantity)
	}
}

func TestValidateQuantity_FloatNoise(t *testing.T) {
	// 0.1+0.2 is not exactly 0.3 in binary; the tolerance must still accept it
	assert.NoError(t, ValidateQuantity(0.1+0.2))
}

func TestValidateUnitPrice(t *testing.T) {
	assert.NoError(t, ValidateUnitPrice(15000))
	assert.NoError(t, ValidateUnitPrice(0.5))
	assert.Error(t, ValidateUnitPrice(0))
	assert.Error(t, ValidateUnitPrice(-15000))
}
