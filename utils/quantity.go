package utils

import (
	"fmt"
	"math"
)

// QuantityError is returned when an order item quantity fails validation.
type QuantityError struct {
	Message string
}

func (e *QuantityError) Error() string {
	return e.Message
}

// ValidateQuantity checks that an order item quantity is strictly positive
// and carries at most one decimal digit. Scales are in kg; vendors weigh to
// 0.1 kg, so 1.2 is fine and 1.25 is not. The precision check rounds to the
// nearest 0.1 and rejects when the rounded value drifts more than 0.001 from
// the input, which tolerates float noise without admitting a second decimal.
func ValidateQuantity(quantity float64) error {
	if quantity <= 0 {
		return &QuantityError{Message: "Khối lượng phải lớn hơn 0"}
	}

	rounded := math.Round(quantity*10) / 10
	if math.Abs(rounded-quantity) > 0.001 {
		return &QuantityError{Message: fmt.Sprintf("Khối lượng chỉ được tối đa 1 chữ số thập phân (nhận được %v)", quantity)}
	}

	return nil
}

// ValidateUnitPrice checks that a line item unit price is strictly positive.
func ValidateUnitPrice(unitPrice float64) error {
	if unitPrice <= 0 {
		return &QuantityError{Message: "Đơn giá phải lớn hơn 0"}
	}
	return nil
}
