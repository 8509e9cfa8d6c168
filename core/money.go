package core

import "fmt"

// Cents represents a monetary amount in whole cents.
// Fine arithmetic stays in integer cents, so amounts never accumulate
// floating point drift.
type Cents int64

// String formats the amount as a decimal string, e.g. 300 -> "3.00".
func (c Cents) String() string {
	sign := ""
	value := int64(c)

	if value < 0 {
		sign = "-"
		value = -value
	}

	return fmt.Sprintf("%s%d.%02d", sign, value/100, value%100)
}
