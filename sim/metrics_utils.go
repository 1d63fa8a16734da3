// sim/metrics_utils.go
package sim

import "golang.org/x/exp/constraints"

// Number is any integer or floating-point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// sumBy sums f over items.
func sumBy[E any, T Number](items []E, f func(E) T) T {
	var sum T
	for _, item := range items {
		sum += f(item)
	}
	return sum
}
