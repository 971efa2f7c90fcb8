package mathx

import (
	"golang.org/x/exp/constraints"
)

func CentralDifference[X constraints.Float](plusY, minusY, h X) X {
	return (plusY - minusY) / (2.0 * h)
}

// NumericalGradient estimates the gradient of f at xs by central differences.
// xs is restored before returning.
func NumericalGradient[X constraints.Float](xs []X, f func([]X) X, h X) []X {
	grad := make([]X, len(xs))
	for i := range xs {
		tmp := xs[i]

		xs[i] = tmp + h
		y1 := f(xs)

		xs[i] = tmp - h
		y2 := f(xs)

		grad[i] = CentralDifference(y1, y2, h)
		xs[i] = tmp
	}
	return grad
}
