package tensor

import (
	"fmt"
)

// lanes returns the strides that split a along axis into
// outer * inner lanes of n elements each.
func (a Array) lanes(axis int) (outer, n, inner int, err error) {
	if err := a.Validate(); err != nil {
		return 0, 0, 0, err
	}
	ax, err := a.Shape.Axis(axis)
	if err != nil {
		return 0, 0, 0, err
	}
	outer, inner = 1, 1
	for _, d := range a.Shape[:ax] {
		outer *= d
	}
	for _, d := range a.Shape[ax+1:] {
		inner *= d
	}
	return outer, a.Shape[ax], inner, nil
}

// MapLanes copies every 1-d lane along axis into a buffer, lets f rewrite it
// in place and writes the rounded result into a new array.
func (a Array) MapLanes(axis int, f func(lane []float64)) (Array, error) {
	outer, n, inner, err := a.lanes(axis)
	if err != nil {
		return Array{}, err
	}
	y := a.Clone()
	if n == 0 {
		return y, nil
	}

	lane := make([]float64, n)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			base := o*n*inner + i
			for k := 0; k < n; k++ {
				lane[k] = y.Data[base+k*inner]
			}
			f(lane)
			for k := 0; k < n; k++ {
				y.Data[base+k*inner] = lane[k]
			}
		}
	}
	y.DType.RoundSlice(y.Data)
	return y, nil
}

// SplitHalves splits a into two equal halves along axis.
func (a Array) SplitHalves(axis int) (Array, Array, error) {
	outer, n, inner, err := a.lanes(axis)
	if err != nil {
		return Array{}, Array{}, err
	}
	if n%2 != 0 {
		return Array{}, Array{}, fmt.Errorf("%w: axis %d has odd size %d", ErrShapeMismatch, axis, n)
	}

	ax, _ := a.Shape.Axis(axis)
	shape := a.Shape.Clone()
	shape[ax] = n / 2
	first := Zeros(shape, a.DType)
	second := Zeros(shape, a.DType)

	half := n / 2 * inner
	for o := 0; o < outer; o++ {
		src := a.Data[o*n*inner : (o+1)*n*inner]
		copy(first.Data[o*half:(o+1)*half], src[:half])
		copy(second.Data[o*half:(o+1)*half], src[half:])
	}
	return first, second, nil
}
