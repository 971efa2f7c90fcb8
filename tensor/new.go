package tensor

import (
	"fmt"
	"slices"

	"github.com/sw965/linen/dtype"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// New copies data into an array of the given shape, rounding every element to d.
func New(shape Shape, d dtype.DType, data []float64) (Array, error) {
	if !d.Valid() {
		return Array{}, fmt.Errorf("%w: invalid dtype %v", ErrDTypeMismatch, d)
	}
	if shape.Size() != len(data) {
		return Array{}, fmt.Errorf("%w: shape %v requires %d elements, got %d", ErrShapeMismatch, shape, shape.Size(), len(data))
	}
	y := slices.Clone(data)
	if y == nil {
		y = []float64{}
	}
	d.RoundSlice(y)
	return Array{Shape: shape.Clone(), DType: d, Data: y}, nil
}

// FromSlice builds an array whose dtype follows the Go element type.
func FromSlice[X constraints.Float](shape Shape, data []X) (Array, error) {
	d := dtype.Float32
	if _, ok := any(data).([]float64); ok {
		d = dtype.Float64
	}
	y := make([]float64, len(data))
	for i, v := range data {
		y[i] = float64(v)
	}
	return New(shape, d, y)
}

func FromFloat16s(shape Shape, data []float16.Float16) (Array, error) {
	y := make([]float64, len(data))
	for i, v := range data {
		y[i] = float64(v.Float32())
	}
	return New(shape, dtype.Float16, y)
}

// Scalar returns a rank-0 array.
func Scalar(v float64, d dtype.DType) Array {
	return Array{Shape: Shape{}, DType: d, Data: []float64{d.Round(v)}}
}

func Zeros(shape Shape, d dtype.DType) Array {
	return Array{Shape: shape.Clone(), DType: d, Data: make([]float64, shape.Size())}
}

func ZerosLike(a Array) Array {
	return Zeros(a.Shape, a.DType)
}

func (a Array) Float16s() []float16.Float16 {
	y := make([]float16.Float16, len(a.Data))
	for i, v := range a.Data {
		y[i] = float16.Fromfloat32(float32(v))
	}
	return y
}
