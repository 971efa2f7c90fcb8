package tensor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sw965/linen/dtype"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrShapeMismatch  = errors.New("shape mismatch")
	ErrDTypeMismatch  = errors.New("dtype mismatch")
	ErrAxisOutOfRange = errors.New("axis out of range")
)

type Shape []int

func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

func (s Shape) Rank() int {
	return len(s)
}

func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

func (s Shape) Clone() Shape {
	if s == nil {
		return Shape{}
	}
	return slices.Clone(s)
}

// Axis は負のaxisを末尾から数えた位置に直す。
func (s Shape) Axis(axis int) (int, error) {
	rank := len(s)
	a := axis
	if a < 0 {
		a += rank
	}
	if a < 0 || a >= rank {
		return 0, fmt.Errorf("%w: axis %d for rank %d", ErrAxisOutOfRange, axis, rank)
	}
	return a, nil
}

func (s Shape) String() string {
	return fmt.Sprint([]int(s))
}

// Array is a dense row-major n-d array.
// Every element of Data is representable in DType.
type Array struct {
	Shape Shape
	DType dtype.DType
	Data  []float64
}

// Validate はDataの長さがShapeと一致するかを確かめる。
// 零値のArrayはrank 0なので1要素を要求され、ここで弾かれる。
func (a Array) Validate() error {
	if len(a.Data) != a.Shape.Size() {
		return fmt.Errorf("%w: shape %v needs %d elements, got %d", ErrShapeMismatch, a.Shape, a.Shape.Size(), len(a.Data))
	}
	return nil
}

func (a Array) Size() int {
	return len(a.Data)
}

func (a Array) Rank() int {
	return len(a.Shape)
}

func (a Array) Clone() Array {
	return Array{
		Shape: a.Shape.Clone(),
		DType: a.DType,
		Data:  slices.Clone(a.Data),
	}
}

func (a Array) Item() (float64, error) {
	if len(a.Data) != 1 {
		return 0, fmt.Errorf("%w: Item requires a single element, got shape %v", ErrShapeMismatch, a.Shape)
	}
	return a.Data[0], nil
}

func (a Array) Reshape(shape Shape) (Array, error) {
	shape = shape.Clone()
	infer := -1
	known := 1
	for i, d := range shape {
		if d == -1 {
			if infer != -1 {
				return Array{}, fmt.Errorf("%w: more than one -1 in %v", ErrShapeMismatch, shape)
			}
			infer = i
			continue
		}
		known *= d
	}
	if infer != -1 {
		if known == 0 || len(a.Data)%known != 0 {
			return Array{}, fmt.Errorf("%w: cannot reshape %v to %v", ErrShapeMismatch, a.Shape, shape)
		}
		shape[infer] = len(a.Data) / known
	}
	if shape.Size() != len(a.Data) {
		return Array{}, fmt.Errorf("%w: cannot reshape %v to %v", ErrShapeMismatch, a.Shape, shape)
	}
	return Array{Shape: shape, DType: a.DType, Data: slices.Clone(a.Data)}, nil
}

// Astype returns a copy of a cast to d.
func (a Array) Astype(d dtype.DType) Array {
	y := a.Clone()
	y.DType = d
	if d.Bits() < a.DType.Bits() {
		d.RoundSlice(y.Data)
	}
	return y
}

func (a Array) Float64s() []float64 {
	return slices.Clone(a.Data)
}

func (a Array) Float32s() []float32 {
	y := make([]float32, len(a.Data))
	for i, v := range a.Data {
		y[i] = float32(v)
	}
	return y
}

// Equal はshape, dtype, 各要素のビットが一致するかを返す。NaN同士は等しいとみなす。
func Equal(a, b Array) bool {
	if a.DType != b.DType || !a.Shape.Equal(b.Shape) {
		return false
	}
	return floats.Same(a.Data, b.Data)
}

func AllClose(a, b Array, tol float64) bool {
	if a.DType != b.DType || !a.Shape.Equal(b.Shape) {
		return false
	}
	return floats.EqualApprox(a.Data, b.Data, tol)
}

func (a Array) String() string {
	return fmt.Sprintf("Array(shape=%v, dtype=%v, data=%v)", a.Shape, a.DType, a.Data)
}
