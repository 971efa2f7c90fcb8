package tensor

import (
	"fmt"

	"github.com/sw965/linen/dtype"
)

// UnaryKernel is one elementwise function specialised per precision.
// F32 serves Float32 and Float16 (computed in float32, then rounded); when
// F32 is nil those dtypes fall back to F64.
type UnaryKernel struct {
	F32 func(float32) float32
	F64 func(float64) float64
}

func (a Array) Apply(k UnaryKernel) Array {
	y := make([]float64, len(a.Data))
	if a.DType == dtype.Float64 || k.F32 == nil {
		for i, x := range a.Data {
			y[i] = k.F64(x)
		}
	} else {
		for i, x := range a.Data {
			y[i] = float64(k.F32(float32(x)))
		}
	}
	a.DType.RoundSlice(y)
	return Array{Shape: a.Shape.Clone(), DType: a.DType, Data: y}
}

type Mask struct {
	Shape Shape
	Data  []bool
}

func (a Array) GreaterEqual(s float64) Mask {
	m := make([]bool, len(a.Data))
	for i, x := range a.Data {
		m[i] = x >= s
	}
	return Mask{Shape: a.Shape.Clone(), Data: m}
}

// Where selects a where mask is true and b elsewhere.
// a and b broadcast when they hold a single element.
func Where(mask Mask, a, b Array) (Array, error) {
	if len(mask.Data) != mask.Shape.Size() {
		return Array{}, fmt.Errorf("%w: mask shape %v needs %d elements, got %d", ErrShapeMismatch, mask.Shape, mask.Shape.Size(), len(mask.Data))
	}
	if err := validatePair(a, b); err != nil {
		return Array{}, err
	}
	if a.DType != b.DType {
		return Array{}, fmt.Errorf("%w: where %v and %v", ErrDTypeMismatch, a.DType, b.DType)
	}
	ai, err := broadcastIndex(a, mask.Shape)
	if err != nil {
		return Array{}, err
	}
	bi, err := broadcastIndex(b, mask.Shape)
	if err != nil {
		return Array{}, err
	}

	y := make([]float64, len(mask.Data))
	for i, ok := range mask.Data {
		if ok {
			y[i] = a.Data[ai(i)]
		} else {
			y[i] = b.Data[bi(i)]
		}
	}
	return Array{Shape: mask.Shape.Clone(), DType: a.DType, Data: y}, nil
}

func Mul(a, b Array) (Array, error) {
	return binary(a, b, func(x, y float64) float64 { return x * y })
}

func Add(a, b Array) (Array, error) {
	return binary(a, b, func(x, y float64) float64 { return x + y })
}

func validatePair(a, b Array) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return b.Validate()
}

func binary(a, b Array, f func(float64, float64) float64) (Array, error) {
	if err := validatePair(a, b); err != nil {
		return Array{}, err
	}
	if a.DType != b.DType {
		return Array{}, fmt.Errorf("%w: %v and %v", ErrDTypeMismatch, a.DType, b.DType)
	}
	shape := a.Shape
	if len(a.Data) == 1 && (len(b.Data) != 1 || b.Rank() > a.Rank()) {
		shape = b.Shape
	}
	ai, err := broadcastIndex(a, shape)
	if err != nil {
		return Array{}, err
	}
	bi, err := broadcastIndex(b, shape)
	if err != nil {
		return Array{}, err
	}

	y := make([]float64, shape.Size())
	for i := range y {
		y[i] = f(a.Data[ai(i)], b.Data[bi(i)])
	}
	a.DType.RoundSlice(y)
	return Array{Shape: shape.Clone(), DType: a.DType, Data: y}, nil
}

// broadcastIndex は出力の平坦なindexからaのindexへの写像を返す。
// 単一要素の配列だけが任意のshapeにbroadcastできる。
func broadcastIndex(a Array, shape Shape) (func(int) int, error) {
	if a.Shape.Equal(shape) {
		return func(i int) int { return i }, nil
	}
	if len(a.Data) == 1 && a.Rank() <= shape.Rank() {
		return func(int) int { return 0 }, nil
	}
	return nil, fmt.Errorf("%w: cannot broadcast %v to %v", ErrShapeMismatch, a.Shape, shape)
}
