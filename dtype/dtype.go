package dtype

import (
	"fmt"
	"strings"

	"github.com/x448/float16"
)

type DType int

// Float32 は零値であり、既定の dtype。
const (
	Float32 DType = iota
	Float16
	Float64
)

func Parse(s string) (DType, error) {
	switch strings.ToLower(s) {
	case "float32", "f32":
		return Float32, nil
	case "float16", "f16":
		return Float16, nil
	case "float64", "f64":
		return Float64, nil
	}
	return 0, fmt.Errorf("unknown dtype %q", s)
}

func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("DType(%d)", int(d))
}

func (d DType) Valid() bool {
	return d == Float32 || d == Float16 || d == Float64
}

func (d DType) Bits() int {
	switch d {
	case Float16:
		return 16
	case Float64:
		return 64
	}
	return 32
}

// Round returns the value of d nearest to v.
// Float16 is rounded through float32.
func (d DType) Round(v float64) float64 {
	switch d {
	case Float16:
		return float64(float16.Fromfloat32(float32(v)).Float32())
	case Float64:
		return v
	}
	return float64(float32(v))
}

func (d DType) RoundSlice(xs []float64) {
	if d == Float64 {
		return
	}
	for i, x := range xs {
		xs[i] = d.Round(x)
	}
}
