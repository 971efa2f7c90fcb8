package activation

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/sw965/linen/tensor"
)

const (
	SeluAlpha = 1.6732632423543772848170429916717
	SeluScale = 1.0507009873554804934193349852946

	geluTanhCoeff = 0.044715
)

var sqrt2OverPi = math.Sqrt(2.0 / math.Pi)

func sigmoid64(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}

func sigmoid32(x float32) float32 {
	if x >= 0 {
		return 1.0 / (1.0 + math32.Exp(-x))
	}
	e := math32.Exp(x)
	return e / (1.0 + e)
}

func softplus64(x float64) float64 {
	return math.Max(x, 0) + math.Log1p(math.Exp(-math.Abs(x)))
}

func softplus32(x float32) float32 {
	m := x
	if m < 0 {
		m = 0
	}
	return m + math32.Log1p(math32.Exp(-math32.Abs(x)))
}

// clip はNaNをそのまま通す。
func clip64(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clip32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

var (
	reluKernel = tensor.UnaryKernel{
		F32: func(x float32) float32 { return clip32(x, 0, math32.Inf(1)) },
		F64: func(x float64) float64 { return clip64(x, 0, math.Inf(1)) },
	}

	relu6Kernel = tensor.UnaryKernel{
		F32: func(x float32) float32 { return clip32(x, 0, 6) },
		F64: func(x float64) float64 { return clip64(x, 0, 6) },
	}

	hardTanhKernel = tensor.UnaryKernel{
		F32: func(x float32) float32 { return clip32(x, -1, 1) },
		F64: func(x float64) float64 { return clip64(x, -1, 1) },
	}

	hardSigmoidKernel = tensor.UnaryKernel{
		F32: func(x float32) float32 { return clip32(x+3, 0, 6) / 6 },
		F64: func(x float64) float64 { return clip64(x+3, 0, 6) / 6 },
	}

	hardSwishKernel = tensor.UnaryKernel{
		F32: func(x float32) float32 { return x * clip32(x+3, 0, 6) / 6 },
		F64: func(x float64) float64 { return x * clip64(x+3, 0, 6) / 6 },
	}

	sigmoidKernel = tensor.UnaryKernel{F32: sigmoid32, F64: sigmoid64}

	logSigmoidKernel = tensor.UnaryKernel{
		F32: func(x float32) float32 { return -softplus32(-x) },
		F64: func(x float64) float64 { return -softplus64(-x) },
	}

	softplusKernel = tensor.UnaryKernel{F32: softplus32, F64: softplus64}

	softSignKernel = tensor.UnaryKernel{
		F32: func(x float32) float32 { return x / (math32.Abs(x) + 1) },
		F64: func(x float64) float64 { return x / (math.Abs(x) + 1) },
	}

	swishKernel = tensor.UnaryKernel{
		F32: func(x float32) float32 { return x * sigmoid32(x) },
		F64: func(x float64) float64 { return x * sigmoid64(x) },
	}

	tanhKernel = tensor.UnaryKernel{F32: math32.Tanh, F64: math.Tanh}

	geluTanhKernel = tensor.UnaryKernel{
		F32: func(x float32) float32 {
			c := float32(sqrt2OverPi)
			return 0.5 * x * (1 + math32.Tanh(c*(x+geluTanhCoeff*x*x*x)))
		},
		F64: func(x float64) float64 {
			return 0.5 * x * (1 + math.Tanh(sqrt2OverPi*(x+geluTanhCoeff*x*x*x)))
		},
	}

	// float32 版は持たず、float64 で計算して丸める。
	geluErfKernel = tensor.UnaryKernel{
		F64: func(x float64) float64 { return 0.5 * x * (1 + math.Erf(x/math.Sqrt2)) },
	}
)

func leakyReLUKernel(slope float64) tensor.UnaryKernel {
	s32 := float32(slope)
	return tensor.UnaryKernel{
		F32: func(x float32) float32 {
			if x >= 0 {
				return x
			}
			return s32 * x
		},
		F64: func(x float64) float64 {
			if x >= 0 {
				return x
			}
			return slope * x
		},
	}
}

func eluKernel(alpha, scale float64) tensor.UnaryKernel {
	a32, s32 := float32(alpha), float32(scale)
	return tensor.UnaryKernel{
		F32: func(x float32) float32 {
			if x > 0 {
				return s32 * x
			}
			return s32 * a32 * math32.Expm1(x)
		},
		F64: func(x float64) float64 {
			if x > 0 {
				return scale * x
			}
			return scale * alpha * math.Expm1(x)
		},
	}
}

func celuKernel(alpha float64) tensor.UnaryKernel {
	a32 := float32(alpha)
	return tensor.UnaryKernel{
		F32: func(x float32) float32 {
			pos, neg := x, x
			if pos < 0 {
				pos = 0
			}
			if neg > 0 {
				neg = 0
			}
			return pos + a32*math32.Expm1(neg/a32)
		},
		F64: func(x float64) float64 {
			return math.Max(x, 0) + alpha*math.Expm1(math.Min(x, 0)/alpha)
		},
	}
}
