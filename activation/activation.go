// Package activation provides the standard elementwise activation functions
// over tensor.Array and a catalogue that looks them up by name.
//
// Every function returns a new array of the same shape and dtype as its input
// and never mutates the input. Axis arguments count from the end when negative.
package activation

import (
	"math"

	"github.com/sw965/linen/tensor"
	"gonum.org/v1/gonum/floats"
)

const (
	DefaultAxis             = -1
	DefaultCeluAlpha        = 1.0
	DefaultEluAlpha         = 1.0
	DefaultLeakyReLUSlope   = 0.01
	DefaultNormalizeEpsilon = 1e-5
	DefaultGeluApproximate  = true
)

func Celu(x tensor.Array, alpha float64) tensor.Array {
	return x.Apply(celuKernel(alpha))
}

func Elu(x tensor.Array, alpha float64) tensor.Array {
	return x.Apply(eluKernel(alpha, 1.0))
}

// Gelu uses the tanh approximation when approximate is true and the erf form otherwise.
func Gelu(x tensor.Array, approximate bool) tensor.Array {
	if approximate {
		return x.Apply(geluTanhKernel)
	}
	return x.Apply(geluErfKernel)
}

// Glu splits x in half along axis and returns a * sigmoid(b).
func Glu(x tensor.Array, axis int) (tensor.Array, error) {
	a, b, err := x.SplitHalves(axis)
	if err != nil {
		return tensor.Array{}, err
	}
	return tensor.Mul(a, Sigmoid(b))
}

func LeakyReLU(x tensor.Array, negativeSlope float64) tensor.Array {
	return x.Apply(leakyReLUKernel(negativeSlope))
}

func LogSigmoid(x tensor.Array) tensor.Array {
	return x.Apply(logSigmoidKernel)
}

func LogSoftmax(x tensor.Array, axis int) (tensor.Array, error) {
	return x.MapLanes(axis, func(lane []float64) {
		floats.AddConst(-floats.Max(lane), lane)
		sum := 0.0
		for _, v := range lane {
			sum += math.Exp(v)
		}
		floats.AddConst(-math.Log(sum), lane)
	})
}

// Normalize standardises x along axis to zero mean and unit variance.
func Normalize(x tensor.Array, axis int, epsilon float64) (tensor.Array, error) {
	return x.MapLanes(axis, func(lane []float64) {
		n := float64(len(lane))
		mean := floats.Sum(lane) / n
		variance := floats.Dot(lane, lane)/n - mean*mean
		floats.AddConst(-mean, lane)
		floats.Scale(1/math.Sqrt(variance+epsilon), lane)
	})
}

func ReLU(x tensor.Array) tensor.Array {
	return x.Apply(reluKernel)
}

func ReLU6(x tensor.Array) tensor.Array {
	return x.Apply(relu6Kernel)
}

func Sigmoid(x tensor.Array) tensor.Array {
	return x.Apply(sigmoidKernel)
}

func SoftSign(x tensor.Array) tensor.Array {
	return x.Apply(softSignKernel)
}

func Softmax(x tensor.Array, axis int) (tensor.Array, error) {
	return x.MapLanes(axis, func(lane []float64) {
		floats.AddConst(-floats.Max(lane), lane)
		for i, v := range lane {
			lane[i] = math.Exp(v)
		}
		floats.Scale(1/floats.Sum(lane), lane)
	})
}

func Softplus(x tensor.Array) tensor.Array {
	return x.Apply(softplusKernel)
}

func Swish(x tensor.Array) tensor.Array {
	return x.Apply(swishKernel)
}

// Silu is another name for Swish.
func Silu(x tensor.Array) tensor.Array {
	return Swish(x)
}

func Selu(x tensor.Array) tensor.Array {
	return x.Apply(eluKernel(SeluAlpha, SeluScale))
}

func HardTanh(x tensor.Array) tensor.Array {
	return x.Apply(hardTanhKernel)
}

func HardSigmoid(x tensor.Array) tensor.Array {
	return x.Apply(hardSigmoidKernel)
}

func HardSwish(x tensor.Array) tensor.Array {
	return x.Apply(hardSwishKernel)
}

func Tanh(x tensor.Array) tensor.Array {
	return x.Apply(tanhKernel)
}
