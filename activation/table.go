package activation

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/sw965/linen/tensor"
)

var ErrUnknownActivation = errors.New("unknown activation")

// Func is a catalogue entry. Parameterised functions are bound to their defaults.
type Func func(tensor.Array) (tensor.Array, error)

func elementwise(f func(tensor.Array) tensor.Array) Func {
	return func(x tensor.Array) (tensor.Array, error) {
		return f(x), nil
	}
}

func alongAxis(f func(tensor.Array, int) (tensor.Array, error)) Func {
	return func(x tensor.Array) (tensor.Array, error) {
		return f(x, DefaultAxis)
	}
}

var table = map[string]Func{
	"celu": elementwise(func(x tensor.Array) tensor.Array { return Celu(x, DefaultCeluAlpha) }),
	"elu":  elementwise(func(x tensor.Array) tensor.Array { return Elu(x, DefaultEluAlpha) }),
	"gelu": elementwise(func(x tensor.Array) tensor.Array { return Gelu(x, DefaultGeluApproximate) }),
	"glu":  alongAxis(Glu),
	"leaky_relu": elementwise(func(x tensor.Array) tensor.Array {
		return LeakyReLU(x, DefaultLeakyReLUSlope)
	}),
	"log_sigmoid": elementwise(LogSigmoid),
	"log_softmax": alongAxis(LogSoftmax),
	"normalize": func(x tensor.Array) (tensor.Array, error) {
		return Normalize(x, DefaultAxis, DefaultNormalizeEpsilon)
	},
	"relu":         elementwise(ReLU),
	"sigmoid":      elementwise(Sigmoid),
	"soft_sign":    elementwise(SoftSign),
	"softmax":      alongAxis(Softmax),
	"softplus":     elementwise(Softplus),
	"swish":        elementwise(Swish),
	"silu":         elementwise(Silu),
	"selu":         elementwise(Selu),
	"hard_tanh":    elementwise(HardTanh),
	"relu6":        elementwise(ReLU6),
	"hard_sigmoid": elementwise(HardSigmoid),
	"hard_swish":   elementwise(HardSwish),
	"tanh":         elementwise(Tanh),
}

func Lookup(name string) (Func, error) {
	f, ok := table[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
	return f, nil
}

func Names() []string {
	return slices.Sorted(maps.Keys(table))
}

func Len() int {
	return len(table)
}
