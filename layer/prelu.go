package layer

import (
	"fmt"
	"math/rand/v2"

	"github.com/sw965/linen/dtype"
	"github.com/sw965/linen/param"
	"github.com/sw965/linen/tensor"
)

const (
	NegativeSlopeKey         = "negative_slope"
	DefaultNegativeSlopeInit = 0.01
)

// PReLU is the parametric rectified linear unit
//
//	f(x) = x          if x >= 0
//	f(x) = slope * x  otherwise
//
// where slope is a trainable scalar shared by every element.
// NegativeSlopeInit is not validated.
type PReLU struct {
	NegativeSlopeInit float64
}

func NewPReLU() PReLU {
	return PReLU{NegativeSlopeInit: DefaultNegativeSlopeInit}
}

type PReLUState struct {
	NegativeSlope tensor.Array
}

// InitState creates the slope as a rank-0 float32, whatever the input dtype will be.
func (l PReLU) InitState() PReLUState {
	return PReLUState{NegativeSlope: tensor.Scalar(l.NegativeSlopeInit, dtype.Float32)}
}

func (l PReLU) initializer() param.Initializer {
	return param.Constant(l.NegativeSlopeInit, dtype.Float32)
}

// Forward casts the slope to the dtype of x before use, so the output keeps
// the dtype of x.
func (l PReLU) Forward(s PReLUState, x tensor.Array) (tensor.Array, error) {
	if err := x.Validate(); err != nil {
		return tensor.Array{}, err
	}
	slope := s.NegativeSlope.Astype(x.DType)
	neg, err := tensor.Mul(slope, x)
	if err != nil {
		return tensor.Array{}, err
	}
	return tensor.Where(x.GreaterEqual(0), x, neg)
}

func (l PReLU) ForwardWithBackward(s PReLUState, x tensor.Array) (tensor.Array, Backward, error) {
	y, err := l.Forward(s, x)
	if err != nil {
		return tensor.Array{}, nil, err
	}

	mask := x.GreaterEqual(0)
	var backward Backward
	backward = func(chain tensor.Array) (tensor.Array, param.Params, error) {
		if err := chain.Validate(); err != nil {
			return tensor.Array{}, nil, err
		}
		if !chain.Shape.Equal(x.Shape) {
			return tensor.Array{}, nil, fmt.Errorf("%w: chain %v, x %v", tensor.ErrShapeMismatch, chain.Shape, x.Shape)
		}
		slope, err := s.NegativeSlope.Astype(x.DType).Item()
		if err != nil {
			return tensor.Array{}, nil, err
		}

		// ∂L/∂x
		dx := tensor.ZerosLike(x)
		// ∂L/∂slope
		dSlope := 0.0
		for i, ok := range mask.Data {
			if ok {
				dx.Data[i] = chain.Data[i]
			} else {
				dx.Data[i] = slope * chain.Data[i]
				dSlope += x.Data[i] * chain.Data[i]
			}
		}
		x.DType.RoundSlice(dx.Data)
		grads := param.Params{NegativeSlopeKey: tensor.Scalar(dSlope, s.NegativeSlope.DType)}
		return dx, grads, nil
	}
	return y, backward, nil
}

func (l PReLU) Init(rng *rand.Rand) (param.Params, error) {
	params := param.Params{}
	if _, err := params.Param(NegativeSlopeKey, l.initializer(), rng); err != nil {
		return nil, err
	}
	return params, nil
}

// State reads the slope from params. It never creates it.
func (l PReLU) State(params param.Params) (PReLUState, error) {
	slope, ok := params[NegativeSlopeKey]
	if !ok {
		return PReLUState{}, fmt.Errorf("%w: missing %q", ErrNotInitialized, NegativeSlopeKey)
	}
	return PReLUState{NegativeSlope: slope}, nil
}

func (l PReLU) Apply(params param.Params, x tensor.Array) (tensor.Array, error) {
	s, err := l.State(params)
	if err != nil {
		return tensor.Array{}, err
	}
	return l.Forward(s, x)
}

func (l PReLU) Propagate(params param.Params, x tensor.Array) (tensor.Array, Backward, error) {
	s, err := l.State(params)
	if err != nil {
		return tensor.Array{}, nil, err
	}
	return l.ForwardWithBackward(s, x)
}
