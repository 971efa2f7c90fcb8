package optimizer

import (
	"fmt"

	"github.com/sw965/linen/param"
	"github.com/sw965/linen/tensor"
	"gonum.org/v1/gonum/floats"
)

// Momentum is SGD with momentum:
//
//	v = momentum * v - lr * grad
//	w = w + v
//
// Updated values are rounded to the dtype of each parameter.
type Momentum struct {
	Momentum float64
	velocity map[string][]float64
}

func NewMomentum(momentum float64) *Momentum {
	return &Momentum{Momentum: momentum, velocity: map[string][]float64{}}
}

// Step updates every parameter that has a gradient in grads.
func (opt *Momentum) Step(params, grads param.Params, lr float64) error {
	if opt.velocity == nil {
		opt.velocity = map[string][]float64{}
	}
	for key, grad := range grads {
		w, err := params.Get(key)
		if err != nil {
			return err
		}
		if !w.Shape.Equal(grad.Shape) {
			return fmt.Errorf("%w: %q param %v, grad %v", tensor.ErrShapeMismatch, key, w.Shape, grad.Shape)
		}

		v, ok := opt.velocity[key]
		if !ok {
			v = make([]float64, w.Size())
			opt.velocity[key] = v
		}
		floats.Scale(opt.Momentum, v)
		floats.AddScaled(v, -lr, grad.Data)

		updated := w.Clone()
		floats.Add(updated.Data, v)
		updated.DType.RoundSlice(updated.Data)
		params[key] = updated
	}
	return nil
}
