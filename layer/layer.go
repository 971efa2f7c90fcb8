package layer

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/sw965/linen/activation"
	"github.com/sw965/linen/param"
	"github.com/sw965/linen/tensor"
	"github.com/sw965/omw/parallel"
)

var ErrNotInitialized = errors.New("module is not initialized")

// Module transforms x using the parameters it owns.
// Stateless modules ignore params.
type Module interface {
	Apply(params param.Params, x tensor.Array) (tensor.Array, error)
}

// Parameterized modules create their parameters explicitly with Init.
type Parameterized interface {
	Init(rng *rand.Rand) (param.Params, error)
}

// Backward maps the gradient of the output to the gradient of the input and
// the gradients of the parameters, keyed like the parameters.
type Backward func(chain tensor.Array) (tensor.Array, param.Params, error)

// Activation is a stateless module backed by a catalogue entry.
type Activation struct {
	name string
	f    activation.Func
}

func NewActivation(name string) (Activation, error) {
	f, err := activation.Lookup(name)
	if err != nil {
		return Activation{}, err
	}
	return Activation{name: name, f: f}, nil
}

func (a Activation) Name() string {
	return a.name
}

func (a Activation) Apply(_ param.Params, x tensor.Array) (tensor.Array, error) {
	return a.f(x)
}

func Init(m Module, rng *rand.Rand) (param.Params, error) {
	if pm, ok := m.(Parameterized); ok {
		return pm.Init(rng)
	}
	return param.Params{}, nil
}

// Sequential applies its modules in order. The parameters of the i-th module
// are stored under the prefix "i/".
type Sequential []Module

func (s Sequential) Init(rng *rand.Rand) (param.Params, error) {
	params := param.Params{}
	for i, m := range s {
		sub, err := Init(m, rng)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		params.Merge(strconv.Itoa(i), sub)
	}
	return params, nil
}

func (s Sequential) Apply(params param.Params, x tensor.Array) (tensor.Array, error) {
	var err error
	for i, m := range s {
		x, err = m.Apply(params.Scope(strconv.Itoa(i)), x)
		if err != nil {
			return tensor.Array{}, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return x, nil
}

// Lazy binds a module to its parameters and creates them on the first Apply.
// Later calls reuse the stored parameters, including values updated through
// Params since then.
type Lazy struct {
	module Module
	rng    *rand.Rand
	params param.Params
}

func NewLazy(m Module, rng *rand.Rand) *Lazy {
	return &Lazy{module: m, rng: rng}
}

func (l *Lazy) Initialized() bool {
	return l.params != nil
}

// Params returns the live parameter map, or nil before the first Apply.
func (l *Lazy) Params() param.Params {
	return l.params
}

func (l *Lazy) Apply(x tensor.Array) (tensor.Array, error) {
	if l.params == nil {
		params, err := Init(l.module, l.rng)
		if err != nil {
			return tensor.Array{}, err
		}
		l.params = params
	}
	return l.module.Apply(l.params, x)
}

// ApplyBatch applies m to every x in xs with p workers.
func ApplyBatch(m Module, params param.Params, xs []tensor.Array, p int) ([]tensor.Array, error) {
	n := len(xs)
	ys := make([]tensor.Array, n)
	err := parallel.For(n, p, func(workerId, idx int) error {
		y, err := m.Apply(params, xs[idx])
		if err != nil {
			return fmt.Errorf("batch %d: %w", idx, err)
		}
		ys[idx] = y
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ys, nil
}
