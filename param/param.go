package param

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sw965/linen/dtype"
	"github.com/sw965/linen/tensor"
	"github.com/sw965/omw/encoding/gobx"
)

var (
	ErrNotFound     = errors.New("parameter not found")
	ErrShapeChanged = errors.New("parameter shape changed")
)

// Initializer creates the first value of a parameter.
type Initializer func(rng *rand.Rand) (tensor.Array, error)

// Constant ignores rng and always returns the rank-0 value v of dtype d.
func Constant(v float64, d dtype.DType) Initializer {
	return func(_ *rand.Rand) (tensor.Array, error) {
		return tensor.Scalar(v, d), nil
	}
}

// Params maps parameter names to their values. Nested modules use
// slash-separated names such as "0/negative_slope".
type Params map[string]tensor.Array

func (p Params) Clone() Params {
	y := make(Params, len(p))
	for k, v := range p {
		y[k] = v.Clone()
	}
	return y
}

func (p Params) Get(name string) (tensor.Array, error) {
	v, ok := p[name]
	if !ok {
		return tensor.Array{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return v, nil
}

// Param returns the stored value of name, creating it with init on first use.
// An existing value is never reinitialised.
func (p Params) Param(name string, init Initializer, rng *rand.Rand) (tensor.Array, error) {
	if v, ok := p[name]; ok {
		return v, nil
	}
	v, err := init(rng)
	if err != nil {
		return tensor.Array{}, fmt.Errorf("initializing %q: %w", name, err)
	}
	p[name] = v
	return v, nil
}

// Set replaces the value of an existing parameter. The shape must not change;
// the value is cast to the stored dtype.
func (p Params) Set(name string, v tensor.Array) error {
	old, err := p.Get(name)
	if err != nil {
		return err
	}
	if !old.Shape.Equal(v.Shape) {
		return fmt.Errorf("%w: %q %v -> %v", ErrShapeChanged, name, old.Shape, v.Shape)
	}
	p[name] = v.Astype(old.DType)
	return nil
}

// Scope returns the parameters under prefix with the prefix stripped.
func (p Params) Scope(prefix string) Params {
	head := prefix + "/"
	y := Params{}
	for k, v := range p {
		if rest, ok := strings.CutPrefix(k, head); ok {
			y[rest] = v
		}
	}
	return y
}

// Merge stores every entry of sub under prefix.
func (p Params) Merge(prefix string, sub Params) {
	for k, v := range sub {
		p[prefix+"/"+k] = v
	}
}

func (p Params) Save(path string) error {
	return gobx.Save(p, path)
}

func Load(path string) (Params, error) {
	return gobx.Load[Params](path)
}
