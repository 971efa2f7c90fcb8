package layer_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/sw965/linen/activation"
	"github.com/sw965/linen/dtype"
	"github.com/sw965/linen/layer"
	"github.com/sw965/linen/optimizer"
	"github.com/sw965/linen/param"
	"github.com/sw965/linen/tensor"
	"github.com/sw965/omw/mathx/randx"
)

func TestActivation(t *testing.T) {
	relu, err := layer.NewActivation("relu")
	if err != nil {
		t.Fatal(err)
	}
	if relu.Name() != "relu" {
		t.Errorf("Name() = %q", relu.Name())
	}
	x, _ := tensor.FromSlice(tensor.Shape{3}, []float32{-1, 0, 2})
	result, err := relu.Apply(nil, x)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(result.Data, []float64{0, 0, 2}) {
		t.Errorf("result = %v", result.Data)
	}

	if _, err := layer.NewActivation("mish"); !errors.Is(err, activation.ErrUnknownActivation) {
		t.Errorf("err = %v", err)
	}

	params, err := layer.Init(relu, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(params) != 0 {
		t.Errorf("stateless module has params %v", params)
	}
}

func TestSequential(t *testing.T) {
	tanh, _ := layer.NewActivation("tanh")
	model := layer.Sequential{
		layer.PReLU{NegativeSlopeInit: 0.5},
		tanh,
		layer.PReLU{NegativeSlopeInit: 0.1},
	}
	params, err := model.Init(randx.NewPCGFromGlobalSeed())
	if err != nil {
		t.Fatal(err)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	if !slices.Equal(keys, []string{"0/negative_slope", "2/negative_slope"}) {
		t.Fatalf("keys = %v", keys)
	}

	x, _ := tensor.FromSlice(tensor.Shape{2}, []float64{-2, 0.5})
	result, err := model.Apply(params, x)
	if err != nil {
		t.Fatal(err)
	}

	h := activation.Tanh(tensor.Array{Shape: tensor.Shape{2}, DType: dtype.Float64, Data: []float64{-1, 0.5}})
	expected := []float64{h.Data[0] * float64(float32(0.1)), h.Data[1]}
	if !slices.Equal(result.Data, expected) {
		t.Errorf("result = %v, want %v", result.Data, expected)
	}

	delete(params, "2/negative_slope")
	if _, err := model.Apply(params, x); !errors.Is(err, layer.ErrNotInitialized) {
		t.Errorf("err = %v", err)
	}
}

func TestApplyBatch(t *testing.T) {
	l := layer.NewPReLU()
	params, err := l.Init(nil)
	if err != nil {
		t.Fatal(err)
	}

	xs := make([]tensor.Array, 17)
	for i := range xs {
		xs[i], _ = tensor.FromSlice(tensor.Shape{2}, []float32{float32(-i), float32(i)})
	}
	ys, err := layer.ApplyBatch(l, params, xs, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i, y := range ys {
		expected, _ := l.Apply(params, xs[i])
		if !tensor.Equal(y, expected) {
			t.Errorf("ys[%d] = %v, want %v", i, y.Data, expected.Data)
		}
	}

	_, err = layer.ApplyBatch(l, param.Params{}, xs, 4)
	if !errors.Is(err, layer.ErrNotInitialized) {
		t.Errorf("err = %v", err)
	}
}

func TestPReLUTraining(t *testing.T) {
	// 負の入力に対して y = 0.25 * x を学習させる
	l := layer.NewPReLU()
	params, err := l.Init(nil)
	if err != nil {
		t.Fatal(err)
	}
	x, _ := tensor.FromSlice(tensor.Shape{4}, []float64{-1, -2, -0.5, 1})
	target := []float64{-0.25, -0.5, -0.125, 1}
	opt := optimizer.NewMomentum(0.9)

	for epoch := 0; epoch < 200; epoch++ {
		y, backward, err := l.Propagate(params, x)
		if err != nil {
			t.Fatal(err)
		}
		chain := y.Clone()
		for i := range chain.Data {
			chain.Data[i] -= target[i]
		}
		_, grads, err := backward(chain)
		if err != nil {
			t.Fatal(err)
		}
		if err := opt.Step(params, grads, 0.05); err != nil {
			t.Fatal(err)
		}
	}

	slope := params[layer.NegativeSlopeKey]
	if slope.DType != dtype.Float32 || slope.Rank() != 0 {
		t.Errorf("slope = %v", slope)
	}
	if d := slope.Data[0] - 0.25; d > 1e-3 || d < -1e-3 {
		t.Errorf("slope = %v, want about 0.25", slope.Data[0])
	}
}
