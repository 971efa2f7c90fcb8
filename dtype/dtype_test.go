package dtype_test

import (
	"math"
	"testing"

	"github.com/sw965/linen/dtype"
)

func TestParse(t *testing.T) {
	cases := map[string]dtype.DType{
		"float32": dtype.Float32,
		"F32":     dtype.Float32,
		"float16": dtype.Float16,
		"f16":     dtype.Float16,
		"f64":     dtype.Float64,
	}
	for s, expected := range cases {
		result, err := dtype.Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if result != expected {
			t.Errorf("Parse(%q) = %v, want %v", s, result, expected)
		}
	}

	for _, s := range []string{"int8", "half"} {
		if _, err := dtype.Parse(s); err == nil {
			t.Errorf("Parse(%q) should fail", s)
		}
	}
}

func TestZeroValueIsFloat32(t *testing.T) {
	var d dtype.DType
	if d != dtype.Float32 {
		t.Errorf("zero value = %v", d)
	}
}

func TestRound(t *testing.T) {
	if result := dtype.Float32.Round(0.01); result != float64(float32(0.01)) {
		t.Errorf("Float32.Round(0.01) = %v", result)
	}
	if result := dtype.Float64.Round(0.01); result != 0.01 {
		t.Errorf("Float64.Round(0.01) = %v", result)
	}

	// float16 は 11 bit の仮数部しか持たない
	result := dtype.Float16.Round(1.0 + 1.0/4096)
	if result != 1.0 {
		t.Errorf("Float16.Round = %v, want 1", result)
	}
	if result := dtype.Float16.Round(65504); result != 65504 {
		t.Errorf("Float16.Round(max) = %v", result)
	}
	if result := dtype.Float16.Round(1e6); !math.IsInf(result, 1) {
		t.Errorf("Float16.Round(1e6) = %v, want +Inf", result)
	}
	if result := dtype.Float32.Round(math.NaN()); !math.IsNaN(result) {
		t.Errorf("Float32.Round(NaN) = %v", result)
	}
}

func TestBits(t *testing.T) {
	if dtype.Float16.Bits() != 16 || dtype.Float32.Bits() != 32 || dtype.Float64.Bits() != 64 {
		t.Errorf("テスト失敗")
	}
	if dtype.DType(9).Valid() {
		t.Errorf("DType(9) should be invalid")
	}
}
