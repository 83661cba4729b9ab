package media

import (
	"math"
	"testing"
)

func TestTempoFactor(t *testing.T) {
	// 70s of synthesized speech squeezed into a 65s video.
	factor := TempoFactor(70.0, 65.0)
	if math.Abs(factor-1.0769) > 0.001 {
		t.Errorf("TempoFactor(70, 65) = %.4f, want ~1.0769", factor)
	}
}

func TestTempoChain_SinglePass(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
	}{
		{"slight speedup", 1.0769},
		{"lower bound", 0.5},
		{"upper bound", 2.0},
		{"unity", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passes, clipped := TempoChain(tt.factor)
			if clipped {
				t.Errorf("TempoChain(%.4f) clipped = true, want false", tt.factor)
			}
			if len(passes) != 1 {
				t.Fatalf("TempoChain(%.4f) = %v, want single pass", tt.factor, passes)
			}
			if passes[0] != tt.factor {
				t.Errorf("pass = %.4f, want %.4f", passes[0], tt.factor)
			}
		})
	}
}

func TestTempoChain_ChainedPasses(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
	}{
		{"extreme speedup", 3.0},
		{"chain upper bound", 4.0},
		{"extreme slowdown", 0.3},
		{"chain lower bound", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passes, clipped := TempoChain(tt.factor)
			if clipped {
				t.Errorf("TempoChain(%.4f) clipped = true, want false", tt.factor)
			}
			if len(passes) != 2 {
				t.Fatalf("TempoChain(%.4f) = %v, want two passes", tt.factor, passes)
			}

			product := passes[0] * passes[1]
			if math.Abs(product-tt.factor) > 1e-9 {
				t.Errorf("pass product = %.6f, want %.6f", product, tt.factor)
			}
			for _, p := range passes {
				if p < 0.5 || p > 2.0 {
					t.Errorf("pass %.4f outside single-pass range [0.5, 2.0]", p)
				}
			}
		})
	}
}

func TestTempoChain_ClipsBeyondRange(t *testing.T) {
	passes, clipped := TempoChain(5.0)
	if !clipped {
		t.Error("TempoChain(5.0) clipped = false, want true")
	}
	if product := passes[0] * passes[1]; product != 4.0 {
		t.Errorf("clipped product = %.4f, want 4.0", product)
	}

	passes, clipped = TempoChain(0.1)
	if !clipped {
		t.Error("TempoChain(0.1) clipped = false, want true")
	}
	if product := passes[0] * passes[1]; product != 0.25 {
		t.Errorf("clipped product = %.4f, want 0.25", product)
	}
}

func TestAtempoFilter(t *testing.T) {
	if got := atempoFilter([]float64{1.0769}); got != "atempo=1.0769" {
		t.Errorf("atempoFilter single = %q", got)
	}
	if got := atempoFilter([]float64{2.0, 1.5}); got != "atempo=2.0000,atempo=1.5000" {
		t.Errorf("atempoFilter chain = %q", got)
	}
}
