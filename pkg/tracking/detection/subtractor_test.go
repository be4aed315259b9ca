package detection

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

var gray127 = color.RGBA{127, 127, 127, 0}

func newFrame(rows, cols int, v float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, 0), rows, cols, gocv.MatTypeCV8UC3)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Method != MethodMOG2 {
		t.Errorf("Method = %q, want mog2", cfg.Method)
	}
	if cfg.History != 2000 {
		t.Errorf("History = %d, want 2000", cfg.History)
	}
	if cfg.VarThreshold != 32 {
		t.Errorf("VarThreshold = %v, want 32", cfg.VarThreshold)
	}
	if !cfg.DetectShadows {
		t.Error("Shadow detection should be on")
	}
	if cfg.MorphKernel != 5 || cfg.MorphIterations != 2 {
		t.Errorf("Morphology = %d/%d, want 5/2", cfg.MorphKernel, cfg.MorphIterations)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"unknown method", func(c *Config) { c.Method = "gmg" }, "Method"},
		{"zero history", func(c *Config) { c.History = 0 }, "History"},
		{"static without background", func(c *Config) { c.Method = MethodStatic }, "BackgroundPath"},
		{"even blur", func(c *Config) { c.BlurKernel = 4 }, "BlurKernel"},
		{"zero kernel", func(c *Config) { c.MorphKernel = 0 }, "MorphKernel"},
		{"negative iterations", func(c *Config) { c.MorphIterations = -1 }, "MorphIterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestConfigWarmupFrames(t *testing.T) {
	tests := []struct {
		method Method
		want   int
	}{
		{MethodMOG2, 1},
		{MethodKNN, 1},
		{MethodStatic, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Method = tt.method
			if got := cfg.WarmupFrames(); got != tt.want {
				t.Errorf("WarmupFrames() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewSubtractor_StaticMissingBackground(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = MethodStatic
	cfg.BackgroundPath = "/nonexistent/background.png"

	if _, err := NewSubtractor(cfg); err == nil {
		t.Error("Expected error for missing background image")
	}
}

func TestNewSubtractor_Methods(t *testing.T) {
	for _, m := range []Method{MethodMOG2, MethodKNN} {
		t.Run(string(m), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Method = m
			s, err := NewSubtractor(cfg)
			if err != nil {
				t.Fatalf("NewSubtractor(%s) failed: %v", m, err)
			}
			if err := s.Close(); err != nil {
				t.Errorf("Close failed: %v", err)
			}
		})
	}
}

func TestMOG2_UniformFramesBecomeBackground(t *testing.T) {
	s := NewMOG2(DefaultConfig())
	defer s.Close()

	frame := newFrame(64, 64, 100)
	defer frame.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	for i := 0; i < 10; i++ {
		s.Apply(frame, &mask)
	}

	if n := gocv.CountNonZero(mask); n != 0 {
		t.Errorf("Expected all-background mask, got %d foreground pixels", n)
	}
}

func TestStatic_MarksDifferences(t *testing.T) {
	bg := newFrame(50, 50, 0)
	defer bg.Close()

	s := NewStatic(bg, 25)
	defer s.Close()

	frame := newFrame(50, 50, 0)
	defer frame.Close()
	gocv.Rectangle(&frame, image.Rect(20, 20, 29, 29), white, -1)

	mask := gocv.NewMat()
	defer mask.Close()
	s.Apply(frame, &mask)

	if n := gocv.CountNonZero(mask); n != 100 {
		t.Errorf("Foreground pixels = %d, want 100", n)
	}
	if v := mask.GetUCharAt(25, 25); v != 255 {
		t.Errorf("Mask inside square = %d, want 255", v)
	}

	// The model never adapts.
	s.Apply(frame, &mask)
	if n := gocv.CountNonZero(mask); n != 100 {
		t.Errorf("Second apply foreground pixels = %d, want 100", n)
	}
}
