package param

import (
	"math"
	"testing"
)

func newGainParam() *Parameter {
	return New(0, "gain").
		Range(-90, 3).
		Default(0).
		Unit("Decibels").
		Gradient(Power(0.15)).
		Formatter(DecibelFormatter, DecibelParser).
		Build()
}

func TestGradient(t *testing.T) {
	t.Run("LinearRoundTrip", func(t *testing.T) {
		for _, plain := range []float64{-90, -45, 0, 3} {
			n := Linear.Normalize(plain, -90, 3)
			if got := Linear.Unnormalize(n, -90, 3); math.Abs(got-plain) > 1e-9 {
				t.Errorf("round trip %f -> %f -> %f", plain, n, got)
			}
		}
	})

	t.Run("PowerRoundTrip", func(t *testing.T) {
		g := Power(0.15)
		for _, plain := range []float64{-90, -60, -6, 0, 3} {
			n := g.Normalize(plain, -90, 3)
			if got := g.Unnormalize(n, -90, 3); math.Abs(got-plain) > 1e-9 {
				t.Errorf("round trip %f -> %f -> %f", plain, n, got)
			}
		}
	})

	t.Run("PowerEndpoints", func(t *testing.T) {
		g := Power(0.15)
		if got := g.Unnormalize(0, -90, 3); got != -90 {
			t.Errorf("Unnormalize(0) = %f, want -90", got)
		}
		if got := g.Unnormalize(1, -90, 3); got != 3 {
			t.Errorf("Unnormalize(1) = %f, want 3", got)
		}
	})

	t.Run("PowerFavoursTopOfRange", func(t *testing.T) {
		g := Power(0.15)
		mid := g.Unnormalize(0.5, -90, 3)
		if mid < -10 {
			t.Errorf("Unnormalize(0.5) = %f, expected most travel near 0 dB", mid)
		}
	})

	t.Run("Monotonic", func(t *testing.T) {
		g := Power(0.15)
		prev := math.Inf(-1)
		for i := 0; i <= 100; i++ {
			v := g.Unnormalize(float64(i)/100, -90, 3)
			if v < prev {
				t.Fatalf("not monotonic at %d: %f < %f", i, v, prev)
			}
			prev = v
		}
	})

	t.Run("NonPositiveExponentFallsBackToLinear", func(t *testing.T) {
		if Power(0).Exponent() != 1 {
			t.Error("Power(0) should be linear")
		}
	})
}

func TestParameter(t *testing.T) {
	t.Run("DefaultIsZeroDB", func(t *testing.T) {
		p := newGainParam()
		if got := p.GetPlainValue(); math.Abs(got) > 1e-9 {
			t.Errorf("default plain = %f, want 0", got)
		}
		if got := p.DefaultPlain(); math.Abs(got) > 1e-9 {
			t.Errorf("DefaultPlain() = %f, want 0", got)
		}
	})

	t.Run("SetValueClamps", func(t *testing.T) {
		p := newGainParam()
		p.SetValue(1.5)
		if p.GetValue() != 1 {
			t.Errorf("GetValue() = %f, want 1", p.GetValue())
		}
		p.SetValue(-1)
		if p.GetValue() != 0 {
			t.Errorf("GetValue() = %f, want 0", p.GetValue())
		}
	})

	t.Run("SetPlainValue", func(t *testing.T) {
		p := newGainParam()
		p.SetPlainValue(-6)
		if got := p.GetPlainValue(); math.Abs(got+6) > 1e-9 {
			t.Errorf("GetPlainValue() = %f, want -6", got)
		}
		p.SetPlainValue(50)
		if got := p.GetPlainValue(); got != 3 {
			t.Errorf("out of range plain should clamp to 3, got %f", got)
		}
	})

	t.Run("ResetRestoresDefault", func(t *testing.T) {
		p := newGainParam()
		p.SetPlainValue(-30)
		p.Reset()
		if got := p.GetPlainValue(); math.Abs(got) > 1e-9 {
			t.Errorf("after Reset plain = %f, want 0", got)
		}
	})

	t.Run("ClampPlain", func(t *testing.T) {
		p := newGainParam()
		tests := []struct{ in, want float64 }{
			{-100, -90}, {-90, -90}, {0, 0}, {3, 3}, {10, 3},
		}
		for _, tt := range tests {
			if got := p.ClampPlain(tt.in); got != tt.want {
				t.Errorf("ClampPlain(%f) = %f, want %f", tt.in, got, tt.want)
			}
		}
	})

	t.Run("FormatAndParse", func(t *testing.T) {
		p := newGainParam()
		if got := p.FormatValue(p.Normalize(-6)); got != "-6.0 dB" {
			t.Errorf("FormatValue = %q, want -6.0 dB", got)
		}
		n, err := p.ParseValue("-12 dB")
		if err != nil {
			t.Fatalf("ParseValue error: %v", err)
		}
		if got := p.Denormalize(n); math.Abs(got+12) > 1e-9 {
			t.Errorf("parsed plain = %f, want -12", got)
		}
		if _, err := p.ParseValue("loud"); err == nil {
			t.Error("expected error for non-numeric input")
		}
	})
}

func TestDecibelFormatting(t *testing.T) {
	tests := []struct {
		db   float64
		want string
	}{
		{0, "0.0 dB"},
		{3, "3.0 dB"},
		{-90, "-90.0 dB"},
		{-120, "-∞ dB"},
	}
	for _, tt := range tests {
		if got := DecibelFormatter(tt.db); got != tt.want {
			t.Errorf("DecibelFormatter(%f) = %q, want %q", tt.db, got, tt.want)
		}
	}

	if v, err := DecibelParser("-∞ dB"); err != nil || v != DecibelFloor {
		t.Errorf("DecibelParser(-∞) = %f, %v", v, err)
	}
	if v, err := DecibelParser(" 1.5db "); err != nil || v != 1.5 {
		t.Errorf("DecibelParser(1.5db) = %f, %v", v, err)
	}
}

func TestRegistryAndDispatch(t *testing.T) {
	const (
		paramGain ID = iota
		paramOther
	)

	reg := NewRegistry()
	gain := New(paramGain, "gain").Range(-90, 3).Build()
	reg.Add(gain, New(paramGain, "duplicate").Build())

	if reg.Count() != 1 {
		t.Fatalf("duplicate IDs should be skipped, Count() = %d", reg.Count())
	}
	if reg.Get(paramGain) != gain || reg.GetByIndex(0) != gain {
		t.Error("lookup by ID/index failed")
	}
	if reg.GetByIndex(5) != nil || reg.GetByIndex(-1) != nil {
		t.Error("out of range index should return nil")
	}
	if i, ok := reg.IndexOf(paramGain); !ok || i != 0 {
		t.Errorf("IndexOf(gain) = %d, %v", i, ok)
	}
	if _, ok := reg.IndexOf(paramOther); ok {
		t.Error("IndexOf found an undeclared ID")
	}
	if reg.ByName("gain") != gain || reg.ByName("volume") != nil {
		t.Error("ByName lookup failed")
	}

	d := NewDispatcher()
	var got float64
	d.Handle(paramGain, func(v float64) { got = v })

	if !d.Notify(paramGain, 0.5) || got != 0.5 {
		t.Errorf("Notify(gain) did not deliver, got %f", got)
	}
	if d.Notify(paramOther, 0.9) {
		t.Error("Notify for unknown ID should be ignored")
	}
	if !d.NotifyName(reg, "gain", 0.25) || got != 0.25 {
		t.Errorf("NotifyName(gain) did not deliver, got %f", got)
	}
	if d.NotifyName(reg, "pan", 1) {
		t.Error("NotifyName for unknown name should be ignored")
	}
	if got != 0.25 {
		t.Errorf("ignored notifications must not change state, got %f", got)
	}
}
