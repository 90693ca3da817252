package simrng

import "testing"

func TestDeterministicSequence(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		va := a.UniformReal()
		vb := b.UniformReal()
		if va != vb {
			t.Fatalf("draw %d diverged: %v != %v", i, va, vb)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	diverged := false
	for i := 0; i < 20; i++ {
		if a.UniformReal() != b.UniformReal() {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Fatalf("expected distinct seeds to diverge within 20 draws")
	}
}

func TestSeedResetsStream(t *testing.T) {
	a := New(7)
	first := a.UniformInt(0, 1000000)
	a.Seed(7)
	second := a.UniformInt(0, 1000000)
	if first != second {
		t.Errorf("reseeding with the same seed should replay the stream, got %d then %d", first, second)
	}
}

func TestUniformIntBounds(t *testing.T) {
	r := New(1)
	for i := 0; i < 1000; i++ {
		v := r.UniformInt(5, 10)
		if v < 5 || v > 10 {
			t.Fatalf("UniformInt(5,10) out of range: %d", v)
		}
	}
}

func TestBernoulliExtremes(t *testing.T) {
	r := New(3)
	for i := 0; i < 50; i++ {
		if r.Bernoulli(1.0) != true {
			t.Fatalf("Bernoulli(1.0) must always be true")
		}
	}
	for i := 0; i < 50; i++ {
		if r.Bernoulli(0.0) != false {
			t.Fatalf("Bernoulli(0.0) must always be false")
		}
	}
}

func TestChooseIntPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected ChooseInt(0) to panic")
		}
	}()
	r := New(1)
	r.ChooseInt(0)
}

func TestExponentialNonNegative(t *testing.T) {
	r := New(9)
	for i := 0; i < 500; i++ {
		if v := r.Exponential(0.8); v < 0 {
			t.Fatalf("exponential draw must be non-negative, got %v", v)
		}
	}
}

func TestPoissonNonNegative(t *testing.T) {
	r := New(11)
	for i := 0; i < 200; i++ {
		if v := r.Poisson(3.0); v < 0 {
			t.Fatalf("poisson draw must be non-negative, got %v", v)
		}
	}
}
