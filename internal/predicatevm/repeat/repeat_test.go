package repeat

import "testing"

func TestCountUpLoop(t *testing.T) {
	r := New()
	if err := r.Start(3, true, 10); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var counters []Word
	for {
		c, err := r.Counter()
		if err != nil {
			t.Fatalf("Counter: %v", err)
		}
		counters = append(counters, c)

		_, more, err := r.End()
		if err != nil {
			t.Fatalf("End: %v", err)
		}
		if !more {
			break
		}
	}

	want := []Word{0, 1, 2}
	if len(counters) != len(want) {
		t.Fatalf("counters = %v, want %v", counters, want)
	}
	for i, w := range want {
		if counters[i] != w {
			t.Errorf("counters[%d] = %d, want %d", i, counters[i], w)
		}
	}
	if r.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0 after loop completes", r.Depth())
	}
}

func TestCountDownLoop(t *testing.T) {
	r := New()
	if err := r.Start(3, false, 0); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var counters []Word
	for {
		c, _ := r.Counter()
		counters = append(counters, c)
		_, more, _ := r.End()
		if !more {
			break
		}
	}

	want := []Word{2, 1, 0}
	for i, w := range want {
		if counters[i] != w {
			t.Errorf("counters[%d] = %d, want %d", i, counters[i], w)
		}
	}
}

func TestEndWithoutStart(t *testing.T) {
	r := New()
	if _, _, err := r.End(); err == nil {
		t.Fatal("expected error ending a loop that was never started")
	}
}

func TestCounterWithoutStart(t *testing.T) {
	r := New()
	if _, err := r.Counter(); err == nil {
		t.Fatal("expected error reading the counter with no active loop")
	}
}

func TestNestedLoops(t *testing.T) {
	r := New()
	if err := r.Start(2, true, 0); err != nil {
		t.Fatalf("Start outer: %v", err)
	}
	if err := r.Start(2, true, 5); err != nil {
		t.Fatalf("Start inner: %v", err)
	}
	if r.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", r.Depth())
	}
	inner, err := r.Counter()
	if err != nil || inner != 0 {
		t.Fatalf("Counter() = (%d, %v), want (0, nil)", inner, err)
	}
}
