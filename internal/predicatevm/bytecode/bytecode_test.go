package bytecode

import "testing"

func TestDecodeEncodeRoundTrip(t *testing.T) {
	for code := range table {
		op := Op{Code: code}
		if code == Push {
			op.Immediate = 42
		}
		enc := Encode(nil, op)
		got, n, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%v): %v", op, err)
		}
		if n != len(enc) {
			t.Fatalf("Decode consumed %d bytes, want %d", n, len(enc))
		}
		if got != op {
			t.Errorf("round trip of %v produced %v", op, got)
		}
	}
}

func TestDecodeInvalidOpcode(t *testing.T) {
	if _, _, err := Decode([]byte{0xFF}); err == nil {
		t.Fatal("expected invalid opcode error")
	}
}

func TestDecodePushNotEnoughBytes(t *testing.T) {
	if _, _, err := Decode([]byte{byte(Push), 1, 2, 3}); err == nil {
		t.Fatal("expected not-enough-bytes error")
	}
}

func TestDecodeAllEncodeAll(t *testing.T) {
	ops := []Op{
		{Code: Push, Immediate: 6},
		{Code: Push, Immediate: 7},
		{Code: Mul},
		{Code: Halt},
	}
	enc := EncodeAll(ops)
	got, err := DecodeAll(enc)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(got) != len(ops) {
		t.Fatalf("got %d ops, want %d", len(got), len(ops))
	}
	for i, op := range ops {
		if got[i] != op {
			t.Errorf("op[%d] = %v, want %v", i, got[i], op)
		}
	}
}

func TestEager(t *testing.T) {
	ops := []Op{{Code: Push, Immediate: 1}, {Code: Push, Immediate: 2}, {Code: Add}, {Code: Halt}}
	enc := EncodeAll(ops)
	e, err := NewEager(enc)
	if err != nil {
		t.Fatalf("NewEager: %v", err)
	}
	n, err := e.Len()
	if err != nil || n != 4 {
		t.Fatalf("Len() = (%d, %v), want (4, nil)", n, err)
	}
	op, err := e.At(2)
	if err != nil || op.Code != Add {
		t.Fatalf("At(2) = (%v, %v), want (Add, nil)", op, err)
	}
	if _, err := e.At(10); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestLazy(t *testing.T) {
	ops := []Op{{Code: Push, Immediate: 1}, {Code: Push, Immediate: 2}, {Code: Add}, {Code: Halt}}
	enc := EncodeAll(ops)
	l := NewLazy(enc)

	op, err := l.At(0)
	if err != nil || op.Code != Push {
		t.Fatalf("At(0) = (%v, %v), want (Push, nil)", op, err)
	}
	// Requesting index 0 again must not re-decode past what's needed.
	op, err = l.At(0)
	if err != nil || op.Immediate != 1 {
		t.Fatalf("At(0) second call = (%v, %v)", op, err)
	}

	n, err := l.Len()
	if err != nil || n != 4 {
		t.Fatalf("Len() = (%d, %v), want (4, nil)", n, err)
	}
}

func TestSliceView(t *testing.T) {
	ops := []Op{{Code: Push, Immediate: 1}, {Code: Push, Immediate: 2}, {Code: Add}, {Code: Halt}}
	enc := EncodeAll(ops)
	e, err := NewEager(enc)
	if err != nil {
		t.Fatalf("NewEager: %v", err)
	}
	view := NewSliceView(e, 1, 3)
	n, _ := view.Len()
	if n != 2 {
		t.Fatalf("Len() = %d, want 2", n)
	}
	op, err := view.At(1)
	if err != nil || op.Code != Add {
		t.Fatalf("At(1) = (%v, %v), want (Add, nil)", op, err)
	}
	if _, err := view.At(2); err == nil {
		t.Fatal("expected out-of-range error past the view's end")
	}
}
