package bytecode

// Mapped is an indexable view over a decoded op stream: the pair of the
// underlying bytes and the byte offset of each operation within them.
type Mapped interface {
	// At returns the op at index i, decoding more of the underlying bytes
	// as necessary.
	At(i int) (Op, error)
	// Len returns the total number of ops, fully decoding the remainder
	// of the underlying bytes if it has not been scanned yet.
	Len() (int, error)
}

// Eager decodes every op up front by scanning the bytes once at
// construction time.
type Eager struct {
	ops     []Op
	offsets []int
}

// NewEager builds an Eager mapping over bytes, decoding every op now.
func NewEager(bytes []byte) (*Eager, error) {
	e := &Eager{}
	offset := 0
	for offset < len(bytes) {
		op, n, err := Decode(bytes[offset:])
		if err != nil {
			return nil, err
		}
		e.ops = append(e.ops, op)
		e.offsets = append(e.offsets, offset)
		offset += n
	}
	return e, nil
}

// At returns the op at index i.
func (e *Eager) At(i int) (Op, error) {
	if i < 0 || i >= len(e.ops) {
		return Op{}, ErrIndexOutOfRange(i)
	}
	return e.ops[i], nil
}

// Len returns the number of decoded ops.
func (e *Eager) Len() (int, error) { return len(e.ops), nil }

// Offset returns the byte offset of the op at index i.
func (e *Eager) Offset(i int) (int, error) {
	if i < 0 || i >= len(e.offsets) {
		return 0, ErrIndexOutOfRange(i)
	}
	return e.offsets[i], nil
}

// Lazy decodes ops on demand as increasing indices are requested, useful
// when execution may halt before reaching the end of the program.
type Lazy struct {
	bytes   []byte
	ops     []Op
	offsets []int
	cursor  int // byte offset of the next undecoded op
	done    bool
}

// NewLazy builds a Lazy mapping over bytes. No decoding happens yet.
func NewLazy(bytes []byte) *Lazy {
	return &Lazy{bytes: bytes}
}

// At returns the op at index i, decoding any ops up to and including i
// that have not yet been visited.
func (l *Lazy) At(i int) (Op, error) {
	if i < 0 {
		return Op{}, ErrIndexOutOfRange(i)
	}
	for len(l.ops) <= i {
		if l.cursor >= len(l.bytes) {
			l.done = true
			return Op{}, ErrIndexOutOfRange(i)
		}
		op, n, err := Decode(l.bytes[l.cursor:])
		if err != nil {
			return Op{}, err
		}
		l.offsets = append(l.offsets, l.cursor)
		l.ops = append(l.ops, op)
		l.cursor += n
	}
	return l.ops[i], nil
}

// Len fully decodes any remaining bytes and returns the total op count.
func (l *Lazy) Len() (int, error) {
	for !l.done {
		if _, err := l.At(len(l.ops)); err != nil {
			if ioErr, ok := err.(*Error); ok && ioErr.Code == CodeIndexOutOfRange {
				break
			}
			return 0, err
		}
	}
	return len(l.ops), nil
}

// SliceView is a read-only window [start, end) over an existing Mapped.
type SliceView struct {
	inner      Mapped
	start, end int
}

// NewSliceView returns a view over inner restricted to [start, end).
func NewSliceView(inner Mapped, start, end int) *SliceView {
	return &SliceView{inner: inner, start: start, end: end}
}

// At returns the op at index i relative to the start of the view.
func (v *SliceView) At(i int) (Op, error) {
	if i < 0 || v.start+i >= v.end {
		return Op{}, ErrIndexOutOfRange(i)
	}
	return v.inner.At(v.start + i)
}

// Len returns the number of ops in the view.
func (v *SliceView) Len() (int, error) {
	return v.end - v.start, nil
}
