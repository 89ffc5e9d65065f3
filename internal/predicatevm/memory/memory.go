// Package memory implements the predicate VM's growable random-access word
// store, addressed by the Alloc/Free/Load/Store/LoadRange/StoreRange family
// of ops.
package memory

import "github.com/vybium/predicate-vm/internal/predicatevm/word"

// Word is the memory's element type.
type Word = word.Word

// Size is the maximum number of words memory may hold.
const Size = 4096

// Memory is a contiguous, growable slice of words addressed from zero.
// The zero value is empty memory, ready to use.
type Memory struct {
	words []Word
}

// New returns empty memory.
func New() *Memory {
	return &Memory{}
}

// FromWords returns memory pre-populated with ws, as when seeding a node's
// VM from its parents' published memory (concatenated low-address-first).
// Fails if len(ws) exceeds Size.
func FromWords(ws []Word) (*Memory, error) {
	if len(ws) > Size {
		return nil, ErrOverflow()
	}
	words := make([]Word, len(ws))
	copy(words, ws)
	return &Memory{words: words}, nil
}

// Len returns the number of words currently allocated.
func (m *Memory) Len() int { return len(m.words) }

// Words returns the full backing slice, low-address-first, for publishing
// to a node's children.
func (m *Memory) Words() []Word { return m.words }

// IsEmpty reports whether no words are allocated.
func (m *Memory) IsEmpty() bool { return len(m.words) == 0 }

// Alloc grows memory by n zeroed words. n must be non-negative and the
// result must not exceed Size.
func (m *Memory) Alloc(n Word) error {
	if n < 0 {
		return ErrIndexOutOfBounds()
	}
	if len(m.words)+int(n) > Size {
		return ErrOverflow()
	}
	for i := Word(0); i < n; i++ {
		m.words = append(m.words, 0)
	}
	return nil
}

// Free truncates memory to the words before addr, discarding addr and
// everything after it.
func (m *Memory) Free(addr Word) error {
	if addr < 0 || int(addr) >= len(m.words) {
		return ErrIndexOutOfBounds()
	}
	m.words = m.words[:addr:addr]
	return nil
}

// Load reads the word at addr.
func (m *Memory) Load(addr Word) (Word, error) {
	if addr < 0 || int(addr) >= len(m.words) {
		return 0, ErrIndexOutOfBounds()
	}
	return m.words[addr], nil
}

// Store writes w to the word at addr.
func (m *Memory) Store(addr Word, w Word) error {
	if addr < 0 || int(addr) >= len(m.words) {
		return ErrIndexOutOfBounds()
	}
	m.words[addr] = w
	return nil
}

// LoadRange reads size words starting at addr.
func (m *Memory) LoadRange(addr, size Word) ([]Word, error) {
	if addr < 0 || size < 0 {
		return nil, ErrIndexOutOfBounds()
	}
	start, end := int(addr), int(addr+size)
	if end > len(m.words) {
		return nil, ErrIndexOutOfBounds()
	}
	out := make([]Word, size)
	copy(out, m.words[start:end])
	return out, nil
}

// StoreRange writes values starting at addr.
func (m *Memory) StoreRange(addr Word, values []Word) error {
	if addr < 0 {
		return ErrIndexOutOfBounds()
	}
	start, end := int(addr), int(addr)+len(values)
	if end > len(m.words) {
		return ErrIndexOutOfBounds()
	}
	copy(m.words[start:end], values)
	return nil
}
