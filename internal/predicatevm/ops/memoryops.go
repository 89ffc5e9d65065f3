package ops

import (
	"github.com/vybium/predicate-vm/internal/predicatevm/memory"
	"github.com/vybium/predicate-vm/internal/predicatevm/stack"
)

// MemoryCode names a memory-group operation.
type MemoryCode int

const (
	MemoryAlloc MemoryCode = iota
	MemoryFree
	MemoryLoad
	MemoryStore
	MemoryLoadRange
	MemoryStoreRange
)

// Memory applies a memory-group op, popping its operands from s and reading
// or writing m.
func Memory(s *stack.Stack, m *memory.Memory, code MemoryCode) error {
	switch code {
	case MemoryAlloc:
		n, err := s.Pop()
		if err != nil {
			return err
		}
		base := Word(m.Len())
		if err := m.Alloc(n); err != nil {
			return err
		}
		return s.Push(base)

	case MemoryFree:
		addr, err := s.Pop()
		if err != nil {
			return err
		}
		return m.Free(addr)

	case MemoryLoad:
		addr, err := s.Pop()
		if err != nil {
			return err
		}
		w, err := m.Load(addr)
		if err != nil {
			return err
		}
		return s.Push(w)

	case MemoryStore:
		val, err := s.Pop()
		if err != nil {
			return err
		}
		addr, err := s.Pop()
		if err != nil {
			return err
		}
		return m.Store(addr, val)

	case MemoryLoadRange:
		size, err := s.Pop()
		if err != nil {
			return err
		}
		addr, err := s.Pop()
		if err != nil {
			return err
		}
		words, err := m.LoadRange(addr, size)
		if err != nil {
			return err
		}
		return s.Extend(words)

	case MemoryStoreRange:
		addr, err := s.Pop()
		if err != nil {
			return err
		}
		size, err := s.Pop()
		if err != nil {
			return err
		}
		values := make([]Word, size)
		for i := int(size) - 1; i >= 0; i-- {
			w, err := s.Pop()
			if err != nil {
				return err
			}
			values[i] = w
		}
		return m.StoreRange(addr, values)

	default:
		return ErrUnknownAluOp()
	}
}
