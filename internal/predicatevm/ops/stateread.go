package ops

import (
	"context"

	"github.com/vybium/predicate-vm/internal/predicatevm/memory"
	"github.com/vybium/predicate-vm/internal/predicatevm/stack"
	"github.com/vybium/predicate-vm/internal/predicatevm/types"
	"github.com/vybium/predicate-vm/internal/predicatevm/word"
)

// StateReadCode names a state-read operation.
type StateReadCode int

const (
	StateReadKeyRange StateReadCode = iota
	StateReadKeyRangeExtern
)

// StateRead applies a state-read op: it reads numKeys consecutive values
// from the given reader and writes the result into m, starting at the
// popped mem_addr. The written layout is numKeys (offset, length) word
// pairs, immediately followed by the concatenated words of every present
// value; offset is the absolute memory address (relative to the start of
// m, not mem_addr) of that value's first word, length is its word count,
// and both are zero for an absent value.
//
// KeyRangeExtern additionally pops a 4-word contract address from the top
// of the stack and reads from that contract instead of the entry's own.
func StateRead(ctx context.Context, s *stack.Stack, m *memory.Memory, reader types.StateReader, contract types.ContentAddress, code StateReadCode) error {
	switch code {
	case StateReadKeyRange:
		return keyRange(ctx, s, m, reader, contract)
	case StateReadKeyRangeExtern:
		externWs, err := s.Pop4()
		if err != nil {
			return err
		}
		return keyRange(ctx, s, m, reader, word.AddressFromWords4(externWs))
	default:
		return ErrUnknownAluOp()
	}
}

func keyRange(ctx context.Context, s *stack.Stack, m *memory.Memory, reader types.StateReader, contract types.ContentAddress) error {
	memAddr, err := s.Pop()
	if err != nil {
		return err
	}
	numKeysW, err := s.Pop()
	if err != nil {
		return err
	}
	if numKeysW < 0 {
		return ErrInvalidLength()
	}
	numKeys := int(numKeysW)
	key, err := stack.PopLenWords(s, func(ws []Word) (types.Key, error) {
		return append(types.Key(nil), ws...), nil
	})
	if err != nil {
		return err
	}

	values, err := reader.ReadKeyRange(ctx, contract, key, numKeys)
	if err != nil {
		return err
	}
	if len(values) != numKeys {
		return ErrInvalidLength()
	}

	pairsWords := Word(2 * numKeys)
	cursor := memAddr + pairsWords
	pairs := make([]Word, 0, pairsWords)
	var valueWords []Word
	for _, v := range values {
		if len(v) == 0 {
			pairs = append(pairs, 0, 0)
			continue
		}
		pairs = append(pairs, cursor, Word(len(v)))
		valueWords = append(valueWords, v...)
		cursor += Word(len(v))
	}

	out := append(pairs, valueWords...)
	return m.StoreRange(memAddr, out)
}
