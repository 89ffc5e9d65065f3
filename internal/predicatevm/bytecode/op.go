package bytecode

import "github.com/vybium/predicate-vm/internal/predicatevm/word"

// Word is the type of an op's immediate.
type Word = word.Word

// Op is one decoded operation: its opcode, plus the immediate word for
// Push (zero and unused for every other opcode).
type Op struct {
	Code      Opcode
	Immediate Word
}

// Size reports the number of bytes Op occupies in its wire encoding.
func (op Op) Size() int {
	if info, ok := table[op.Code]; ok {
		return 1 + info.Immediate
	}
	return 1
}

// Encode appends op's wire-format bytes to dst and returns the result.
func Encode(dst []byte, op Op) []byte {
	dst = append(dst, byte(op.Code))
	if op.Code == Push {
		b := word.BytesFromWord(op.Immediate)
		dst = append(dst, b[:]...)
	}
	return dst
}

// Decode parses a single Op from the head of bytes, returning the op and
// the number of bytes consumed.
func Decode(bytes []byte) (Op, int, error) {
	if len(bytes) == 0 {
		return Op{}, 0, ErrNotEnoughBytes()
	}
	b := bytes[0]
	info, ok := Lookup(b)
	if !ok {
		return Op{}, 0, ErrInvalidOpcode(b)
	}
	if info.Immediate == 0 {
		return Op{Code: info.Opcode}, 1, nil
	}
	if len(bytes)-1 < info.Immediate {
		return Op{}, 0, ErrNotEnoughBytes()
	}
	w, err := word.WordFromBytes(bytes[1 : 1+info.Immediate])
	if err != nil {
		return Op{}, 0, ErrNotEnoughBytes()
	}
	return Op{Code: info.Opcode, Immediate: w}, 1 + info.Immediate, nil
}

// DecodeAll decodes every op in bytes, returning an error if any prefix
// fails to decode.
func DecodeAll(bytes []byte) ([]Op, error) {
	var ops []Op
	for len(bytes) > 0 {
		op, n, err := Decode(bytes)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		bytes = bytes[n:]
	}
	return ops, nil
}

// EncodeAll serialises ops in order, concatenating their wire encodings.
func EncodeAll(ops []Op) []byte {
	var out []byte
	for _, op := range ops {
		out = Encode(out, op)
	}
	return out
}
