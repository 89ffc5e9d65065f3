package ops

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/vybium/predicate-vm/internal/predicatevm/stack"
)

// CryptoCode names a crypto operation.
type CryptoCode int

const (
	CryptoSha256 CryptoCode = iota
	CryptoVerifyEd25519
	CryptoRecoverSecp256k1
)

func wordsToBytes(ws []Word) []byte {
	b := make([]byte, 8*len(ws))
	for i, w := range ws {
		binary.BigEndian.PutUint64(b[i*8:], uint64(w))
	}
	return b
}

func bytesToWords4(b [32]byte) [4]Word {
	var out [4]Word
	for i := 0; i < 4; i++ {
		out[i] = Word(binary.BigEndian.Uint64(b[i*8 : i*8+8]))
	}
	return out
}

// Crypto applies a crypto op to the stack.
func Crypto(s *stack.Stack, code CryptoCode) error {
	switch code {
	case CryptoSha256:
		return sha256Op(s)
	case CryptoVerifyEd25519:
		return verifyEd25519(s)
	case CryptoRecoverSecp256k1:
		return recoverSecp256k1(s)
	default:
		return ErrVerificationInput("unknown crypto op")
	}
}

// sha256Op pops a byte length n and the top ceil(n/8) words, hashes the
// first n big-endian bytes of that buffer, and pushes the digest as 4
// words.
func sha256Op(s *stack.Stack) error {
	n, err := s.PopLen()
	if err != nil {
		return err
	}
	numWords := (n + 7) / 8
	words := make([]Word, numWords)
	for i := numWords - 1; i >= 0; i-- {
		w, err := s.Pop()
		if err != nil {
			return err
		}
		words[i] = w
	}
	buf := wordsToBytes(words)
	if n > len(buf) {
		return ErrInvalidLength()
	}
	digest := sha256.Sum256(buf[:n])
	ws := bytesToWords4(digest)
	return s.Extend(ws[:])
}

// verifyEd25519 pops [pubkey(4w), signature(8w), data_len, data_words...],
// verifies strict Ed25519, and pushes 1/0.
func verifyEd25519(s *stack.Stack) error {
	dataLen, err := s.PopLen()
	if err != nil {
		return err
	}
	numDataWords := (dataLen + 7) / 8
	data := make([]Word, numDataWords)
	for i := numDataWords - 1; i >= 0; i-- {
		w, err := s.Pop()
		if err != nil {
			return err
		}
		data[i] = w
	}
	sig, err := s.Pop8()
	if err != nil {
		return err
	}
	pub, err := s.Pop4()
	if err != nil {
		return err
	}

	pubBytes := wordsToBytes(pub[:])
	sigBytes := wordsToBytes(sig[:])
	dataBytes := wordsToBytes(data)
	if len(dataBytes) < dataLen {
		return s.Push(boolWord(false))
	}
	dataBytes = dataBytes[:dataLen]

	if len(pubBytes) != ed25519.PublicKeySize || len(sigBytes) != ed25519.SignatureSize {
		return s.Push(boolWord(false))
	}
	ok := ed25519.Verify(ed25519.PublicKey(pubBytes), dataBytes, sigBytes)
	return s.Push(boolWord(ok))
}

// recoverSecp256k1 pops [recovery_id, signature(8w), message_digest(4w)]
// and pushes the recovered 33-byte compressed public key as 4 words plus
// the tail byte in the low byte of a 5th word. Failure pushes all zeros:
// this op is total.
func recoverSecp256k1(s *stack.Stack) error {
	digest, err := s.Pop4()
	if err != nil {
		return err
	}
	sig, err := s.Pop8()
	if err != nil {
		return err
	}
	recID, err := s.Pop()
	if err != nil {
		return err
	}

	push33Zero := func() error {
		var zero [5]Word
		return s.Extend(zero[:])
	}

	if recID < 0 || recID > 3 {
		return push33Zero()
	}

	digestBytes := wordsToBytes(digest[:])
	sigBytes := wordsToBytes(sig[:])

	compact := make([]byte, 65)
	compact[0] = byte(27 + recID)
	copy(compact[1:33], sigBytes[:32])
	copy(compact[33:65], sigBytes[32:64])

	pubKey, _, err := ecdsa.RecoverCompact(compact, digestBytes)
	if err != nil {
		return push33Zero()
	}

	compressed := pubKey.SerializeCompressed()
	if len(compressed) != 33 {
		return push33Zero()
	}
	var out [4]Word
	for i := 0; i < 4; i++ {
		out[i] = Word(binary.BigEndian.Uint64(compressed[i*8 : i*8+8]))
	}
	tail := Word(compressed[32])
	if err := s.Extend(out[:]); err != nil {
		return err
	}
	return s.Push(tail)
}
