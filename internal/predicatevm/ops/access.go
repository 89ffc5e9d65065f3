package ops

import (
	"github.com/vybium/predicate-vm/internal/predicatevm/cache"
	"github.com/vybium/predicate-vm/internal/predicatevm/repeat"
	"github.com/vybium/predicate-vm/internal/predicatevm/stack"
	"github.com/vybium/predicate-vm/internal/predicatevm/types"
	"github.com/vybium/predicate-vm/internal/predicatevm/word"
)

// AccessCode names an access operation.
type AccessCode int

const (
	AccessDecisionVar AccessCode = iota
	AccessDecisionVarLen
	AccessDecisionVarSlots
	AccessMutKeys
	AccessThisAddress
	AccessThisContractAddress
	AccessRepeatCounter
	AccessPredicateExists
)

// Context carries the read-only solution data an Access op needs: the
// entry currently being checked, its proposed mutation keys, and the
// shared predicate-exists digest cache.
type Context struct {
	ThisData         *types.SolutionData
	PredicateAddress types.PredicateAddress
	MutableKeys      []types.Key
	Cache            *cache.Cache
}

// Access applies an access op to the stack.
func Access(s *stack.Stack, r *repeat.Repeat, ctx *Context, code AccessCode) error {
	switch code {
	case AccessDecisionVar:
		return decisionVar(s, ctx)
	case AccessDecisionVarLen:
		return decisionVarLen(s, ctx)
	case AccessDecisionVarSlots:
		return s.Push(Word(len(ctx.ThisData.PredicateData)))
	case AccessMutKeys:
		return pushMutKeys(s, ctx)
	case AccessThisAddress:
		ws := word.Words4FromAddress(ctx.PredicateAddress.Predicate)
		return s.Extend(ws[:])
	case AccessThisContractAddress:
		ws := word.Words4FromAddress(ctx.PredicateAddress.Contract)
		return s.Extend(ws[:])
	case AccessRepeatCounter:
		c, err := r.Counter()
		if err != nil {
			return err
		}
		return s.Push(c)
	case AccessPredicateExists:
		return predicateExists(s, ctx)
	default:
		return ErrSlotOutOfRange(-1)
	}
}

func decisionVar(s *stack.Stack, ctx *Context) error {
	args, err := s.Pop3()
	if err != nil {
		return err
	}
	slotIx, valueIx, length := args[0], args[1], args[2]
	if slotIx < 0 || int(slotIx) >= len(ctx.ThisData.PredicateData) {
		return ErrSlotOutOfRange(int(slotIx))
	}
	value := ctx.ThisData.PredicateData[slotIx]
	if valueIx < 0 || length < 0 || int(valueIx+length) > len(value) {
		return ErrValueRangeOutOfBounds()
	}
	return s.Extend(value[valueIx : valueIx+length])
}

func decisionVarLen(s *stack.Stack, ctx *Context) error {
	slotIx, err := s.Pop()
	if err != nil {
		return err
	}
	if slotIx < 0 || int(slotIx) >= len(ctx.ThisData.PredicateData) {
		return ErrSlotOutOfRange(int(slotIx))
	}
	return s.Push(Word(len(ctx.ThisData.PredicateData[slotIx])))
}

// pushMutKeys pushes the proposed-mutation keys as a sequence of
// length-prefixed words terminated with a total-length word, so the
// caller can parse it with the same convention as eq_set's operands.
func pushMutKeys(s *stack.Stack, ctx *Context) error {
	start := s.Len()
	for _, key := range ctx.MutableKeys {
		if err := s.Push(Word(len(key))); err != nil {
			return err
		}
		if err := s.Extend(key); err != nil {
			return err
		}
	}
	total := s.Len() - start
	return s.Push(Word(total))
}

func predicateExists(s *stack.Stack, ctx *Context) error {
	ws, err := s.Pop4()
	if err != nil {
		return err
	}
	target := word.AddressFromWords4(ws)
	for i := 0; i < ctx.Cache.Len(); i++ {
		digest, err := ctx.Cache.Digest(i)
		if err != nil {
			return err
		}
		if word.ContentAddress(digest) == target {
			return s.Push(boolWord(true))
		}
	}
	return s.Push(boolWord(false))
}
