// Package bytecode decodes and encodes the predicate VM's wire-format
// programs: a single opcode byte per operation, optionally followed by an
// 8-byte big-endian immediate word for Push.
//
// The opcode table below is the single declarative source of truth for
// every operation's byte value, owning group, human name, and immediate
// width, following a fixed map-of-opcode-to-Info pattern generalised to
// this VM's variable-immediate, grouped op set.
package bytecode

import "fmt"

// Opcode identifies a single operation by its wire-format byte value.
type Opcode uint8

// Group names the op-group an Opcode belongs to, for documentation and
// dispatch.
type Group uint8

const (
	GroupStack Group = iota
	GroupAlu
	GroupPred
	GroupCrypto
	GroupMemory
	GroupAccess
	GroupStateRead
	GroupControlFlow
	GroupCompute
)

func (g Group) String() string {
	switch g {
	case GroupStack:
		return "stack"
	case GroupAlu:
		return "alu"
	case GroupPred:
		return "pred"
	case GroupCrypto:
		return "crypto"
	case GroupMemory:
		return "memory"
	case GroupAccess:
		return "access"
	case GroupStateRead:
		return "state_read"
	case GroupControlFlow:
		return "control_flow"
	case GroupCompute:
		return "compute"
	default:
		return fmt.Sprintf("group(%d)", uint8(g))
	}
}

// Opcode values, grouped. Values are assigned sequentially by group; the
// exact numbering is an implementation detail, not a wire-compatibility
// promise with any other system.
const (
	Push Opcode = iota
	Pop
	Dup
	DupFrom
	Swap
	SwapIndex
	Select
	SelectRange
	Reserve
	Load
	Store
	Repeat
	RepeatEnd

	Add
	Sub
	Mul
	Div
	Mod
	Shl
	Shr
	ShrI

	Eq
	Gt
	Lt
	Gte
	Lte
	And
	Or
	Not
	EqRange
	EqSet
	BitAnd
	BitOr

	Sha256
	VerifyEd25519
	RecoverSecp256k1

	MemAlloc
	MemFree
	MemLoad
	MemStore
	MemLoadRange
	MemStoreRange

	DecisionVar
	DecisionVarLen
	DecisionVarSlots
	MutKeys
	ThisAddress
	ThisContractAddress
	RepeatCounter
	PredicateExists

	KeyRange
	KeyRangeExtern

	Halt
	HaltIf
	JumpIf
	JumpForwardIf
	PanicIf
)

// Info describes one opcode: its owning group, human name, and the number
// of immediate bytes (0 or 8) that follow it in the wire encoding.
type Info struct {
	Opcode    Opcode
	Group     Group
	Name      string
	Immediate int
}

// table is the single declarative source of truth every decoder, encoder,
// and doc string derives from.
var table = map[Opcode]Info{
	Push:        {Push, GroupStack, "push", 8},
	Pop:         {Pop, GroupStack, "pop", 0},
	Dup:         {Dup, GroupStack, "dup", 0},
	DupFrom:     {DupFrom, GroupStack, "dup_from", 0},
	Swap:        {Swap, GroupStack, "swap", 0},
	SwapIndex:   {SwapIndex, GroupStack, "swap_index", 0},
	Select:      {Select, GroupStack, "select", 0},
	SelectRange: {SelectRange, GroupStack, "select_range", 0},
	Reserve:     {Reserve, GroupStack, "reserve", 0},
	Load:        {Load, GroupStack, "load", 0},
	Store:       {Store, GroupStack, "store", 0},
	Repeat:      {Repeat, GroupStack, "repeat", 0},
	RepeatEnd:   {RepeatEnd, GroupStack, "repeat_end", 0},

	Add:  {Add, GroupAlu, "add", 0},
	Sub:  {Sub, GroupAlu, "sub", 0},
	Mul:  {Mul, GroupAlu, "mul", 0},
	Div:  {Div, GroupAlu, "div", 0},
	Mod:  {Mod, GroupAlu, "mod", 0},
	Shl:  {Shl, GroupAlu, "shl", 0},
	Shr:  {Shr, GroupAlu, "shr", 0},
	ShrI: {ShrI, GroupAlu, "shr_i", 0},

	Eq:      {Eq, GroupPred, "eq", 0},
	Gt:      {Gt, GroupPred, "gt", 0},
	Lt:      {Lt, GroupPred, "lt", 0},
	Gte:     {Gte, GroupPred, "gte", 0},
	Lte:     {Lte, GroupPred, "lte", 0},
	And:     {And, GroupPred, "and", 0},
	Or:      {Or, GroupPred, "or", 0},
	Not:     {Not, GroupPred, "not", 0},
	EqRange: {EqRange, GroupPred, "eq_range", 0},
	EqSet:   {EqSet, GroupPred, "eq_set", 0},
	BitAnd:  {BitAnd, GroupPred, "bit_and", 0},
	BitOr:   {BitOr, GroupPred, "bit_or", 0},

	Sha256:           {Sha256, GroupCrypto, "sha256", 0},
	VerifyEd25519:    {VerifyEd25519, GroupCrypto, "verify_ed25519", 0},
	RecoverSecp256k1: {RecoverSecp256k1, GroupCrypto, "recover_secp256k1", 0},

	MemAlloc:      {MemAlloc, GroupMemory, "alloc", 0},
	MemFree:       {MemFree, GroupMemory, "free", 0},
	MemLoad:       {MemLoad, GroupMemory, "load", 0},
	MemStore:      {MemStore, GroupMemory, "store", 0},
	MemLoadRange:  {MemLoadRange, GroupMemory, "load_range", 0},
	MemStoreRange: {MemStoreRange, GroupMemory, "store_range", 0},

	DecisionVar:         {DecisionVar, GroupAccess, "decision_var", 0},
	DecisionVarLen:      {DecisionVarLen, GroupAccess, "decision_var_len", 0},
	DecisionVarSlots:    {DecisionVarSlots, GroupAccess, "decision_var_slots", 0},
	MutKeys:             {MutKeys, GroupAccess, "mut_keys", 0},
	ThisAddress:         {ThisAddress, GroupAccess, "this_address", 0},
	ThisContractAddress: {ThisContractAddress, GroupAccess, "this_contract_address", 0},
	RepeatCounter:       {RepeatCounter, GroupAccess, "repeat_counter", 0},
	PredicateExists:     {PredicateExists, GroupAccess, "predicate_exists", 0},

	KeyRange:       {KeyRange, GroupStateRead, "key_range", 0},
	KeyRangeExtern: {KeyRangeExtern, GroupStateRead, "key_range_extern", 0},

	Halt:          {Halt, GroupControlFlow, "halt", 0},
	HaltIf:        {HaltIf, GroupControlFlow, "halt_if", 0},
	JumpIf:        {JumpIf, GroupControlFlow, "jump_if", 0},
	JumpForwardIf: {JumpForwardIf, GroupControlFlow, "jump_forward_if", 0},
	PanicIf:       {PanicIf, GroupControlFlow, "panic_if", 0},
}

// Lookup returns the Info for an Opcode byte, or false if the byte does not
// name a known operation.
func Lookup(b uint8) (Info, bool) {
	info, ok := table[Opcode(b)]
	return info, ok
}

// String renders the opcode's declarative name, or a numeric fallback for
// unknown bytes.
func (o Opcode) String() string {
	if info, ok := table[o]; ok {
		return info.Name
	}
	return fmt.Sprintf("opcode(%d)", uint8(o))
}
