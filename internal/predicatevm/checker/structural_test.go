package checker

import (
	"testing"

	"github.com/vybium/predicate-vm/internal/predicatevm/types"
)

func TestCheckSolutionDataEmpty(t *testing.T) {
	err := CheckSolutionData(&types.Solution{})
	var serr *StructuralError
	if err == nil {
		t.Fatal("expected error")
	}
	if !asStructural(err, &serr) || serr.Code != CodeEmptySolution {
		t.Fatalf("got %v, want EmptySolution", err)
	}
}

func TestCheckSolutionDataTooManySlots(t *testing.T) {
	data := make([]types.Value, types.MaxPredicateDataSlots+1)
	sol := &types.Solution{Data: []types.SolutionData{{PredicateData: data}}}
	err := CheckSolutionData(sol)
	var serr *StructuralError
	if !asStructural(err, &serr) || serr.Code != CodeTooManyPredicateDataSlots {
		t.Fatalf("got %v, want TooManyPredicateDataSlots", err)
	}
}

func TestCheckSolutionDataValueTooLarge(t *testing.T) {
	sol := &types.Solution{Data: []types.SolutionData{
		{PredicateData: []types.Value{make(types.Value, types.MaxValueWords+1)}},
	}}
	err := CheckSolutionData(sol)
	var serr *StructuralError
	if !asStructural(err, &serr) || serr.Code != CodePredicateDataValueTooLarge {
		t.Fatalf("got %v, want PredicateDataValueTooLarge", err)
	}
}

func TestCheckStateMutationsDuplicateKey(t *testing.T) {
	sol := &types.Solution{Data: []types.SolutionData{
		{StateMutations: []types.Mutation{
			{Key: types.Key{1}, Value: types.Value{1}},
			{Key: types.Key{1}, Value: types.Value{2}},
		}},
	}}
	err := CheckStateMutations(sol)
	var serr *StructuralError
	if !asStructural(err, &serr) || serr.Code != CodeMultipleMutationsForSlot {
		t.Fatalf("got %v, want MultipleMutationsForSlot", err)
	}
}

func TestCheckStateMutationsKeyTooLarge(t *testing.T) {
	sol := &types.Solution{Data: []types.SolutionData{
		{StateMutations: []types.Mutation{{Key: make(types.Key, types.MaxKeyWords+1), Value: types.Value{1}}}},
	}}
	err := CheckStateMutations(sol)
	var serr *StructuralError
	if !asStructural(err, &serr) || serr.Code != CodeKeyTooLarge {
		t.Fatalf("got %v, want KeyTooLarge", err)
	}
}

func TestCheckStateMutationsOK(t *testing.T) {
	sol := &types.Solution{Data: []types.SolutionData{
		{StateMutations: []types.Mutation{
			{Key: types.Key{1}, Value: types.Value{1}},
			{Key: types.Key{2}, Value: types.Value{2}},
		}},
	}}
	if err := CheckStateMutations(sol); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func asStructural(err error, out **StructuralError) bool {
	se, ok := err.(*StructuralError)
	if !ok {
		return false
	}
	*out = se
	return true
}
