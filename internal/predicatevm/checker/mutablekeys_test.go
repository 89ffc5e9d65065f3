package checker

import (
	"reflect"
	"testing"

	"github.com/vybium/predicate-vm/internal/predicatevm/types"
)

func TestMutableKeys(t *testing.T) {
	sol := &types.Solution{Data: []types.SolutionData{
		{StateMutations: []types.Mutation{
			{Key: types.Key{1, 2}, Value: types.Value{9}},
			{Key: types.Key{3}, Value: types.Value{8}},
		}},
	}}
	got := MutableKeys(sol, 0)
	want := []types.Key{{1, 2}, {3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
