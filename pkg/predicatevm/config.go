package predicatevm

import (
	"go.uber.org/zap"

	"github.com/vybium/predicate-vm/internal/predicatevm/checker"
	"github.com/vybium/predicate-vm/internal/predicatevm/vm"
)

// GasLimit bounds the total gas a predicate graph's run may spend, and the
// per-yield threshold its cooperative scheduling checks against.
type GasLimit = vm.GasLimit

// DefaultGasLimit returns the spec's default: no total cap, and the
// default per-yield threshold.
func DefaultGasLimit() GasLimit { return vm.DefaultGasLimit() }

// OpGasCost prices one decoded op. ConstantGasCost(n) prices every op at a
// flat n.
type OpGasCost = vm.OpGasCost

// ConstantGasCost returns an OpGasCost pricing every op at a flat n.
func ConstantGasCost(n int64) OpGasCost { return vm.ConstantGasCost(n) }

// Config bounds and configures one Check call.
type Config = checker.Config

// DefaultConfig returns a Config with the spec's default gas behaviour (no
// total cap, the default per-yield threshold, one-gas-per-op pricing) and
// CollectAllFailures disabled.
func DefaultConfig() Config { return checker.DefaultConfig() }

// NewLogger is a convenience constructor for a production zap.Logger,
// suitable for passing to Config.WithLogger.
func NewLogger() (*zap.Logger, error) { return zap.NewProduction() }
