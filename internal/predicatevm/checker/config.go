package checker

import (
	"go.uber.org/zap"

	"github.com/vybium/predicate-vm/internal/predicatevm/vm"
)

// Config bounds and configures one Check call, following the teacher's
// Default*/With*/Validate builder shape.
type Config struct {
	GasLimit           vm.GasLimit
	Cost               vm.OpGasCost
	CollectAllFailures bool
	Logger             *zap.Logger
}

// DefaultConfig returns a Config with the spec's default gas behaviour (no
// total cap, the default per-yield threshold, one-gas-per-op pricing) and
// collect_all_failures disabled.
func DefaultConfig() Config {
	return Config{
		GasLimit: vm.DefaultGasLimit(),
		Cost:     vm.ConstantGasCost(1),
	}
}

// WithGasLimit returns a copy of c with GasLimit set.
func (c Config) WithGasLimit(limit vm.GasLimit) Config {
	c.GasLimit = limit
	return c
}

// WithCost returns a copy of c with Cost set.
func (c Config) WithCost(cost vm.OpGasCost) Config {
	c.Cost = cost
	return c
}

// WithCollectAllFailures returns a copy of c with CollectAllFailures set.
func (c Config) WithCollectAllFailures(v bool) Config {
	c.CollectAllFailures = v
	return c
}

// WithLogger returns a copy of c with Logger set.
func (c Config) WithLogger(l *zap.Logger) Config {
	c.Logger = l
	return c
}

// Validate reports whether c's fields are individually sane.
func (c Config) Validate() error {
	return c.GasLimit.Validate()
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
