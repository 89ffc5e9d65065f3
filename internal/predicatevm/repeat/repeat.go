// Package repeat implements the nested loop register driving the
// Repeat/RepeatEnd/RepeatCounter operations: a stack of frames, each
// tracking a remaining iteration count and the program counter the loop
// body should jump back to.
package repeat

import "github.com/vybium/predicate-vm/internal/predicatevm/word"

// Word is the register's counter/address type.
type Word = word.Word

type frame struct {
	counter   Word
	countUp   bool
	remaining Word
	bodyStart int
}

// Repeat tracks the nested Repeat/RepeatEnd loop frames active during
// program execution.
type Repeat struct {
	frames []frame
}

// New returns an empty repeat register.
func New() *Repeat {
	return &Repeat{}
}

// Start begins a new loop: numIterations repetitions of the body starting
// at bodyStart, counting up from 0 if countUp, or down from
// numIterations-1 otherwise. numIterations must be non-negative.
func (r *Repeat) Start(numIterations Word, countUp bool, bodyStart int) error {
	if numIterations < 0 {
		return ErrInvalidCountDirection()
	}
	counter := Word(0)
	if !countUp && numIterations > 0 {
		counter = numIterations - 1
	}
	r.frames = append(r.frames, frame{
		counter:   counter,
		countUp:   countUp,
		remaining: numIterations,
		bodyStart: bodyStart,
	})
	return nil
}

// Counter returns the current iteration's counter value, from the
// innermost active loop.
func (r *Repeat) Counter() (Word, error) {
	if len(r.frames) == 0 {
		return 0, ErrEmpty()
	}
	return r.frames[len(r.frames)-1].counter, nil
}

// End advances the innermost loop by one iteration. It returns the program
// counter to jump back to and true if another iteration remains, or false
// if the loop is complete and execution should fall through.
func (r *Repeat) End() (int, bool, error) {
	n := len(r.frames)
	if n == 0 {
		return 0, false, ErrEndWithoutStart()
	}
	f := &r.frames[n-1]
	if f.remaining == 0 {
		r.frames = r.frames[:n-1]
		return 0, false, nil
	}
	f.remaining--
	if f.remaining == 0 {
		r.frames = r.frames[:n-1]
		return 0, false, nil
	}
	if f.countUp {
		f.counter++
	} else {
		f.counter--
	}
	return f.bodyStart, true, nil
}

// Depth returns the number of currently active loop frames.
func (r *Repeat) Depth() int { return len(r.frames) }
