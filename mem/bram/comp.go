package bram

import (
	"iter"
	"sync"

	"github.com/sarchlab/bram/sim"
	"github.com/sarchlab/bram/sim/hooking"
	"github.com/sarchlab/bram/sim/naming"
)

// CycleInput is what the memory samples on one rising clock edge.
type CycleInput struct {
	ReadAddr    Address
	WriteEnable bool
	WriteAddr   Address
	WriteData   Word
}

// CycleRecord describes a completed cycle. It is passed to the hooks at
// HookPosAfterCycle as the Detail.
type CycleRecord struct {
	Cycle  uint64
	Input  CycleInput
	Read   Word // value read this cycle, emitted next cycle
	Output Word // value emitted this cycle
	Wrote  bool
}

// HookPosBeforeCycle is triggered before a cycle is evaluated. The Item is
// the CycleInput.
var HookPosBeforeCycle = &hooking.HookPos{Name: "BeforeCycle"}

// HookPosAfterCycle is triggered after a cycle is evaluated. The Item is the
// CycleInput and the Detail is the CycleRecord.
var HookPosAfterCycle = &hooking.HookPos{Name: "AfterCycle"}

// HookPosWriteDropped is triggered when a write is enabled but the write
// address does not select a cell. The Item is the CycleInput.
var HookPosWriteDropped = &hooking.HookPos{Name: "WriteDropped"}

// A Comp is a synchronous block RAM with one read port and one write port.
//
// On every cycle the Comp reads the cell selected by the read address,
// performs the enabled write, and latches the read value into its output
// register. The value emitted in a cycle is the register content from the
// previous cycle, so a read is observed one cycle after it is requested. A
// read in the same cycle as a write to the same cell observes the old value.
//
// Cycles must be evaluated from one goroutine. The inspection methods
// (CurrentCycle, Peek, Snapshot) may be called from other goroutines at any
// time and observe the state between two cycles.
type Comp struct {
	naming.NamedBase
	hooking.HookableBase

	domain *sim.Domain

	lock     sync.RWMutex
	array    *Array
	array    *Array
	register Word
	cycle    uint64
}

// Domain returns the clock domain the memory is synchronized to.
func (c *Comp) Domain() *sim.Domain {
	return c.domain
}

// Depth returns the number of words.
func (c *Comp) Depth() int {
	return c.array.Depth()
}

// Width returns the number of bits per word.
func (c *Comp) Width() int {
	return c.array.Width()
}

// CurrentCycle returns the number of cycles evaluated since the memory was
// built or reset.
func (c *Comp) CurrentCycle() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.cycle
}

// Peek returns the word stored at addr without advancing the clock.
func (c *Comp) Peek(addr Address) Word {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.array.Read(addr)
}

// Snapshot returns a copy of the memory contents.
func (c *Comp) Snapshot() []Word {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.array.Snapshot()
}

// Reset empties the output register and restarts the cycle count. The memory
// contents are kept.
func (c *Comp) Reset() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.register = Undefined(c.array.Width())
	c.cycle = 0
}

// Tick evaluates one cycle and returns the value emitted by the output
// register in this cycle.
func (c *Comp) Tick(in CycleInput) Word {
	if c.NumHooks() > 0 {
		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    HookPosBeforeCycle,
			Item:   in,
		})
	}

	rec := c.evaluate(in)

	if c.NumHooks() > 0 {
		if in.WriteEnable && !rec.Wrote {
			c.InvokeHook(hooking.HookCtx{
				Domain: c,
				Pos:    HookPosWriteDropped,
				Item:   in,
			})
		}

		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    HookPosAfterCycle,
			Item:   in,
			Detail: rec,
		})
	}

	return rec.Output
}

// evaluate updates the array, the output register, and the cycle count in
// one critical section. Hooks run outside of it so that they can inspect the
// memory.
func (c *Comp) evaluate(in CycleInput) CycleRecord {
	c.lock.Lock()
	defer c.lock.Unlock()

	rec := CycleRecord{
		Cycle:  c.cycle,
		Input:  in,
		Read:   c.array.Read(in.ReadAddr),
		Output: c.register,
	}

	if in.WriteEnable {
		rec.Wrote = c.array.Write(in.WriteAddr, in.WriteData)
	}

	c.register = rec.Read
	c.cycle++

	return rec
}

// Run evaluates one cycle per input and returns the emitted values. The
// result has the same length as inputs.
func (c *Comp) Run(inputs []CycleInput) []Word {
	outputs := make([]Word, 0, len(inputs))
	for _, in := range inputs {
		outputs = append(outputs, c.Tick(in))
	}

	return outputs
}

// Stream evaluates cycles lazily. Each input is consumed only when the
// corresponding output is requested.
func (c *Comp) Stream(inputs iter.Seq[CycleInput]) iter.Seq[Word] {
	return func(yield func(Word) bool) {
		for in := range inputs {
			if !yield(c.Tick(in)) {
				return
			}
		}
	}
}
