// Package trace records every cycle of a block RAM into a data recorder.
package trace

import (
	"github.com/sarchlab/bram/datarecording"
	"github.com/sarchlab/bram/mem/bram"
	"github.com/sarchlab/bram/sim"
	"github.com/sarchlab/bram/sim/hooking"
)

// TableName is the table that the Tracer writes into.
const TableName = "bram_cycle"

// CycleEntry is one row of the trace. Words are stored as binary strings,
// with X for undefined bits; addresses are decimal or X.
type CycleEntry struct {
	Memory      string
	Domain      string
	Cycle       uint64
	Time        float64
	ReadAddr    string
	WriteEnable bool
	WriteAddr   string
	WriteData   string
	Wrote       bool
	Read        string
	Output      string
}

type clockedMemory interface {
	Name() string
	Domain() *sim.Domain
}

// A Tracer is a hook that turns each completed cycle into a CycleEntry.
type Tracer struct {
	recorder datarecording.DataRecorder
}

// NewTracer creates a Tracer and the trace table.
func NewTracer(recorder datarecording.DataRecorder) *Tracer {
	recorder.CreateTable(TableName, CycleEntry{})

	return &Tracer{recorder: recorder}
}

// Func records the cycle.
func (t *Tracer) Func(ctx hooking.HookCtx) {
	if ctx.Pos != bram.HookPosAfterCycle {
		return
	}

	rec, ok := ctx.Detail.(bram.CycleRecord)
	if !ok {
		return
	}

	entry := CycleEntry{
		Cycle:       rec.Cycle,
		ReadAddr:    rec.Input.ReadAddr.String(),
		WriteEnable: rec.Input.WriteEnable,
		WriteAddr:   rec.Input.WriteAddr.String(),
		WriteData:   rec.Input.WriteData.String(),
		Wrote:       rec.Wrote,
		Read:        rec.Read.String(),
		Output:      rec.Output.String(),
	}

	if mem, ok := ctx.Domain.(clockedMemory); ok {
		entry.Memory = mem.Name()
		entry.Domain = mem.Domain().Name()
		entry.Time = mem.Domain().Freq().CycleTime(rec.Cycle)
	}

	t.recorder.InsertData(TableName, entry)
}
