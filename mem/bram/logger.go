package bram

import (
	"github.com/sarchlab/bram/sim/hooking"
	"github.com/sirupsen/logrus"
)

// CycleLogger is a hook that logs every cycle of a memory at debug level and
// every dropped write at warning level.
type CycleLogger struct {
	logger logrus.FieldLogger
}

// NewCycleLogger returns a hook that writes into logger.
func NewCycleLogger(logger logrus.FieldLogger) *CycleLogger {
	return &CycleLogger{logger: logger}
}

// Func logs the cycle information.
func (l *CycleLogger) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosAfterCycle:
		rec, ok := ctx.Detail.(CycleRecord)
		if !ok {
			return
		}

		l.entry(ctx).WithFields(logrus.Fields{
			"cycle":  rec.Cycle,
			"raddr":  rec.Input.ReadAddr.String(),
			"we":     rec.Input.WriteEnable,
			"waddr":  rec.Input.WriteAddr.String(),
			"wdata":  rec.Input.WriteData.String(),
			"read":   rec.Read.String(),
			"output": rec.Output.String(),
		}).Debug("cycle")
	case HookPosWriteDropped:
		in, ok := ctx.Item.(CycleInput)
		if !ok {
			return
		}

		l.entry(ctx).WithFields(logrus.Fields{
			"waddr": in.WriteAddr.String(),
			"wdata": in.WriteData.String(),
		}).Warn("write dropped, address does not select a cell")
	}
}

func (l *CycleLogger) entry(ctx hooking.HookCtx) logrus.FieldLogger {
	if named, ok := ctx.Domain.(interface{ Name() string }); ok {
		return l.logger.WithField("memory", named.Name())
	}

	return l.logger
}
