package trace

import (
	"sync"

	"github.com/sarchlab/bram/mem/bram"
	"github.com/sarchlab/bram/sim/hooking"
)

// Tags counted by a TagCounter.
const (
	TagCycle          = "cycle"
	TagRead           = "read"
	TagUndefinedRead  = "undefined_read"
	TagWrite          = "write"
	TagDroppedWrite   = "dropped_write"
	TagUndefinedWrite = "undefined_write"
)

// TagCounter is a hook that counts how many times each kind of access
// happens in a memory.
type TagCounter struct {
	lock     sync.Mutex
	tagNames []string
	tagCount map[string]uint64
}

// NewTagCounter creates a new TagCounter.
func NewTagCounter() *TagCounter {
	return &TagCounter{
		tagCount: make(map[string]uint64),
	}
}

// GetTagNames returns the tags seen so far, in the order they first appeared.
func (t *TagCounter) GetTagNames() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	names := make([]string, len(t.tagNames))
	copy(names, t.tagNames)

	return names
}

// GetTagCount returns the number of times a tag was counted.
func (t *TagCounter) GetTagCount(tagName string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tagCount[tagName]
}

// Func counts the accesses of a completed cycle.
func (t *TagCounter) Func(ctx hooking.HookCtx) {
	if ctx.Pos != bram.HookPosAfterCycle {
		return
	}

	rec, ok := ctx.Detail.(bram.CycleRecord)
	if !ok {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.countTag(TagCycle)

	if rec.Read.IsDefined() {
		t.countTag(TagRead)
	} else {
		t.countTag(TagUndefinedRead)
	}

	if !rec.Input.WriteEnable {
		return
	}

	switch {
	case !rec.Wrote:
		t.countTag(TagDroppedWrite)
	case !rec.Input.WriteData.IsDefined():
		t.countTag(TagUndefinedWrite)
	default:
		t.countTag(TagWrite)
	}
}

func (t *TagCounter) countTag(tag string) {
	if _, ok := t.tagCount[tag]; !ok {
		t.tagNames = append(t.tagNames, tag)
	}

	t.tagCount[tag]++
}
