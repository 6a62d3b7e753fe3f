// Copyright 2024 The Nyx Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nyxsched

import (
	"sync/atomic"

	"nyx.dev/nyx/pkg/nyxarch"
)

// Task is the task control block (TCB): per-task state shared between the
// scheduler's task table, the ready queue (while Ready), and the
// currentTask slot (while Running).
//
// id and priority never change after construction. status,
// lastStackPointer (written through by the Switcher inside Schedule),
// rootPageTable and next are mutated only while the scheduler's IRQ-safe
// critical section is held; Status reads status atomically without a lock.
type Task struct {
	id       TaskID
	priority TaskPriority
	status   atomic.Int32

	// lastStackPointer is the task's saved stack pointer while it is not
	// running. While Running, this field is stale; the live value is
	// whatever the hardware (or, hosted, the injected nyxarch.Switcher)
	// currently holds.
	lastStackPointer uintptr

	stack         nyxarch.Stack
	rootPageTable uintptr

	// next links this Task into exactly one intrusive FIFO at a time: a
	// priority level's ready queue. A Task must never appear in the ready
	// queue more than once, so a single link field is sufficient and
	// avoids a second allocation on every push.
	next *Task
}

func newTask(id TaskID, status TaskStatus, priority TaskPriority, stack nyxarch.Stack) *Task {
	t := &Task{id: id, priority: priority, stack: stack}
	t.status.Store(int32(status))
	return t
}

// ID returns the task's immutable identifier.
func (t *Task) ID() TaskID { return t.id }

// Priority returns the task's immutable scheduling priority.
func (t *Task) Priority() TaskPriority { return t.priority }

// Status returns the task's current status. Outside of the scheduler's own
// bookkeeping, this is a snapshot: it may be stale the instant it is
// observed.
func (t *Task) Status() TaskStatus { return TaskStatus(t.status.Load()) }

func (t *Task) setStatus(s TaskStatus) { t.status.Store(int32(s)) }

// StackBottom returns the base address of this task's stack region.
func (t *Task) StackBottom() uintptr { return t.stack.Bottom() }

// RootPageTable returns the advisory physical address of this task's
// top-level page table. The scheduler does not itself switch address
// spaces; this is storage only.
func (t *Task) RootPageTable() uintptr { return t.rootPageTable }
