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

import "nyx.dev/nyx/pkg/nyxirq"

// CurrentTaskID returns the id of the current task, read under an IRQ-safe
// critical section.
func (sch *Scheduler) CurrentTaskID() TaskID {
	return nyxirq.IRQSave(func() TaskID {
		return sch.currentTask.Load().id
	})
}

// CurrentStack returns the base address of the current task's stack
// region.
func (sch *Scheduler) CurrentStack() uintptr {
	return nyxirq.IRQSave(func() uintptr {
		return sch.currentTask.Load().StackBottom()
	})
}

// RootPageTable returns the current task's advisory MMU root. No TLB flush
// is issued at this layer.
func (sch *Scheduler) RootPageTable() uintptr {
	return nyxirq.IRQSave(func() uintptr {
		return sch.currentTask.Load().rootPageTable
	})
}

// SetRootPageTable stores the current task's advisory MMU root.
func (sch *Scheduler) SetRootPageTable(addr uintptr) {
	nyxirq.IRQSaveVoid(func() {
		sch.currentTask.Load().rootPageTable = addr
	})
}

// CurrentTask returns the task currently bound to the CPU. It exists for
// diagnostics (nyxctl ps) and tests; scheduler-internal code should prefer
// the unexported currentTask.Load() to avoid an unnecessary IRQSave.
func (sch *Scheduler) CurrentTask() *Task {
	return nyxirq.IRQSave(func() *Task {
		return sch.currentTask.Load()
	})
}

// IdleTaskID returns the id of the distinguished idle task.
func (sch *Scheduler) IdleTaskID() TaskID {
	return sch.idleTask.id
}

// NumLiveTasks returns the current count of live non-idle tasks.
func (sch *Scheduler) NumLiveTasks() int64 {
	return NumTasks.Load()
}

// Tasks visits every live task in ascending TaskID order. It is used by
// diagnostics; it is not on any scheduling hot path.
func (sch *Scheduler) Tasks(fn func(*Task) bool) {
	nyxirq.IRQSaveVoid(func() {
		tbl, unlock := sch.tasks.Lock()
		defer unlock()
		tbl.ascend(fn)
	})
}
