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

// Package nyxsched implements the preemptive, priority-based task
// scheduler: task control blocks, the priority ready queue, and the
// scheduling decision / context-switch protocol.
package nyxsched

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"nyx.dev/nyx/pkg/nyxarch"
	"nyx.dev/nyx/pkg/nyxirq"
	"nyx.dev/nyx/pkg/nyxlog"
)

const idleStackSize = 4096

// Scheduler owns every TCB, the current/idle task pointers, the ready
// queue, and the finished-task reaper queue.
type Scheduler struct {
	currentTask atomic.Pointer[Task]
	idleTask    *Task

	readyQueue    *nyxirq.SpinlockIrqSave[priorityQueue]
	finishedTasks *nyxirq.SpinlockIrqSave[[]TaskID]
	tasks         *nyxirq.SpinlockIrqSave[taskTable]

	switcher nyxarch.Switcher

	// idleLogLimiter bounds how often the idle-fallback selection in
	// schedule() logs at debug level, so a long idle stretch (nothing
	// runnable) does not flood the log sinks with one line per
	// reschedule().
	idleLogLimiter *rate.Limiter
}

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

// WithSwitcher overrides the architectural context-switch primitive. Tests
// use this to inject a recording fake; production code should not normally
// need it, since nyxarch.Default already selects the right backend for the
// build.
func WithSwitcher(s nyxarch.Switcher) Option {
	return func(sch *Scheduler) { sch.switcher = s }
}

// New constructs a scheduler. It allocates an idle TCB with status Idle and
// inserts it into the task table; currentTask and idleTask both reference
// it. The ready queue starts empty.
func New(opts ...Option) *Scheduler {
	sch := &Scheduler{
		readyQueue:     nyxirq.NewSpinlockIrqSave(priorityQueue{}),
		finishedTasks:  nyxirq.NewSpinlockIrqSave([]TaskID{}),
		tasks:          nyxirq.NewSpinlockIrqSave(newTaskTable()),
		switcher:       nyxarch.Default,
		idleLogLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(sch)
	}

	idleID := allocTaskID(func(TaskID) bool { return false })
	idle := newTask(idleID, StatusIdle, 0, nyxarch.NewStack(idleStackSize))
	sch.idleTask = idle
	sch.currentTask.Store(idle)

	tbl, unlock := sch.tasks.Lock()
	tbl.insert(idle)
	unlock()

	return sch
}

// Spawn validates priority, allocates a new unique id, constructs a TCB
// with status Ready, initializes a fresh kernel stack so the first context
// switch into it returns into entry, inserts it into the task table, and
// pushes it onto the ready queue. It fails with ErrBadPriority if priority
// is out of range; no partial state is visible on failure.
func (sch *Scheduler) Spawn(entry uintptr, priority TaskPriority, stackSize int) (TaskID, error) {
	flags := nyxirq.Save()
	defer flags.Restore()

	if !validPriority(priority) {
		return 0, ErrBadPriority
	}

	tbl, unlock := sch.tasks.Lock()
	id := allocTaskID(tbl.contains)
	stack := nyxarch.NewStack(stackSize)
	sp := stack.Prepare(entry)
	task := newTask(id, StatusReady, priority, stack)
	task.lastStackPointer = sp
	tbl.insert(task)
	unlock()

	rq, unlockRQ := sch.readyQueue.Lock()
	rq.push(task)
	unlockRQ()

	NumTasks.Add(1)
	nyxlog.Log.Infof("nyxsched: creating task %d at priority %d", id, priority)
	return id, nil
}

// BlockCurrentTask requires current_task.status == Running (fatal
// otherwise), sets it to Blocked, and returns the TCB so the caller can
// register it in a wait object and later pass it to WakeupTask. It does
// not itself reschedule.
func (sch *Scheduler) BlockCurrentTask() *Task {
	return nyxirq.IRQSave(func() *Task {
		cur := sch.currentTask.Load()
		if cur.Status() != StatusRunning {
			fatal("nyxsched: unable to block task %d: not running", cur.id)
		}
		nyxlog.Log.Debugf("nyxsched: block task %d", cur.id)
		cur.setStatus(StatusBlocked)
		return cur
	})
}

// WakeupTask transitions task from Blocked to Ready and pushes it onto the
// ready queue. If task is in any other state the call is a no-op: the
// legitimate race where the task has already been woken from another
// source is benign, not an error.
func (sch *Scheduler) WakeupTask(task *Task) {
	nyxirq.IRQSaveVoid(func() {
		if task.Status() != StatusBlocked {
			return
		}
		nyxlog.Log.Debugf("nyxsched: wakeup task %d", task.id)
		task.setStatus(StatusReady)
		rq, unlock := sch.readyQueue.Lock()
		defer unlock()
		rq.push(task)
	})
}

// Exit refuses to terminate the idle task (fatal), otherwise marks the
// current task Finished and reschedules. It never returns.
func (sch *Scheduler) Exit() {
	sch.terminate("exit")
}

// Abort is semantically identical to Exit at this layer; the two differ
// only in the log line they produce, and are the hook point a future
// implementation may use to distinguish orderly vs abrupt teardown.
func (sch *Scheduler) Abort() {
	sch.terminate("abort")
}

func (sch *Scheduler) terminate(verb string) {
	nyxirq.IRQSaveVoid(func() {
		cur := sch.currentTask.Load()
		if cur.Status() == StatusIdle {
			fatal("nyxsched: unable to %s idle task", verb)
		}
		nyxlog.Log.Infof("nyxsched: %s task %d", verb, cur.id)
		sch.cleanup()
	})

	sch.Reschedule()
	fatal("nyxsched: %s failed: reschedule returned", verb)
}

// cleanup marks current_task Finished and decrements NumTasks. It
// deliberately does not free the stack or remove the TCB from the task
// table; schedule() defers that until the outgoing stack is no longer in
// use.
func (sch *Scheduler) cleanup() {
	sch.currentTask.Load().setStatus(StatusFinished)
	NumTasks.Add(-1)
}

// Reschedule invokes Schedule under an IRQ-safe critical section.
func (sch *Scheduler) Reschedule() {
	nyxirq.IRQSaveVoid(sch.Schedule)
}
