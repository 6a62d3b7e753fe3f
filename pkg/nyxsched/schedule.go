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

import "nyx.dev/nyx/pkg/nyxlog"

// Schedule is the core scheduling decision procedure. Its precondition is
// that interrupts are already disabled by the caller (Reschedule, or a
// caller that has taken its own nyxirq.Save()). It:
//
//  1. Reaps at most one finished task: pops a single id from
//     finishedTasks, if any, and removes its TCB from the task table,
//     which releases its stack.
//  2. Snapshots the current task's id, priority, and status.
//  3. Picks a successor: a strictly-higher-priority ready task if current
//     is Running, otherwise the best available, otherwise the idle task if
//     current cannot be resumed, otherwise no switch at all.
//  4. Commits current's disposition (Ready/Invalid/no-op) for its prior
//     state.
//  5. Installs the successor as Running / currentTask.
//  6. Invokes the architectural switch.
func (sch *Scheduler) Schedule() {
	sch.reapOne()

	cur := sch.currentTask.Load()
	curStatus := cur.Status()
	curPriority := cur.priority

	next := sch.pickSuccessor(cur, curStatus, curPriority)
	if next == nil {
		return
	}

	sch.commitCurrentDisposition(cur, curStatus)

	next.setStatus(StatusRunning)
	newSP := next.lastStackPointer
	sch.currentTask.Store(next)

	nyxlog.Log.Debugf("nyxsched: switching task %d -> %d", cur.id, next.id)
	sch.switcher.Switch(&cur.lastStackPointer, newSP)
}

// reapOne pops at most one finished-task id and removes its TCB from the
// task table, releasing the stack. Bounded to one per pass so the work is
// amortised and bounded inside the critical section.
func (sch *Scheduler) reapOne() {
	ft, unlockFT := sch.finishedTasks.Lock()
	var id TaskID
	ok := false
	if len(*ft) > 0 {
		id = (*ft)[0]
		*ft = (*ft)[1:]
		ok = true
	}
	unlockFT()

	if !ok {
		return
	}

	tbl, unlock := sch.tasks.Lock()
	_, removed := tbl.remove(id)
	unlock()

	if !removed {
		nyxlog.Log.Infof("nyxsched: unable to drop task %d", id)
	}
}

// pickSuccessor implements step 3 of the decision procedure.
func (sch *Scheduler) pickSuccessor(cur *Task, curStatus TaskStatus, curPriority TaskPriority) *Task {
	rq, unlock := sch.readyQueue.Lock()
	var next *Task
	if curStatus == StatusRunning {
		next = rq.popWithPriority(curPriority)
	} else {
		next = rq.pop()
	}
	unlock()

	if next == nil && curStatus != StatusRunning && curStatus != StatusIdle {
		if sch.idleLogLimiter.Allow() {
			nyxlog.Log.Debugf("nyxsched: switch to idle task")
		}
		next = sch.idleTask
	}
	return next
}

// commitCurrentDisposition implements step 4 of the decision procedure.
func (sch *Scheduler) commitCurrentDisposition(cur *Task, curStatus TaskStatus) {
	switch curStatus {
	case StatusRunning:
		if cur == sch.idleTask {
			// The idle task is never queued: a preempted idle task simply
			// goes back to being dormant, since invariant #2 (ready-queue
			// membership) requires the idle task is never in the queue
			// regardless of what status it last ran with.
			cur.setStatus(StatusIdle)
			return
		}
		nyxlog.Log.Debugf("nyxsched: add task %d to ready queue", cur.id)
		cur.setStatus(StatusReady)
		rq, unlock := sch.readyQueue.Lock()
		rq.push(cur)
		unlock()
	case StatusFinished:
		nyxlog.Log.Debugf("nyxsched: task %d finished", cur.id)
		cur.setStatus(StatusInvalid)
		// The stack must not be freed now: the switch primitive below
		// still executes on it. Defer release to a later Schedule pass via
		// reapOne.
		ft, unlock := sch.finishedTasks.Lock()
		*ft = append(*ft, cur.id)
		unlock()
	case StatusBlocked, StatusIdle:
		// No ready-queue insertion.
	}
}
