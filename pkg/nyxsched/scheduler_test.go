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

import "testing"

const testStackSize = 4096

func newTestScheduler() (*Scheduler, *recordingSwitcher) {
	rec := &recordingSwitcher{}
	return New(WithSwitcher(rec)), rec
}

// assertInvariants checks testable properties #2 (ready-queue membership)
// and #3 (at most one Running) against the scheduler's current state.
func assertInvariants(t *testing.T, sch *Scheduler) {
	t.Helper()

	rq, unlockRQ := sch.readyQueue.Lock()
	tbl, unlockTbl := sch.tasks.Lock()
	defer unlockTbl()
	defer unlockRQ()

	running := 0
	tbl.ascend(func(task *Task) bool {
		inQueue := rq.contains(task)
		wantInQueue := task.Status() == StatusReady && task != sch.idleTask
		if inQueue != wantInQueue {
			t.Errorf("task %d: status=%v inQueue=%v, want inQueue=%v", task.id, task.Status(), inQueue, wantInQueue)
		}
		if task.Status() == StatusRunning {
			running++
		}
		return true
	})
	if running > 1 {
		t.Errorf("found %d Running tasks, want at most 1", running)
	}
}

func TestS1IdleOnly(t *testing.T) {
	sch, rec := newTestScheduler()
	sch.Reschedule()

	if len(rec.calls) != 0 {
		t.Fatalf("expected no switch, got %d", len(rec.calls))
	}
	if sch.CurrentTaskID() != sch.IdleTaskID() {
		t.Fatalf("current task = %d, want idle task %d", sch.CurrentTaskID(), sch.IdleTaskID())
	}
	assertInvariants(t, sch)
}

func TestS2SpawnAndRun(t *testing.T) {
	sch, rec := newTestScheduler()
	aID, err := sch.Spawn(0x1000, 1, testStackSize)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	sch.Reschedule()

	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 switch, got %d", len(rec.calls))
	}
	if sch.CurrentTaskID() != aID {
		t.Fatalf("current task = %d, want %d", sch.CurrentTaskID(), aID)
	}
	if sch.CurrentTask().Status() != StatusRunning {
		t.Fatalf("A status = %v, want Running", sch.CurrentTask().Status())
	}
	if sch.idleTask.Status() != StatusIdle {
		t.Fatalf("idle status = %v, want Idle (not Ready)", sch.idleTask.Status())
	}
	assertInvariants(t, sch)
}

func TestS3RoundRobinWithinPriority(t *testing.T) {
	sch, rec := newTestScheduler()
	aID, _ := sch.Spawn(0x1000, 1, testStackSize)
	_, _ = sch.Spawn(0x2000, 1, testStackSize)

	sch.Reschedule() // -> A (first inserted)
	if sch.CurrentTaskID() != aID {
		t.Fatalf("current = %d, want A (%d)", sch.CurrentTaskID(), aID)
	}
	assertInvariants(t, sch)

	aTask := sch.BlockCurrentTask()
	sch.Reschedule() // -> B
	bTask := sch.CurrentTask()
	if bTask.Status() != StatusRunning {
		t.Fatalf("B status = %v, want Running", bTask.Status())
	}
	assertInvariants(t, sch)

	calls := len(rec.calls)
	sch.WakeupTask(aTask)
	sch.Reschedule() // equal priority: no switch, B keeps running
	if len(rec.calls) != calls {
		t.Fatalf("expected no switch for equal-priority wakeup, calls went %d -> %d", calls, len(rec.calls))
	}
	if sch.CurrentTask() != bTask {
		t.Fatalf("current task changed unexpectedly")
	}
	assertInvariants(t, sch)

	sch.BlockCurrentTask()
	sch.Reschedule() // -> A again
	if sch.CurrentTaskID() != aID {
		t.Fatalf("current = %d, want A (%d)", sch.CurrentTaskID(), aID)
	}
	assertInvariants(t, sch)
}

func TestS4StrictPriorityPreemption(t *testing.T) {
	sch, rec := newTestScheduler()
	aID, _ := sch.Spawn(0x1000, 1, testStackSize)
	sch.Reschedule() // -> A
	if sch.CurrentTaskID() != aID {
		t.Fatalf("current = %d, want A (%d)", sch.CurrentTaskID(), aID)
	}

	bID, _ := sch.Spawn(0x2000, 2, testStackSize)
	callsBefore := len(rec.calls)
	sch.Reschedule() // higher priority B preempts A
	if len(rec.calls) != callsBefore+1 {
		t.Fatalf("expected a switch for higher-priority preemption")
	}
	if sch.CurrentTaskID() != bID {
		t.Fatalf("current = %d, want B (%d)", sch.CurrentTaskID(), bID)
	}
	assertInvariants(t, sch)

	sch.BlockCurrentTask()
	sch.Reschedule() // B blocks, back to A
	if sch.CurrentTaskID() != aID {
		t.Fatalf("current = %d, want A (%d)", sch.CurrentTaskID(), aID)
	}
	assertInvariants(t, sch)
}

// TestIdleRevertsToIdleWithoutQueueing drives the scheduler into the one
// state that exercises commitCurrentDisposition's idle-task special case:
// the idle task selected via the fallback path, running, and then
// preempted back out by a real task becoming ready. The idle task must
// revert to StatusIdle directly, never passing through StatusReady or the
// ready queue.
func TestIdleRevertsToIdleWithoutQueueing(t *testing.T) {
	sch, rec := newTestScheduler()
	aID, _ := sch.Spawn(0x1000, 1, testStackSize)

	sch.Reschedule() // idle -> A
	if sch.CurrentTaskID() != aID {
		t.Fatalf("current = %d, want A (%d)", sch.CurrentTaskID(), aID)
	}

	aTask := sch.BlockCurrentTask()
	sch.Reschedule() // A blocks, ready queue empty -> idle fallback
	if sch.CurrentTaskID() != sch.IdleTaskID() {
		t.Fatalf("current = %d, want idle (%d)", sch.CurrentTaskID(), sch.IdleTaskID())
	}
	if sch.idleTask.Status() != StatusRunning {
		t.Fatalf("idle status = %v, want Running", sch.idleTask.Status())
	}
	assertInvariants(t, sch)

	sch.WakeupTask(aTask) // A is ready again, at a priority above idle's 0
	callsBefore := len(rec.calls)
	sch.Reschedule() // idle is preempted back out by A
	if len(rec.calls) != callsBefore+1 {
		t.Fatalf("expected a switch when a real task preempts idle")
	}
	if sch.CurrentTaskID() != aID {
		t.Fatalf("current = %d, want A (%d)", sch.CurrentTaskID(), aID)
	}
	if sch.idleTask.Status() != StatusIdle {
		t.Fatalf("idle status = %v, want Idle (not Ready) after being preempted", sch.idleTask.Status())
	}
	assertInvariants(t, sch)
}

func TestS5ExitAndReap(t *testing.T) {
	sch, _ := newTestScheduler()
	aID, _ := sch.Spawn(0x1000, 1, testStackSize)
	bID, _ := sch.Spawn(0x2000, 1, testStackSize)
	sch.Reschedule() // -> A

	if sch.CurrentTaskID() != aID {
		t.Fatalf("current = %d, want A (%d)", sch.CurrentTaskID(), aID)
	}

	numBefore := sch.NumLiveTasks()

	// Exit never returns; run it on a goroutine so the test can observe
	// the resulting state, since Exit() calls Reschedule() internally and
	// our test double never actually transfers control away from this
	// goroutine's stack.
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		defer func() { recover() }()
		sch.Exit()
	}()
	<-exited

	if sch.CurrentTaskID() != bID {
		t.Fatalf("current = %d, want B (%d)", sch.CurrentTaskID(), bID)
	}
	ft, unlock := sch.finishedTasks.Lock()
	found := false
	for _, id := range *ft {
		if id == aID {
			found = true
		}
	}
	unlock()
	if !found {
		t.Fatalf("expected A (%d) in finishedTasks", aID)
	}
	aTbl, unlockTbl := sch.tasks.Lock()
	aTask, stillPresent := aTbl.get(aID)
	unlockTbl()
	if !stillPresent {
		t.Fatalf("A should still be present (Invalid) until the next reap pass")
	}
	if aTask.Status() != StatusInvalid {
		t.Fatalf("A status = %v, want Invalid", aTask.Status())
	}
	if sch.NumLiveTasks() != numBefore-1 {
		t.Fatalf("NumLiveTasks = %d, want %d", sch.NumLiveTasks(), numBefore-1)
	}

	// B blocks; idle runs; this pass reaps A's TCB.
	sch.BlockCurrentTask()
	sch.Reschedule()

	_, stillPresent = func() (*Task, bool) {
		tbl, unlock := sch.tasks.Lock()
		defer unlock()
		return tbl.get(aID)
	}()
	if stillPresent {
		t.Fatalf("A should have been reaped from the task table")
	}
}

func TestS6RejectBadPriority(t *testing.T) {
	sch, _ := newTestScheduler()
	before := sch.NumLiveTasks()

	_, err := sch.Spawn(0x1000, NumPriorities, testStackSize)
	if err != ErrBadPriority {
		t.Fatalf("err = %v, want ErrBadPriority", err)
	}
	if sch.NumLiveTasks() != before {
		t.Fatalf("NumLiveTasks changed on rejected spawn")
	}
}

func TestUniqueTaskIDs(t *testing.T) {
	sch, _ := newTestScheduler()
	seen := map[TaskID]bool{}
	for i := 0; i < 50; i++ {
		id, err := sch.Spawn(0x1000, 0, testStackSize)
		if err != nil {
			t.Fatalf("Spawn: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate task id %d", id)
		}
		seen[id] = true
	}
}

func TestBlockNonRunningIsFatal(t *testing.T) {
	sch, _ := newTestScheduler()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when blocking a non-Running task")
		}
	}()
	sch.BlockCurrentTask() // current is idle, status Idle, not Running
}

func TestExitIdleIsFatal(t *testing.T) {
	sch, _ := newTestScheduler()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when exiting the idle task")
		}
	}()
	sch.Exit()
}

func TestWakeupNonBlockedIsNoop(t *testing.T) {
	sch, rec := newTestScheduler()
	aID, _ := sch.Spawn(0x1000, 1, testStackSize)
	tbl, unlock := sch.tasks.Lock()
	aTask, _ := tbl.get(aID)
	unlock()

	callsBefore := len(rec.calls)
	sch.WakeupTask(aTask) // aTask is Ready, not Blocked
	if len(rec.calls) != callsBefore {
		t.Fatalf("wakeup of a non-blocked task should not trigger a switch")
	}
	if aTask.Status() != StatusReady {
		t.Fatalf("status changed from Ready by a no-op wakeup: %v", aTask.Status())
	}
}
