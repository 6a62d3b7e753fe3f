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

// TaskStatus is the lifecycle state of a task. Transitions between states
// are enforced entirely by Scheduler while its critical sections are held;
// see schedule.go and scheduler.go.
type TaskStatus int32

const (
	// StatusInvalid marks a TCB that has transitioned out of Finished but
	// has not yet been removed from the task table.
	StatusInvalid TaskStatus = iota
	// StatusReady marks a task sitting in the ready queue, eligible for
	// selection.
	StatusReady
	// StatusRunning marks the task currently owning the CPU.
	StatusRunning
	// StatusBlocked marks a task waiting on an external event; it is not in
	// the ready queue.
	StatusBlocked
	// StatusFinished marks a task that called Exit/Abort but whose stack is
	// still in use by the switch that is unwinding out of it.
	StatusFinished
	// StatusIdle is reserved for the idle task exclusively.
	StatusIdle
)

func (s TaskStatus) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusReady:
		return "ready"
	case StatusRunning:
		return "running"
	case StatusBlocked:
		return "blocked"
	case StatusFinished:
		return "finished"
	case StatusIdle:
		return "idle"
	default:
		return "unknown"
	}
}
