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

import "sync/atomic"

// TaskID is an opaque task identifier, allocated from a monotonically
// increasing counter. On wraparound or collision with a still-live task,
// the allocator probes forward until an unused id is found.
type TaskID uint64

// NumTasks is the current count of live non-idle tasks.
var NumTasks atomic.Int64

// tidCounter is the next-id source; shared by every Scheduler instance, as
// spec.md models it as process-wide state rather than per-scheduler state.
var tidCounter atomic.Uint64

func allocTaskID(taken func(TaskID) bool) TaskID {
	for {
		id := TaskID(tidCounter.Add(1))
		if !taken(id) {
			return id
		}
	}
}
