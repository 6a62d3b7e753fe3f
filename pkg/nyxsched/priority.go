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

// TaskPriority is a scheduling priority level. Higher numeric value means
// higher scheduling priority.
type TaskPriority int

// NumPriorities is the number of distinct priority levels the ready queue
// maintains. Valid TaskPriority values are in [0, NumPriorities).
const NumPriorities = 8

func validPriority(p TaskPriority) bool {
	return p >= 0 && p < NumPriorities
}
