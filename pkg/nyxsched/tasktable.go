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

import "github.com/google/btree"

// taskEntry is the btree item stored in taskTable: TaskID order determines
// btree.Less, and the Task pointer is the payload.
type taskEntry struct {
	id   TaskID
	task *Task
}

func (a taskEntry) Less(than btree.Item) bool {
	return a.id < than.(taskEntry).id
}

// taskTable is the authoritative TaskID -> *Task mapping. It is backed by a
// B-tree rather than a plain map so that diagnostics (nyxctl ps) can walk
// every live task in id order without a separate sort step; the scheduler
// itself never relies on that ordering for correctness.
type taskTable struct {
	tree *btree.BTree
}

func newTaskTable() taskTable {
	return taskTable{tree: btree.New(32)}
}

func (t *taskTable) insert(task *Task) {
	t.tree.ReplaceOrInsert(taskEntry{id: task.id, task: task})
}

func (t *taskTable) get(id TaskID) (*Task, bool) {
	item := t.tree.Get(taskEntry{id: id})
	if item == nil {
		return nil, false
	}
	return item.(taskEntry).task, true
}

func (t *taskTable) remove(id TaskID) (*Task, bool) {
	item := t.tree.Delete(taskEntry{id: id})
	if item == nil {
		return nil, false
	}
	return item.(taskEntry).task, true
}

func (t *taskTable) contains(id TaskID) bool {
	_, ok := t.get(id)
	return ok
}

func (t *taskTable) len() int {
	return t.tree.Len()
}

// ascend visits every task in ascending TaskID order, stopping early if fn
// returns false.
func (t *taskTable) ascend(fn func(*Task) bool) {
	t.tree.Ascend(func(item btree.Item) bool {
		return fn(item.(taskEntry).task)
	})
}
