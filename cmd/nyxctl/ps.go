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

package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"nyx.dev/nyx/pkg/nyxsched"
)

// psCmd implements subcommands.Command for "ps". There is no persistent
// kernel process to attach to in this hosted demo, so ps constructs a fresh
// scheduler the same way run does, spawns the requested number of demo
// tasks, schedules once, and prints the resulting table: enough to inspect
// the task table and ready-queue bookkeeping without driving a full tick
// loop.
type psCmd struct {
	workers  int
	priority int
}

func (*psCmd) Name() string     { return "ps" }
func (*psCmd) Synopsis() string { return "list tasks in a freshly constructed demo scheduler" }
func (*psCmd) Usage() string    { return "ps [flags]\n" }

func (c *psCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.workers, "workers", 3, "number of demo tasks to spawn before listing")
	f.IntVar(&c.priority, "priority", 1, "priority level to spawn demo tasks at")
}

func (c *psCmd) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	sch := newDemoScheduler()
	for i := 0; i < c.workers; i++ {
		if _, err := sch.Spawn(0, nyxsched.TaskPriority(c.priority), 4096); err != nil {
			return subcommands.ExitFailure
		}
	}
	sch.Reschedule()
	renderPS(sch)
	return subcommands.ExitSuccess
}
