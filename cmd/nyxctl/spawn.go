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

	"nyx.dev/nyx/pkg/nyxlog"
	"nyx.dev/nyx/pkg/nyxsched"
)

// spawnCmd implements subcommands.Command for "spawn": exercises
// Scheduler.Spawn's priority validation in isolation, which is otherwise
// only reachable from "run" with a fixed priority.
type spawnCmd struct {
	priority  int
	stackSize int
}

func (*spawnCmd) Name() string     { return "spawn" }
func (*spawnCmd) Synopsis() string { return "spawn a single demo task and report the result" }
func (*spawnCmd) Usage() string    { return "spawn [flags]\n" }

func (c *spawnCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.priority, "priority", 0, "priority level in [0, NumPriorities)")
	f.IntVar(&c.stackSize, "stack-size", 4096, "stack size in bytes")
}

func (c *spawnCmd) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	sch := newDemoScheduler()
	id, err := sch.Spawn(0, nyxsched.TaskPriority(c.priority), c.stackSize)
	if err != nil {
		nyxlog.Log.Errorf("nyxctl spawn: %v", err)
		return subcommands.ExitFailure
	}
	nyxlog.Log.Infof("nyxctl spawn: created task %d at priority %d", id, c.priority)
	return subcommands.ExitSuccess
}
