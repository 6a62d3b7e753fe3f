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

	"nyx.dev/nyx/pkg/nyxboot"
	"nyx.dev/nyx/pkg/nyxconfig"
	"nyx.dev/nyx/pkg/nyxlog"
	"nyx.dev/nyx/pkg/nyxsched"
)

// bootCmd implements subcommands.Command for "boot": GDT/TSS bring-up, log
// sink wiring, and the boot log single-instance lock, with no scheduler
// constructed yet.
type bootCmd struct {
	configPath string
	bootLog    string
}

func (*bootCmd) Name() string     { return "boot" }
func (*bootCmd) Synopsis() string { return "perform GDT/TSS bring-up and configure log sinks" }
func (*bootCmd) Usage() string    { return "boot [flags]\n" }

func (c *bootCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "path to a nyxconfig TOML file (optional)")
	f.StringVar(&c.bootLog, "boot-log", "nyx-boot.log", "path to the advisory single-instance boot log")
}

func (c *bootCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := nyxconfig.Load(c.configPath)
	if err != nil {
		nyxlog.Log.Errorf("nyxctl boot: %v", err)
		return subcommands.ExitFailure
	}

	lock, err := nyxconfig.LockBootLog(c.bootLog)
	if err != nil {
		nyxlog.Log.Errorf("nyxctl boot: %v", err)
		return subcommands.ExitFailure
	}
	defer lock.Unlock()

	resetSinks := wireLogSinks(cfg)
	defer resetSinks()

	gdt := nyxboot.Install()
	nyxlog.Log.Infof("nyxctl boot: GDT/TSS installed, loaded=%v", gdt.Loaded())
	nyxlog.Log.Infof("nyxctl boot: %d priority levels, serial base %#x", cfg.Scheduler.NumPriorities, cfg.Serial.BasePort)
	if cfg.Scheduler.NumPriorities != nyxsched.NumPriorities {
		nyxlog.Log.Warnf("nyxctl boot: config asks for %d priority levels, but the ready queue has %d compiled in", cfg.Scheduler.NumPriorities, nyxsched.NumPriorities)
	}

	return subcommands.ExitSuccess
}
