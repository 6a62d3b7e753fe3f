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

// Package nyxarch defines the architecture-specific boundary the scheduler
// calls through: the context-switch primitive and fresh-stack layout.
//
// The primitive's contract is normative; its body is not. On amd64 builds
// without the nyxarch_sim tag, Switch is backed by a small assembly
// trampoline (switch_amd64.s) that saves callee-saved registers onto the
// outgoing stack, swaps the stack pointer, and returns into the incoming
// task. Everywhere else (any other architecture, and any build tagged
// nyxarch_sim), Switch is backed by a bookkeeping-only simulation that
// writes a distinct fake stack pointer through oldSPSlot without ever
// touching a real register.
package nyxarch

// Switcher performs the low-level stack swap between two tasks.
//
// Switch saves the calling task's callee-saved register state onto its own
// stack, writes the resulting stack pointer through oldSPSlot, loads newSP,
// restores callee-saved state from the new stack, and returns -- which, the
// first time a freshly spawned task's stack is switched to, is a return
// into that task's entry function.
type Switcher interface {
	Switch(oldSPSlot *uintptr, newSP uintptr)
}

// Default is the Switcher used by a Scheduler constructed with no explicit
// override. It is set by whichever of switch_amd64.go / switch_sim.go is
// compiled in.
var Default Switcher = defaultSwitcher{}
