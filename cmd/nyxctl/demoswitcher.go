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

import "nyx.dev/nyx/pkg/nyxlog"

// demoSwitcher stands in for nyxarch.Default in this hosted CLI: spec.md
// section 8 is explicit that a host-side harness may substitute a stub
// switch, and a CLI process has no business jumping to the synthetic stack
// frames nyxarch.Stack.Prepare writes (those are only valid as real kernel
// stacks under a real architectural switch). It only records the stack
// pointer bookkeeping the scheduler depends on and logs the transition.
type demoSwitcher struct{}

func (demoSwitcher) Switch(oldSPSlot *uintptr, newSP uintptr) {
	*oldSPSlot = newSP ^ 1 // distinguish the saved value from newSP for logging only.
	nyxlog.Log.Debugf("nyxctl: simulated switch to sp=%#x", newSP)
}
