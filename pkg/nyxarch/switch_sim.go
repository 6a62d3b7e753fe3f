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

//go:build !amd64 || nyxarch_sim

package nyxarch

import "sync/atomic"

// simCounter hands out distinct fake stack-pointer values so that repeated
// Switch calls in a hosted build (no real register file to save) still
// produce distinguishable, comparable oldSPSlot contents. It keeps no record
// of the (oldSPSlot, newSP) pairs; a harness that asserts on them injects
// its own Switcher.
var simCounter atomic.Uint64

type defaultSwitcher struct{}

func (defaultSwitcher) Switch(oldSPSlot *uintptr, newSP uintptr) {
	*oldSPSlot = uintptr(simCounter.Add(1))
	// There is no real stack to swap to in the simulation; newSP is simply
	// the value the caller already computed from the target task's saved
	// stack pointer; nothing further to do. Scheduler correctness does not
	// depend on this function transferring control, only on bookkeeping.
	_ = newSP
}
