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

//go:build amd64 && !nyxarch_sim

package nyxarch

// switchAsm is implemented in switch_amd64.s. It is the body of the
// architectural switch primitive; its contract, not its implementation, is
// what the rest of this module depends on.
//
//go:noescape
func switchAsm(oldSPSlot *uintptr, newSP uintptr)

type defaultSwitcher struct{}

func (defaultSwitcher) Switch(oldSPSlot *uintptr, newSP uintptr) {
	switchAsm(oldSPSlot, newSP)
}
