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

// switchCall records one Switch invocation for assertions in tests, the
// same host-side harness shape spec.md section 8 describes: "a stub switch
// that records (old_sp_slot, new_sp) pairs and swaps a simulated stack
// pointer".
type switchCall struct {
	oldSPSlot *uintptr
	newSP     uintptr
}

type recordingSwitcher struct {
	calls []switchCall
	next  uintptr
}

func (r *recordingSwitcher) Switch(oldSPSlot *uintptr, newSP uintptr) {
	r.calls = append(r.calls, switchCall{oldSPSlot: oldSPSlot, newSP: newSP})
	r.next++
	*oldSPSlot = r.next
}
