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

import "testing"

// The real amd64 trampoline performs an actual register/stack swap and
// cannot safely be exercised with fabricated stack pointers, so this test
// only applies to the simulated backend used by hosted builds and tests.
func TestDefaultSwitcherRecordsDistinctPointers(t *testing.T) {
	var a, b uintptr
	Default.Switch(&a, 0x1000)
	Default.Switch(&b, 0x2000)
	if a == 0 || b == 0 {
		t.Fatalf("expected non-zero simulated stack pointers, got a=%#x b=%#x", a, b)
	}
	if a == b {
		t.Fatalf("expected distinct simulated stack pointers, got %#x twice", a)
	}
}
