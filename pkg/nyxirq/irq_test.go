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

package nyxirq

import "testing"

func TestSaveRestoreBalances(t *testing.T) {
	flags := Save()
	if simState.depth != 1 {
		t.Fatalf("depth = %d, want 1", simState.depth)
	}
	flags.Restore()
	if simState.depth != 0 {
		t.Fatalf("depth = %d, want 0 after restore", simState.depth)
	}
}

func TestNestedSaveIsReentrant(t *testing.T) {
	outer := Save()
	inner := Save()
	if simState.depth != 2 {
		t.Fatalf("depth = %d, want 2", simState.depth)
	}
	inner.Restore()
	if simState.enabled {
		t.Fatalf("interrupts re-enabled before outermost restore")
	}
	outer.Restore()
	if !simState.enabled {
		t.Fatalf("interrupts not re-enabled after outermost restore")
	}
}

func TestIRQSavePropagatesValue(t *testing.T) {
	got := IRQSave(func() int { return 42 })
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestIRQSaveRestoresOnPanic(t *testing.T) {
	defer func() {
		recover()
		if !simState.enabled || simState.depth != 0 {
			t.Fatalf("state not restored after panic: enabled=%v depth=%d", simState.enabled, simState.depth)
		}
	}()
	IRQSaveVoid(func() {
		panic("boom")
	})
}

func TestSpinlockIrqSaveGuardsValue(t *testing.T) {
	lock := NewSpinlockIrqSave(0)
	v, unlock := lock.Lock()
	*v = 7
	unlock()

	v2, unlock2 := lock.Lock()
	defer unlock2()
	if *v2 != 7 {
		t.Fatalf("got %d, want 7", *v2)
	}
}

func TestForceUnlockClearsLockWord(t *testing.T) {
	lock := NewSpinlockIrqSave("x")
	_, _ = lock.Lock()
	lock.ForceUnlock()
	// A fresh Lock must not deadlock after ForceUnlock.
	v, unlock := lock.Lock()
	defer unlock()
	if *v != "x" {
		t.Fatalf("got %q, want x", *v)
	}
}
